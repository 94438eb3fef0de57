package assistant

import "context"

// Call is the pending result of an asynchronous operation.
type Call[T any] struct {
	done  chan struct{}
	value T
	err   error
}

func start[T any](fn func() (T, error)) *Call[T] {
	c := &Call[T]{done: make(chan struct{})}
	go func() {
		defer close(c.done)
		c.value, c.err = fn()
	}()
	return c
}

func startErr(fn func() error) *Call[struct{}] {
	return start(func() (struct{}, error) {
		return struct{}{}, fn()
	})
}

// Done is closed once the result is available
func (c *Call[T]) Done() <-chan struct{} {
	return c.done
}

// Wait blocks until the call completes or ctx is done. Giving up on ctx does
// not cancel the request; cancel the context the call was started with for that.
func (c *Call[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-c.done:
		return c.value, c.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Result blocks until the call completes
func (c *Call[T]) Result() (T, error) {
	<-c.done
	return c.value, c.err
}

// AsyncClient runs Client operations on their own goroutines. Any number of
// calls may be outstanding; no ordering is enforced between them.
type AsyncClient struct {
	client *Client
}

// Async returns the asynchronous form of c. It shares c's configuration,
// transport and DeviceInfo cache.
func (c *Client) Async() *AsyncClient {
	return &AsyncClient{client: c}
}

// IsRunning starts Client.IsRunning in the background
func (a *AsyncClient) IsRunning(ctx context.Context) *Call[bool] {
	return start(func() (bool, error) { return a.client.IsRunning(ctx) })
}

// Trigger starts Client.Trigger in the background
func (a *AsyncClient) Trigger(ctx context.Context) *Call[struct{}] {
	return startErr(func() error { return a.client.Trigger(ctx) })
}

// Reload starts Client.Reload in the background
func (a *AsyncClient) Reload(ctx context.Context) *Call[struct{}] {
	return startErr(func() error { return a.client.Reload(ctx) })
}

// Say starts Client.Say in the background
func (a *AsyncClient) Say(ctx context.Context, text string, cache bool) *Call[struct{}] {
	return startErr(func() error { return a.client.Say(ctx, text, cache) })
}

// Skills lists the installed skills in the background
func (a *AsyncClient) Skills(ctx context.Context) *Call[[]string] {
	return start(func() ([]string, error) { return a.client.Skills(ctx) })
}

// RunSkill starts Client.RunSkill in the background
func (a *AsyncClient) RunSkill(ctx context.Context, name string, entities map[string]any) *Call[struct{}] {
	return startErr(func() error { return a.client.RunSkill(ctx, name, entities) })
}

// GetConfig fetches the configuration document in the background
func (a *AsyncClient) GetConfig(ctx context.Context) *Call[map[string]any] {
	return start(func() (map[string]any, error) { return a.client.GetConfig(ctx) })
}

// SetConfig replaces the configuration document in the background
func (a *AsyncClient) SetConfig(ctx context.Context, cfg map[string]any) *Call[struct{}] {
	return startErr(func() error { return a.client.SetConfig(ctx, cfg) })
}

// Info fetches the device identity in the background, sharing the client's cache
func (a *AsyncClient) Info(ctx context.Context) *Call[DeviceInfo] {
	return start(func() (DeviceInfo, error) { return a.client.Info(ctx) })
}

// States fetches the audio states in the background
func (a *AsyncClient) States(ctx context.Context) *Call[DeviceStates] {
	return start(func() (DeviceStates, error) { return a.client.States(ctx) })
}

// SetInputMute starts Client.SetInputMute in the background
func (a *AsyncClient) SetInputMute(ctx context.Context, mute bool) *Call[struct{}] {
	return startErr(func() error { return a.client.SetInputMute(ctx, mute) })
}

// SetOutputMute starts Client.SetOutputMute in the background
func (a *AsyncClient) SetOutputMute(ctx context.Context, mute bool) *Call[struct{}] {
	return startErr(func() error { return a.client.SetOutputMute(ctx, mute) })
}

// SetOutputVolume starts Client.SetOutputVolume in the background
func (a *AsyncClient) SetOutputVolume(ctx context.Context, level int) *Call[struct{}] {
	return startErr(func() error { return a.client.SetOutputVolume(ctx, level) })
}
