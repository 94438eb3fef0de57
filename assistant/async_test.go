package assistant

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestAsync_ConcurrentCalls(t *testing.T) {
	client, transport := newTestClient(t, deviceHandler)
	ctx := context.Background()
	async := client.Async()

	running := async.IsRunning(ctx)
	info := async.Info(ctx)
	states := async.States(ctx)
	skills := async.Skills(ctx)

	if ok, err := running.Wait(ctx); err != nil || !ok {
		t.Errorf("IsRunning = %v, %v; want true, nil", ok, err)
	}
	if d, err := info.Wait(ctx); err != nil || d.Name != "Kitchen" {
		t.Errorf("Info = %+v, %v", d, err)
	}
	if s, err := states.Wait(ctx); err != nil || s.OutputVolume != 35 {
		t.Errorf("States = %+v, %v", s, err)
	}
	if names, err := skills.Result(); err != nil || len(names) != 3 {
		t.Errorf("Skills = %v, %v", names, err)
	}

	if transport.Count() != 4 {
		t.Errorf("network calls = %d, want 4", transport.Count())
	}
}

func TestAsync_SharesInfoCache(t *testing.T) {
	client, transport := newTestClient(t, deviceHandler)
	ctx := context.Background()

	if _, err := client.Info(ctx); err != nil {
		t.Fatalf("Info() error = %v", err)
	}
	if _, err := client.Async().Info(ctx).Wait(ctx); err != nil {
		t.Fatalf("async Info() error = %v", err)
	}
	if transport.Count() != 1 {
		t.Errorf("network calls = %d, want 1", transport.Count())
	}
}

func TestAsync_SettersAndErrors(t *testing.T) {
	client, transport := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		if req.URL.Path == "/api/reload" {
			return newResponse(req, 500, "Reload failed", ""), nil
		}
		return newResponse(req, 200, "OK", ""), nil
	})
	ctx := context.Background()
	async := client.Async()

	calls := []*Call[struct{}]{
		async.Trigger(ctx),
		async.Say(ctx, "hi", false),
		async.RunSkill(ctx, "timer", map[string]any{"minutes": 5}),
		async.SetConfig(ctx, map[string]any{"k": "v"}),
		async.SetInputMute(ctx, true),
		async.SetOutputMute(ctx, true),
		async.SetOutputVolume(ctx, 20),
	}
	for i, call := range calls {
		if _, err := call.Wait(ctx); err != nil {
			t.Errorf("call %d error = %v", i, err)
		}
	}

	if _, err := async.Reload(ctx).Result(); !IsServerError(err) {
		t.Errorf("Reload error = %v, want server error", err)
	}
	if transport.Count() != len(calls)+1 {
		t.Errorf("network calls = %d, want %d", transport.Count(), len(calls)+1)
	}
}

func TestCall_WaitHonoursContext(t *testing.T) {
	release := make(chan struct{})
	client, _ := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		select {
		case <-release:
			return newResponse(req, 200, "OK", `{}`), nil
		case <-req.Context().Done():
			return nil, req.Context().Err()
		}
	})
	defer close(release)

	call := client.Async().GetConfig(context.Background())

	waitCtx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := call.Wait(waitCtx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait() error = %v, want context.DeadlineExceeded", err)
	}

	select {
	case <-call.Done():
		t.Error("call should still be pending")
	default:
	}
}

func TestCall_CancelAbortsRequest(t *testing.T) {
	client, _ := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		<-req.Context().Done()
		return nil, req.Context().Err()
	})

	ctx, cancel := context.WithCancel(context.Background())
	call := client.Async().States(ctx)
	cancel()

	_, err := call.Result()
	if !IsTransportError(err) {
		t.Fatalf("Result() error = %v, want transport error", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Result() error = %v, want context.Canceled in chain", err)
	}
}
