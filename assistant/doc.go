// Package assistant provides a client for the voice assistant's local HTTP
// control API.
//
// The API lives under http://{host}:{port}/api (default port 1507) and every
// request carries the configured token in a "token" header. The client covers
// liveness, triggering, text-to-speech, skills, the configuration document,
// host device info and the audio states.
//
// # Usage Example
//
//	client, err := assistant.NewClient(assistant.Config{
//	    Host:  "192.168.1.40",
//	    Token: os.Getenv("VASS_TOKEN"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	running, err := client.IsRunning(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if running {
//	    _ = client.Say(ctx, "Dinner is ready", false)
//	}
//
// # Asynchronous Calls
//
// Every operation is also available on Client.Async, which starts the request
// on its own goroutine and returns a Call to wait on:
//
//	info := client.Async().Info(ctx)
//	states := client.Async().States(ctx)
//	d, err := info.Wait(ctx)
//	s, err := states.Wait(ctx)
//
// # Error Handling
//
// Failures are returned as *Error. Use IsClientError (HTTP 4xx),
// IsServerError (HTTP 5xx), IsHTTPError (either) and IsTransportError
// (network failures) to branch on them. Nothing is retried. The only error
// that is absorbed is a timeout of the IsRunning probe, which reports false.
//
// # Caching
//
// Info is fetched once per Client and reused; the device identity is assumed
// not to change while a client exists. States are always fetched.
package assistant
