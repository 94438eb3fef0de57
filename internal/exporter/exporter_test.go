package exporter

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/muurk/vassapi/assistant"
)

type fakeAssistant struct {
	running   bool
	info      assistant.DeviceInfo
	states    assistant.DeviceStates
	err       error
	statesErr error
	polls     atomic.Int32
}

func (f *fakeAssistant) IsRunning(ctx context.Context) (bool, error) {
	f.polls.Add(1)
	return f.running, f.err
}

func (f *fakeAssistant) Info(ctx context.Context) (assistant.DeviceInfo, error) {
	return f.info, f.err
}

func (f *fakeAssistant) States(ctx context.Context) (assistant.DeviceStates, error) {
	if f.statesErr != nil {
		return assistant.DeviceStates{}, f.statesErr
	}
	return f.states, f.err
}

func newFake() *fakeAssistant {
	return &fakeAssistant{
		running: true,
		info: assistant.DeviceInfo{
			Name:     "Kitchen",
			Version:  "1.4.2",
			UUID:     "6f1c3c1e-8d1a-4a7e-9a59-2f0c1b7f4f10",
			Language: "en_US",
			Area:     "kitchen",
		},
		states: assistant.DeviceStates{InputMuted: true, OutputVolume: 35},
	}
}

func TestCollector_Metrics(t *testing.T) {
	c := NewCollector(newFake(), "http://kitchen:1507/api", 0)

	expected := `
# HELP vass_input_muted Microphone mute state (1=muted, 0=live)
# TYPE vass_input_muted gauge
vass_input_muted 1
# HELP vass_output_muted Speaker mute state (1=muted, 0=live)
# TYPE vass_output_muted gauge
vass_output_muted 0
# HELP vass_output_volume Speaker volume (0-100)
# TYPE vass_output_volume gauge
vass_output_volume 35
# HELP vass_scrape_success Last scrape success (1=ok, 0=error)
# TYPE vass_scrape_success gauge
vass_scrape_success 1
# HELP vass_up Whether the assistant reports itself active (1=yes, 0=no)
# TYPE vass_up gauge
vass_up 1
# HELP vass_info Assistant identity, always 1
# TYPE vass_info gauge
vass_info{area="kitchen",language="en_US",name="Kitchen",uuid="6f1c3c1e-8d1a-4a7e-9a59-2f0c1b7f4f10",version="1.4.2"} 1
`
	err := testutil.CollectAndCompare(c, strings.NewReader(expected),
		"vass_up", "vass_input_muted", "vass_output_muted", "vass_output_volume", "vass_scrape_success", "vass_info")
	if err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
}

func TestCollector_FailedScrape(t *testing.T) {
	fake := newFake()
	fake.err = errors.New("connection refused")
	c := NewCollector(fake, "http://kitchen:1507/api", 0)

	expected := `
# HELP vass_scrape_success Last scrape success (1=ok, 0=error)
# TYPE vass_scrape_success gauge
vass_scrape_success 0
# HELP vass_up Whether the assistant reports itself active (1=yes, 0=no)
# TYPE vass_up gauge
vass_up 0
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
}

func TestCollector_PartialFailureIsNotUp(t *testing.T) {
	fake := newFake()
	fake.statesErr = errors.New("HTTP 500")
	c := NewCollector(fake, "http://kitchen:1507/api", 0)

	expected := `
# HELP vass_up Whether the assistant reports itself active (1=yes, 0=no)
# TYPE vass_up gauge
vass_up 0
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(expected), "vass_up"); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}

	running, err := c.Running(context.Background())
	if running || err == nil {
		t.Errorf("Running() = %v, %v, want false and an error", running, err)
	}
}

func TestCollector_MinIntervalReusesSample(t *testing.T) {
	fake := newFake()
	c := NewCollector(fake, "", time.Hour)

	testutil.CollectAndCount(c)
	testutil.CollectAndCount(c)

	if got := fake.polls.Load(); got != 1 {
		t.Errorf("device polled %d times, want 1", got)
	}
}

func TestCollector_FailuresAreNotReused(t *testing.T) {
	fake := newFake()
	fake.err = errors.New("boom")
	c := NewCollector(fake, "", time.Hour)

	testutil.CollectAndCount(c)
	testutil.CollectAndCount(c)

	if got := fake.polls.Load(); got != 2 {
		t.Errorf("device polled %d times, want 2", got)
	}
}

func TestCollector_Register(t *testing.T) {
	if err := prometheus.NewRegistry().Register(NewCollector(newFake(), "", 0)); err != nil {
		t.Errorf("Register() error = %v", err)
	}
}

func get(t *testing.T, handler http.Handler, path string) (int, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	body, _ := io.ReadAll(rec.Body)
	return rec.Code, string(body)
}

func TestRouter_Metrics(t *testing.T) {
	router, err := NewRouter(NewCollector(newFake(), "", 0), nil)
	if err != nil {
		t.Fatalf("NewRouter() error = %v", err)
	}

	code, body := get(t, router, "/metrics")
	if code != http.StatusOK {
		t.Fatalf("GET /metrics = %d", code)
	}
	for _, want := range []string{"vass_up 1", "vass_output_volume 35", `name="Kitchen"`} {
		if !strings.Contains(body, want) {
			t.Errorf("/metrics missing %q", want)
		}
	}
}

func TestRouter_Healthz(t *testing.T) {
	tests := []struct {
		name     string
		running  bool
		err      error
		wantCode int
		wantBody string
	}{
		{"running", true, nil, http.StatusOK, `"ok"`},
		{"idle", false, nil, http.StatusServiceUnavailable, `"not running"`},
		{"unreachable", false, errors.New("connection refused"), http.StatusServiceUnavailable, "connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFake()
			fake.running = tt.running
			fake.err = tt.err
			router, err := NewRouter(NewCollector(fake, "", 0), nil)
			if err != nil {
				t.Fatalf("NewRouter() error = %v", err)
			}

			code, body := get(t, router, "/healthz")
			if code != tt.wantCode {
				t.Errorf("GET /healthz = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(body, tt.wantBody) {
				t.Errorf("body = %s, want it to contain %s", body, tt.wantBody)
			}
		})
	}
}

func TestServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, "127.0.0.1:0", http.NotFoundHandler())
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
}
