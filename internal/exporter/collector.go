package exporter

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/muurk/vassapi/assistant"
	"github.com/muurk/vassapi/internal/logging"
)

const (
	// DefaultScrapeTimeout bounds one poll of the assistant
	DefaultScrapeTimeout = 5 * time.Second

	namespace = "vass"
)

// Assistant is the read-only subset of the client the collector polls.
// *assistant.Client satisfies it.
type Assistant interface {
	IsRunning(ctx context.Context) (bool, error)
	Info(ctx context.Context) (assistant.DeviceInfo, error)
	States(ctx context.Context) (assistant.DeviceStates, error)
}

// sample is the result of one poll
type sample struct {
	running bool
	info    assistant.DeviceInfo
	states  assistant.DeviceStates
	err     error
	at      time.Time
}

// Collector exports assistant state as Prometheus metrics. The device is
// polled during Collect; results younger than MinInterval are reused.
type Collector struct {
	client      Assistant
	baseURL     string
	timeout     time.Duration
	minInterval time.Duration

	mu   sync.Mutex
	last *sample

	up           prometheus.Gauge
	inputMuted   prometheus.Gauge
	outputMuted  prometheus.Gauge
	outputVolume prometheus.Gauge
	success      prometheus.Gauge
	lastSuccess  prometheus.Gauge
	info         *prometheus.GaugeVec
}

// NewCollector creates a collector for client. baseURL is only used for logs.
func NewCollector(client Assistant, baseURL string, minInterval time.Duration) *Collector {
	return &Collector{
		client:      client,
		baseURL:     baseURL,
		timeout:     DefaultScrapeTimeout,
		minInterval: minInterval,
		up: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "up",
			Help:      "Whether the assistant reports itself active (1=yes, 0=no)",
		}),
		inputMuted: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "input_muted",
			Help:      "Microphone mute state (1=muted, 0=live)",
		}),
		outputMuted: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "output_muted",
			Help:      "Speaker mute state (1=muted, 0=live)",
		}),
		outputVolume: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "output_volume",
			Help:      "Speaker volume (0-100)",
		}),
		success: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "scrape_success",
			Help:      "Last scrape success (1=ok, 0=error)",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Last successful scrape timestamp (epoch seconds)",
		}),
		info: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "info",
			Help:      "Assistant identity, always 1",
		}, []string{"name", "version", "uuid", "language", "area"}),
	}
}

// Describe implements prometheus.Collector
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.up.Describe(ch)
	c.inputMuted.Describe(ch)
	c.outputMuted.Describe(ch)
	c.outputVolume.Describe(ch)
	c.success.Describe(ch)
	c.lastSuccess.Describe(ch)
	c.info.Describe(ch)
}

// Collect implements prometheus.Collector
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.poll(context.Background())

	c.mu.Lock()
	defer c.mu.Unlock()

	c.up.Set(boolGauge(s.running))
	if s.err != nil {
		c.success.Set(0)
	} else {
		c.success.Set(1)
		c.lastSuccess.Set(float64(s.at.Unix()))
		c.inputMuted.Set(boolGauge(s.states.InputMuted))
		c.outputMuted.Set(boolGauge(s.states.OutputMuted))
		c.outputVolume.Set(float64(s.states.OutputVolume))
		c.info.Reset()
		c.info.WithLabelValues(s.info.Name, s.info.Version, s.info.UUID, s.info.Language, s.info.Area).Set(1)
	}

	c.up.Collect(ch)
	c.success.Collect(ch)
	if s.err == nil || c.last != nil {
		c.inputMuted.Collect(ch)
		c.outputMuted.Collect(ch)
		c.outputVolume.Collect(ch)
		c.lastSuccess.Collect(ch)
		c.info.Collect(ch)
	}
}

// poll returns the latest sample, querying the assistant when the cached one
// is older than the minimum interval.
func (c *Collector) poll(ctx context.Context) sample {
	c.mu.Lock()
	if c.last != nil && c.minInterval > 0 && time.Since(c.last.at) < c.minInterval {
		s := *c.last
		c.mu.Unlock()
		return s
	}
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	s := sample{at: start}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		running, err := c.client.IsRunning(gctx)
		if err != nil {
			return err
		}
		s.running = running
		return nil
	})
	g.Go(func() error {
		var err error
		s.info, err = c.client.Info(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		s.states, err = c.client.States(gctx)
		return err
	})
	s.err = g.Wait()
	if s.err != nil {
		// a partial poll does not prove the assistant is up
		s.running = false
	}

	logging.LogScrape(c.baseURL, time.Since(start), s.err)

	if s.err == nil {
		c.mu.Lock()
		c.last = &s
		c.mu.Unlock()
	}
	return s
}

// Running reports the most recent known run status, polling if needed
func (c *Collector) Running(ctx context.Context) (bool, error) {
	s := c.poll(ctx)
	return s.running, s.err
}

func boolGauge(v bool) float64 {
	if v {
		return 1
	}
	return 0
}
