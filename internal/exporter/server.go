package exporter

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// DefaultListenAddr is where the exporter serves unless --listen says otherwise
const DefaultListenAddr = ":9507"

// NewRouter builds the exporter's HTTP surface: /metrics for Prometheus and
// /healthz reporting whether the assistant is running.
func NewRouter(collector *Collector, logger *zap.Logger) (*gin.Engine, error) {
	registry := prometheus.NewRegistry()
	if err := registry.Register(collector); err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	router.GET("/healthz", func(c *gin.Context) {
		running, err := collector.Running(c.Request.Context())
		switch {
		case err != nil:
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unreachable", "error": err.Error()})
		case !running:
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not running"})
		default:
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		}
	})

	return router, nil
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if logger == nil {
			return
		}
		logger.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// Serve runs the exporter on addr until ctx is cancelled, then shuts down
// gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
