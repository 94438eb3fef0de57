package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// TokenHeader is the request header carrying the API token
const TokenHeader = "token"

// Config holds the connection settings for one assistant.
type Config struct {
	// Host is the assistant hostname or IP address (required)
	Host string

	// Port is the API port (0 means DefaultPort)
	Port int

	// Token is sent in the token header of every request (required)
	Token string
}

// BaseURL returns http://{host}:{port}/api
func (c Config) BaseURL() string {
	port := c.Port
	if port == 0 {
		port = DefaultPort
	}
	return "http://" + net.JoinHostPort(c.Host, strconv.Itoa(port)) + APIPath
}

// Client talks to the assistant HTTP API.
//
// All methods block until the device answers or ctx is done. Use Async for
// calls that should run in the background. A Client is safe for concurrent use.
type Client struct {
	config        Config
	baseURL       string
	httpClient    *http.Client
	logger        *zap.Logger
	userAgent     string
	statusTimeout time.Duration

	// info is written at most once, by the first successful Info call
	info atomic.Pointer[DeviceInfo]
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithStatusTimeout overrides the liveness probe timeout
func WithStatusTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.statusTimeout = d
		}
	}
}

// NewClient validates cfg and builds a Client.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	cfg.Host = strings.TrimSpace(cfg.Host)
	if cfg.Host == "" {
		return nil, newValidationError("host is required")
	}
	if cfg.Token == "" {
		return nil, newValidationError("token is required")
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, newValidationError(fmt.Sprintf("invalid port %d", cfg.Port))
	}

	c := &Client{
		config:        cfg,
		baseURL:       cfg.BaseURL(),
		httpClient:    &http.Client{},
		logger:        zap.NewNop(),
		statusTimeout: DefaultStatusTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Config returns the settings the client was built with
func (c *Client) Config() Config {
	return c.config
}

// BaseURL returns the API root every endpoint is appended to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// IsRunning probes /status. A timeout of the probe itself reports false
// rather than an error; cancellation of ctx and every other failure is
// returned.
func (c *Client) IsRunning(ctx context.Context) (bool, error) {
	body, err := c.send(ctx, http.MethodGet, EndpointStatus, nil, c.statusTimeout)
	if err != nil {
		if IsTimeout(err) && ctx.Err() == nil {
			c.logger.Debug("status probe timed out", zap.Duration("timeout", c.statusTimeout))
			return false, nil
		}
		return false, err
	}
	return string(body) == StatusActive, nil
}

// Trigger starts a listening session as if the wake word was heard
func (c *Client) Trigger(ctx context.Context) error {
	_, err := c.send(ctx, http.MethodGet, EndpointTrigger, nil, 0)
	return err
}

// Reload makes the assistant reload its configuration and skills
func (c *Client) Reload(ctx context.Context) error {
	_, err := c.send(ctx, http.MethodGet, EndpointReload, nil, 0)
	return err
}

// Say speaks text on the device. cache asks the device to keep the
// synthesized audio for reuse.
func (c *Client) Say(ctx context.Context, text string, cache bool) error {
	_, err := c.send(ctx, http.MethodPost, EndpointSay, sayRequest{Text: text, Cache: cache}, 0)
	return err
}

// Skills lists the skill names in the order the device reports them
func (c *Client) Skills(ctx context.Context) ([]string, error) {
	var skills []string
	if err := c.getJSON(ctx, EndpointSkills, &skills); err != nil {
		return nil, err
	}
	return skills, nil
}

// RunSkill runs the named skill. A nil entities map is sent as {}.
func (c *Client) RunSkill(ctx context.Context, name string, entities map[string]any) error {
	if entities == nil {
		entities = map[string]any{}
	}
	// The device distinguishes run from list on GET /skills by the body.
	_, err := c.send(ctx, http.MethodGet, EndpointSkills, runSkillRequest{Name: name, Entities: entities}, 0)
	return err
}

// GetConfig fetches the assistant's configuration document as-is
func (c *Client) GetConfig(ctx context.Context) (map[string]any, error) {
	var cfg map[string]any
	if err := c.getJSON(ctx, EndpointConfig, &cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetConfig replaces the assistant's configuration document
func (c *Client) SetConfig(ctx context.Context, cfg map[string]any) error {
	if cfg == nil {
		cfg = map[string]any{}
	}
	_, err := c.send(ctx, http.MethodPost, EndpointConfig, cfg, 0)
	return err
}

// Info returns the host device identity. The first successful result is
// kept for the lifetime of the client; later calls do not hit the network.
func (c *Client) Info(ctx context.Context) (DeviceInfo, error) {
	if cached := c.info.Load(); cached != nil {
		return *cached, nil
	}

	var info DeviceInfo
	if err := c.getJSON(ctx, EndpointInfo, &info); err != nil {
		return DeviceInfo{}, err
	}
	c.info.CompareAndSwap(nil, &info)
	return info, nil
}

// States fetches the current audio states. Never cached.
func (c *Client) States(ctx context.Context) (DeviceStates, error) {
	var states DeviceStates
	if err := c.getJSON(ctx, EndpointStates, &states); err != nil {
		return DeviceStates{}, err
	}
	return states, nil
}

// SetInputMute mutes or unmutes the microphone
func (c *Client) SetInputMute(ctx context.Context, mute bool) error {
	return c.setState(ctx, stateInputMuted, mute)
}

// SetOutputMute mutes or unmutes the speaker
func (c *Client) SetOutputMute(ctx context.Context, mute bool) error {
	return c.setState(ctx, stateOutputMuted, mute)
}

// SetOutputVolume sets the speaker volume. The level is sent as given; the
// assistant rejects values it does not accept with a ClientError.
func (c *Client) SetOutputVolume(ctx context.Context, level int) error {
	return c.setState(ctx, stateOutputVolume, level)
}

func (c *Client) setState(ctx context.Context, attribute string, value any) error {
	_, err := c.send(ctx, http.MethodPost, EndpointStates, map[string]any{attribute: value}, 0)
	return err
}

func (c *Client) getJSON(ctx context.Context, endpoint Endpoint, dest any) error {
	body, err := c.send(ctx, http.MethodGet, endpoint, nil, 0)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return newDecodeError(http.MethodGet, endpoint, "invalid response body", err)
	}
	return nil
}

// send performs one request against endpoint and returns the response body.
// Every response passes through classifyStatus. timeout > 0 bounds this call only.
func (c *Client) send(ctx context.Context, method string, endpoint Endpoint, payload any, timeout time.Duration) ([]byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, &Error{Type: ErrTypeValidation, Message: "failed to encode request body", Method: method, Endpoint: endpoint, Err: err}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+string(endpoint), reqBody)
	if err != nil {
		return nil, newTransportError(method, endpoint, err)
	}
	req.Header.Set(TokenHeader, c.config.Token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		terr := newTransportError(method, endpoint, err)
		c.logger.Warn("request failed",
			zap.String("method", method),
			zap.String("endpoint", string(endpoint)),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return nil, terr
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("endpoint", string(endpoint)),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if err := classifyStatus(method, endpoint, resp.StatusCode, reasonPhrase(resp)); err != nil {
		c.logger.Warn("request rejected",
			zap.String("method", method),
			zap.String("endpoint", string(endpoint)),
			zap.Int("status_code", resp.StatusCode),
		)
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newTransportError(method, endpoint, err)
	}
	return body, nil
}

// reasonPhrase extracts "Not Found" from a "404 Not Found" status line.
func reasonPhrase(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}
