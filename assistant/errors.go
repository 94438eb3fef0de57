package assistant

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"syscall"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeTransport indicates a network-level failure (unreachable host, DNS, timeout)
	ErrTypeTransport ErrorType = iota
	// ErrTypeClient indicates an HTTP 4xx response
	ErrTypeClient
	// ErrTypeServer indicates an HTTP 5xx response
	ErrTypeServer
	// ErrTypeDecode indicates a successful response whose body did not match the wire schema
	ErrTypeDecode
	// ErrTypeValidation indicates bad client settings or an unencodable payload
	ErrTypeValidation
)

// NetworkErrorSubtype provides more specific transport error classification
type NetworkErrorSubtype int

const (
	NetworkErrorGeneral NetworkErrorSubtype = iota
	NetworkErrorTimeout
	NetworkErrorConnectionRefused
	NetworkErrorDNS
	NetworkErrorHostUnreachable
	NetworkErrorNetworkUnreachable
	NetworkErrorCanceled
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeTransport:
		return "transport error"
	case ErrTypeClient:
		return "client error"
	case ErrTypeServer:
		return "server error"
	case ErrTypeDecode:
		return "decode error"
	case ErrTypeValidation:
		return "validation error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// Error is returned by every Client operation that fails.
//
// For ErrTypeClient and ErrTypeServer, Message is the reason phrase sent by
// the device and StatusCode is the HTTP status.
type Error struct {
	Type           ErrorType
	Message        string
	StatusCode     int
	Method         string
	Endpoint       Endpoint
	NetworkSubtype NetworkErrorSubtype
	Err            error
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Type.String())
	if e.Method != "" || e.Endpoint != "" {
		b.WriteString(fmt.Sprintf(" (%s %s)", e.Method, e.Endpoint))
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Err != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Err))
	}
	return b.String()
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// classifyStatus maps a response status to an error. Anything below 400 is success.
func classifyStatus(method string, endpoint Endpoint, statusCode int, reason string) error {
	switch {
	case statusCode >= 400 && statusCode < 500:
		return &Error{Type: ErrTypeClient, Message: reason, StatusCode: statusCode, Method: method, Endpoint: endpoint}
	case statusCode >= 500 && statusCode < 600:
		return &Error{Type: ErrTypeServer, Message: reason, StatusCode: statusCode, Method: method, Endpoint: endpoint}
	default:
		return nil
	}
}

// newTransportError classifies a failure returned by the HTTP transport.
func newTransportError(method string, endpoint Endpoint, err error) *Error {
	subtype, message := classifyNetworkError(err)
	return &Error{
		Type:           ErrTypeTransport,
		Message:        message,
		Method:         method,
		Endpoint:       endpoint,
		NetworkSubtype: subtype,
		Err:            err,
	}
}

func newDecodeError(method string, endpoint Endpoint, message string, err error) *Error {
	return &Error{Type: ErrTypeDecode, Message: message, Method: method, Endpoint: endpoint, Err: err}
}

func newValidationError(message string) *Error {
	return &Error{Type: ErrTypeValidation, Message: message}
}

func classifyNetworkError(err error) (NetworkErrorSubtype, string) {
	if errors.Is(err, context.Canceled) {
		return NetworkErrorCanceled, "request canceled"
	}
	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return NetworkErrorTimeout, "request timed out"
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return NetworkErrorDNS, fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		switch {
		case errors.Is(opErr.Err, syscall.ECONNREFUSED):
			return NetworkErrorConnectionRefused, "device refused connection"
		case errors.Is(opErr.Err, syscall.EHOSTUNREACH):
			return NetworkErrorHostUnreachable, "host unreachable"
		case errors.Is(opErr.Err, syscall.ENETUNREACH):
			return NetworkErrorNetworkUnreachable, "network unreachable"
		}
	}

	return NetworkErrorGeneral, "request failed"
}

func asError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsHTTPError reports whether err is a classified HTTP failure (4xx or 5xx).
func IsHTTPError(err error) bool {
	e, ok := asError(err)
	return ok && (e.Type == ErrTypeClient || e.Type == ErrTypeServer)
}

// IsClientError reports whether err is a 4xx response
func IsClientError(err error) bool {
	e, ok := asError(err)
	return ok && e.Type == ErrTypeClient
}

// IsServerError reports whether err is a 5xx response
func IsServerError(err error) bool {
	e, ok := asError(err)
	return ok && e.Type == ErrTypeServer
}

// IsTransportError reports whether err is a network-level failure
func IsTransportError(err error) bool {
	e, ok := asError(err)
	return ok && e.Type == ErrTypeTransport
}

// IsTimeout reports whether err is a transport timeout
func IsTimeout(err error) bool {
	e, ok := asError(err)
	return ok && e.Type == ErrTypeTransport && e.NetworkSubtype == NetworkErrorTimeout
}

// IsDecodeError reports whether err is a response decoding failure
func IsDecodeError(err error) bool {
	e, ok := asError(err)
	return ok && e.Type == ErrTypeDecode
}

// IsValidationError reports whether err was raised before the request was sent
func IsValidationError(err error) bool {
	e, ok := asError(err)
	return ok && e.Type == ErrTypeValidation
}

// TroubleshootingHint returns user-facing advice for an error
func TroubleshootingHint(err error) string {
	e, ok := asError(err)
	if !ok {
		return "An unexpected error occurred. Please try again."
	}

	switch e.Type {
	case ErrTypeTransport:
		switch e.NetworkSubtype {
		case NetworkErrorTimeout:
			return strings.Join([]string{
				"The assistant did not respond in time.",
				"Troubleshooting:",
				"  • Check that the assistant is running (vassctl status)",
				"  • Verify the host and port (default port is 1507)",
			}, "\n")
		case NetworkErrorConnectionRefused:
			return strings.Join([]string{
				"The assistant refused the connection.",
				"Troubleshooting:",
				"  • The assistant service may not be running on the host",
				"  • Verify the port number (default is 1507)",
			}, "\n")
		case NetworkErrorDNS:
			return strings.Join([]string{
				"Could not resolve the assistant hostname.",
				"Troubleshooting:",
				"  • Use the IP address instead of hostname",
				"  • Run 'vassctl scan' to find assistants on the local network",
			}, "\n")
		default:
			return strings.Join([]string{
				"Network communication failed.",
				"Troubleshooting:",
				"  • Check your network connection",
				"  • Ensure you're on the same network as the assistant",
			}, "\n")
		}

	case ErrTypeClient:
		if e.StatusCode == 401 || e.StatusCode == 403 {
			return "The assistant rejected the token. Check --token or VASS_TOKEN."
		}
		return fmt.Sprintf("The assistant rejected the request (HTTP %d). Check the request parameters.", e.StatusCode)

	case ErrTypeServer:
		return strings.Join([]string{
			fmt.Sprintf("The assistant reported an internal error (HTTP %d).", e.StatusCode),
			"Troubleshooting:",
			"  • Check the assistant's own logs",
			"  • Try 'vassctl reload'",
		}, "\n")

	case ErrTypeDecode:
		return "The assistant's response did not have the expected shape. Its API version may differ."

	case ErrTypeValidation:
		return "The client settings are invalid. Check the host, port and token."

	default:
		return "An error occurred. Please check the error message for details."
	}
}

// ShortMessage returns a concise, user-friendly error message
func ShortMessage(err error) string {
	e, ok := asError(err)
	if !ok {
		return err.Error()
	}

	switch e.Type {
	case ErrTypeTransport:
		switch e.NetworkSubtype {
		case NetworkErrorTimeout:
			return "Assistant not responding (timeout)"
		case NetworkErrorConnectionRefused:
			return "Assistant refused connection"
		case NetworkErrorDNS:
			return "Cannot resolve assistant hostname"
		default:
			return "Network error - check connection"
		}
	case ErrTypeClient, ErrTypeServer:
		return fmt.Sprintf("Assistant error (HTTP %d %s)", e.StatusCode, e.Message)
	case ErrTypeDecode:
		return "Failed to parse assistant response"
	default:
		return e.Message
	}
}
