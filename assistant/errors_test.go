package assistant

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"syscall"
	"testing"
)

func TestClassifyStatus_PureFunctionOfRange(t *testing.T) {
	for code := 100; code < 600; code++ {
		err := classifyStatus("GET", EndpointInfo, code, "reason")

		switch {
		case code < 400:
			if err != nil {
				t.Errorf("status %d: error = %v, want nil", code, err)
			}
		case code < 500:
			if !IsClientError(err) {
				t.Errorf("status %d: error = %v, want client error", code, err)
			}
		default:
			if !IsServerError(err) {
				t.Errorf("status %d: error = %v, want server error", code, err)
			}
		}
	}
}

func TestClassifyNetworkError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want NetworkErrorSubtype
	}{
		{"deadline", context.DeadlineExceeded, NetworkErrorTimeout},
		{"os deadline", os.ErrDeadlineExceeded, NetworkErrorTimeout},
		{"canceled", context.Canceled, NetworkErrorCanceled},
		{"dns", &net.DNSError{Err: "no such host", Name: "assistant.invalid"}, NetworkErrorDNS},
		{"refused", &net.OpError{Op: "dial", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)}, NetworkErrorConnectionRefused},
		{"host unreachable", &net.OpError{Op: "dial", Err: os.NewSyscallError("connect", syscall.EHOSTUNREACH)}, NetworkErrorHostUnreachable},
		{"net unreachable", &net.OpError{Op: "dial", Err: os.NewSyscallError("connect", syscall.ENETUNREACH)}, NetworkErrorNetworkUnreachable},
		{"url wrapped dns", &url.Error{Op: "Get", URL: "http://x", Err: &net.DNSError{Name: "x"}}, NetworkErrorDNS},
		{"generic", errors.New("boom"), NetworkErrorGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, msg := classifyNetworkError(tt.err)
			if got != tt.want {
				t.Errorf("subtype = %v, want %v", got, tt.want)
			}
			if msg == "" {
				t.Error("message should not be empty")
			}
		})
	}
}

func TestErrorPredicates_SeeThroughWrapping(t *testing.T) {
	base := classifyStatus("POST", EndpointSay, 404, "Not Found")
	wrapped := fmt.Errorf("say: %w", base)

	if !IsHTTPError(wrapped) || !IsClientError(wrapped) {
		t.Error("wrapped 4xx should classify as HTTP client error")
	}
	if IsServerError(wrapped) || IsTransportError(wrapped) {
		t.Error("wrapped 4xx misclassified")
	}

	plain := errors.New("plain")
	if IsHTTPError(plain) || IsTransportError(plain) || IsDecodeError(plain) || IsTimeout(plain) {
		t.Error("plain error should not classify")
	}
	if IsHTTPError(nil) {
		t.Error("nil should not classify")
	}
}

func TestError_Message(t *testing.T) {
	err := classifyStatus("GET", EndpointSkills, 404, "Unknown skill")
	if !strings.Contains(err.Error(), "Unknown skill") {
		t.Errorf("Error() = %q, should contain reason", err.Error())
	}
	if !strings.Contains(err.Error(), "/skills") {
		t.Errorf("Error() = %q, should contain endpoint", err.Error())
	}

	cause := errors.New("dial failed")
	terr := newTransportError("GET", EndpointStatus, cause)
	if !errors.Is(terr, cause) {
		t.Error("transport error should unwrap to its cause")
	}
}

func TestTroubleshootingHint(t *testing.T) {
	errs := []error{
		newTransportError("GET", EndpointStatus, context.DeadlineExceeded),
		newTransportError("GET", EndpointStatus, &net.DNSError{Name: "x"}),
		newTransportError("GET", EndpointStatus, errors.New("x")),
		classifyStatus("GET", EndpointInfo, 401, "Unauthorized"),
		classifyStatus("GET", EndpointInfo, 404, "Not Found"),
		classifyStatus("GET", EndpointInfo, 500, "Internal Server Error"),
		newDecodeError("GET", EndpointInfo, "bad", nil),
		newValidationError("host is required"),
		errors.New("foreign"),
	}

	for _, err := range errs {
		if TroubleshootingHint(err) == "" {
			t.Errorf("TroubleshootingHint(%v) is empty", err)
		}
		if ShortMessage(err) == "" {
			t.Errorf("ShortMessage(%v) is empty", err)
		}
	}

	if got := TroubleshootingHint(classifyStatus("GET", EndpointInfo, 401, "Unauthorized")); !strings.Contains(got, "token") {
		t.Errorf("401 hint = %q, should mention token", got)
	}
}
