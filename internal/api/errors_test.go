package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestFromTransportCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"deadline", context.DeadlineExceeded, CodeTimeout},
		{"net timeout", timeoutErr{}, CodeTimeout},
		{"dns", &net.DNSError{Err: "no such host", Name: "api.3fenban.com"}, CodeDNSFailure},
		{"closed conn", net.ErrClosed, CodeInterrupted},
		{"generic", errors.New("connection refused"), CodeRequestFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fromTransport(tt.err)
			if got.Kind != KindTransport {
				t.Fatalf("expected transport kind, got %s", got.Kind)
			}
			if got.Code != tt.want {
				t.Fatalf("expected code %d, got %d", tt.want, got.Code)
			}
		})
	}
}

func TestClassifyPlatformCodes(t *testing.T) {
	for code := CodeRequestFailed; code <= CodeBlocked; code++ {
		verdict := Classify(&RequestError{Kind: KindTransport, Code: code})
		if verdict.Message == "" {
			t.Fatalf("code %d produced an empty message", code)
		}
		if !verdict.Retryable {
			t.Fatalf("platform code %d should be retryable", code)
		}
	}
}

func TestClassifyHTTPStatuses(t *testing.T) {
	tests := []struct {
		status    int
		retryable bool
	}{
		{400, false},
		{401, false},
		{403, false},
		{404, true},
		{500, true},
		{502, true},
		{503, true},
		{504, true},
		{418, true}, // unknown status still gets a message
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("status_%d", tt.status), func(t *testing.T) {
			verdict := Classify(&RequestError{Kind: KindHTTP, HTTPStatus: tt.status})
			if verdict.Message == "" {
				t.Fatalf("status %d produced an empty message", tt.status)
			}
			if verdict.Retryable != tt.retryable {
				t.Fatalf("status %d: retryable = %v, want %v", tt.status, verdict.Retryable, tt.retryable)
			}
		})
	}
}

func TestClassifyDomainErrorNeverRetryable(t *testing.T) {
	verdict := Classify(&RequestError{Kind: KindDomain, RawMessage: "url not in domain list: https://example.com"})
	if verdict.Retryable {
		t.Fatal("domain allow-list violations must not be retried")
	}
	if verdict.Message == "" {
		t.Fatal("expected a message")
	}
}

func TestClassifyRawTextFragments(t *testing.T) {
	if v := Classify(errors.New("request failed: url not in domain list")); v.Retryable {
		t.Fatal("domain-list fragment should be non-retryable")
	}
	if v := Classify(errors.New("request:fail timeout")); !v.Retryable {
		t.Fatal("timeout fragment should be retryable")
	}
	if v := Classify(errors.New("system error 6000100")); v.Message == "" || !v.Retryable {
		t.Fatalf("unexpected verdict for 6000100 fragment: %+v", v)
	}
}

// Classify is total: any input maps to a non-empty message and a verdict.
func TestClassifyIsTotal(t *testing.T) {
	inputs := []error{
		nil,
		errors.New(""),
		errors.New("something else entirely"),
		fmt.Errorf("wrapped: %w", errors.New("inner")),
		&RequestError{Kind: ErrorKind(42)},
	}
	for _, err := range inputs {
		verdict := Classify(err)
		if verdict.Message == "" {
			t.Fatalf("empty message for %v", err)
		}
	}
}
