package api

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

// ErrorKind tags where a request failure originated.
type ErrorKind int

const (
	KindTransport ErrorKind = iota // network-level failure before an HTTP response
	KindHTTP                       // HTTP response with an error status
	KindDomain                     // URL rejected by the domain allow-list
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindHTTP:
		return "http"
	case KindDomain:
		return "domain"
	default:
		return "unknown"
	}
}

// Platform error codes for system-level network failures, distinct from HTTP
// status codes. Produced at the transport boundary so the classifier can
// switch on a closed set instead of sniffing error strings.
const (
	CodeRequestFailed = 6000100 // generic network request failure
	CodeTimeout       = 6000101 // request timed out
	CodeInterrupted   = 6000102 // connection interrupted
	CodeSSLFailure    = 6000103 // TLS certificate verification failed
	CodeDNSFailure    = 6000104 // domain name resolution failed
	CodeBlocked       = 6000105 // request was blocked
)

// RequestError is the tagged error produced by the dispatcher for every
// failed request. Exactly one of Code and HTTPStatus is meaningful,
// depending on Kind.
type RequestError struct {
	Kind       ErrorKind
	Code       int    // platform error code, set for KindTransport
	HTTPStatus int    // HTTP status, set for KindHTTP
	RawMessage string // underlying error text or response status line
}

func (e *RequestError) Error() string {
	switch e.Kind {
	case KindHTTP:
		return fmt.Sprintf("http %d: %s", e.HTTPStatus, e.RawMessage)
	case KindDomain:
		return e.RawMessage
	default:
		return fmt.Sprintf("platform %d: %s", e.Code, e.RawMessage)
	}
}

// fromTransport maps a Go transport error onto a platform error code.
func fromTransport(err error) *RequestError {
	re := &RequestError{Kind: KindTransport, Code: CodeRequestFailed, RawMessage: err.Error()}

	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		re.Code = CodeTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		re.Code = CodeTimeout
	case isDNSError(err):
		re.Code = CodeDNSFailure
	case isTLSError(err):
		re.Code = CodeSSLFailure
	case errors.Is(err, net.ErrClosed):
		re.Code = CodeInterrupted
	}
	return re
}

func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

func isTLSError(err error) bool {
	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return true
	}
	var unknownAuth x509.UnknownAuthorityError
	var hostErr x509.HostnameError
	var invalidCert x509.CertificateInvalidError
	return errors.As(err, &unknownAuth) || errors.As(err, &hostErr) || errors.As(err, &invalidCert)
}

// unwrapURLError strips the *url.Error wrapper http.Client puts around
// transport failures.
func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

// Classification is the human-readable verdict for a failed request.
type Classification struct {
	Message   string
	Retryable bool
}

var platformMessages = map[int]string{
	CodeRequestFailed: "system error: network request failed, check your network connection",
	CodeTimeout:       "system error: request timed out, please retry",
	CodeInterrupted:   "system error: connection interrupted, check your network settings",
	CodeSSLFailure:    "system error: SSL certificate verification failed",
	CodeDNSFailure:    "system error: domain name resolution failed",
	CodeBlocked:       "system error: the request was blocked",
}

var httpMessages = map[int]string{
	400: "invalid request parameters",
	401: "unauthorized, please log in again",
	403: "access forbidden",
	404: "the requested resource does not exist",
	500: "internal server error",
	502: "bad gateway",
	503: "service unavailable",
	504: "gateway timeout",
}

const genericFailureMessage = "network request failed, please retry"

// Classify maps any error to a message and a retryable verdict. It is total:
// unknown inputs get the generic fallback, never a panic. Lookup order is the
// platform code table, then the HTTP status table, then known raw-text
// fragments, then the fallback.
func Classify(err error) Classification {
	if err == nil {
		return Classification{Message: genericFailureMessage, Retryable: true}
	}

	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		switch reqErr.Kind {
		case KindDomain:
			return Classification{
				Message:   "the domain is not configured in the allowed domain list, contact the administrator",
				Retryable: false,
			}
		case KindHTTP:
			msg, ok := httpMessages[reqErr.HTTPStatus]
			if !ok {
				msg = fmt.Sprintf("HTTP error: %d", reqErr.HTTPStatus)
			}
			return Classification{Message: msg, Retryable: !isNonRetryableStatus(reqErr.HTTPStatus)}
		case KindTransport:
			if msg, ok := platformMessages[reqErr.Code]; ok {
				return Classification{Message: msg, Retryable: true}
			}
		}
	}

	// Raw-text fallbacks for errors that never crossed the tagged boundary.
	text := err.Error()
	switch {
	case strings.Contains(text, "url not in domain list"):
		return Classification{
			Message:   "the domain is not configured in the allowed domain list, contact the administrator",
			Retryable: false,
		}
	case strings.Contains(text, "6000100"):
		return Classification{
			Message:   "system error: network request failed, check the domain configuration and your network connection",
			Retryable: true,
		}
	case strings.Contains(text, "timeout"):
		return Classification{
			Message:   "request timed out, check your network connection and retry",
			Retryable: true,
		}
	}

	return Classification{Message: genericFailureMessage, Retryable: true}
}

// isNonRetryableStatus reports whether the status is a validation/auth
// failure that retrying cannot fix.
func isNonRetryableStatus(status int) bool {
	switch status {
	case 400, 401, 403:
		return true
	}
	return false
}
