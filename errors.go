package guard

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// ErrorCategory classifies an error for handling decisions.
type ErrorCategory string

const (
	ErrorCategoryNetwork   ErrorCategory = "network"    // connectivity
	ErrorCategoryRateLimit ErrorCategory = "rate_limit" // throttled upstream
	ErrorCategoryTimeout   ErrorCategory = "timeout"    // request timeout
	ErrorCategoryAuth      ErrorCategory = "auth"       // credentials rejected
	ErrorCategoryUpstream  ErrorCategory = "upstream"   // collaborator-side failure
	ErrorCategoryMalformed ErrorCategory = "malformed"  // unparsable payload
	ErrorCategoryInternal  ErrorCategory = "internal"
)

// Common errors.
var (
	ErrEmptyContent       = errors.New("guard: empty content")
	ErrStoreNotConfigured = errors.New("guard: store not configured")
	ErrTimeout            = errors.New("guard: operation timeout")
	ErrRateLimited        = errors.New("guard: rate limited by upstream")
	ErrMalformedResponse  = errors.New("guard: malformed upstream response")
	ErrAuthFailed         = errors.New("guard: authentication failed")
	ErrNetworkUnreachable = errors.New("guard: network unreachable")
	ErrConnectionRefused  = errors.New("guard: connection refused")
)

// UpstreamError is an error from the generative-text collaborator.
type UpstreamError struct {
	Service    string        // logical service name, e.g. "genai"
	Code       string        // error code from the service
	Message    string        // error message
	StatusCode int           // HTTP status code if applicable
	Category   ErrorCategory // classification for handling
	Retryable  bool
	Err        error // underlying error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("guard: %s error [%d/%s]: %s", e.Service, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("guard: %s error [%s]: %s", e.Service, e.Code, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError creates a new upstream error.
func NewUpstreamError(service, code, message string) *UpstreamError {
	ue := &UpstreamError{
		Service:  service,
		Code:     code,
		Message:  message,
		Category: ErrorCategoryUpstream,
	}
	ue.Retryable = ue.isRetryable()
	return ue
}

// WithStatusCode sets the HTTP status code and re-derives the category.
func (e *UpstreamError) WithStatusCode(code int) *UpstreamError {
	e.StatusCode = code
	e.Category = categorizeByStatusCode(code)
	e.Retryable = e.isRetryable()
	return e
}

// WithCategory sets the error category.
func (e *UpstreamError) WithCategory(cat ErrorCategory) *UpstreamError {
	e.Category = cat
	e.Retryable = e.isRetryable()
	return e
}

// WithCause sets the underlying error.
func (e *UpstreamError) WithCause(err error) *UpstreamError {
	e.Err = err
	return e
}

func (e *UpstreamError) isRetryable() bool {
	switch e.Category {
	case ErrorCategoryNetwork, ErrorCategoryRateLimit, ErrorCategoryTimeout:
		return true
	}
	switch e.StatusCode {
	case 429, 500, 502, 503, 504:
		return true
	}
	return false
}

func categorizeByStatusCode(code int) ErrorCategory {
	switch {
	case code == 401 || code == 403:
		return ErrorCategoryAuth
	case code == 429:
		return ErrorCategoryRateLimit
	case code == 408 || code == 504:
		return ErrorCategoryTimeout
	case code >= 500:
		return ErrorCategoryUpstream
	default:
		return ErrorCategoryUpstream
	}
}

// StoreError is a persistence-layer error.
type StoreError struct {
	Operation string // operation that failed (insert, count, update)
	Table     string // table/collection name
	Err       error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("guard: store error during %s on %s: %v", e.Operation, e.Table, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new store error.
func NewStoreError(operation, table string, err error) *StoreError {
	return &StoreError{Operation: operation, Table: table, Err: err}
}

// IsUpstreamError checks if an error is an upstream error.
func IsUpstreamError(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}

// IsStoreError checks if an error is a store error.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrTimeout) || errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrNetworkUnreachable) || errors.Is(err, ErrConnectionRefused) {
		return true
	}

	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Retryable
	}

	return IsNetworkError(err)
}

// IsNetworkError checks if an error is network-related.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrNetworkUnreachable) || errors.Is(err, ErrConnectionRefused) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	msg := strings.ToLower(err.Error())
	networkPatterns := []string{
		"connection refused",
		"connection reset",
		"no such host",
		"network is unreachable",
		"i/o timeout",
		"connection timed out",
		"dial tcp",
	}
	for _, pattern := range networkPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}

	return false
}

// GetErrorCategory returns the category of an error.
func GetErrorCategory(err error) ErrorCategory {
	if err == nil {
		return ""
	}

	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Category
	}

	if IsNetworkError(err) {
		return ErrorCategoryNetwork
	}
	if errors.Is(err, ErrTimeout) {
		return ErrorCategoryTimeout
	}
	if errors.Is(err, ErrRateLimited) {
		return ErrorCategoryRateLimit
	}
	if errors.Is(err, ErrAuthFailed) {
		return ErrorCategoryAuth
	}
	if errors.Is(err, ErrMalformedResponse) {
		return ErrorCategoryMalformed
	}

	return ErrorCategoryInternal
}

// WrapNetworkError wraps a network error with the matching sentinel.
func WrapNetworkError(err error) error {
	if err == nil {
		return nil
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "connection refused") {
		return fmt.Errorf("%w: %v", ErrConnectionRefused, err)
	}
	if strings.Contains(msg, "network is unreachable") {
		return fmt.Errorf("%w: %v", ErrNetworkUnreachable, err)
	}
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out") {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	return err
}
