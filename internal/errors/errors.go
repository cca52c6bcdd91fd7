package errors

import (
	"errors"
	"fmt"
	"net"
	"strings"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
)

// Permanent errors indicate values that cannot be rendered as given.
// Retrying with the same input always fails the same way.

// ErrPermanentConfig indicates a permanent configuration error that requires user intervention.
// This includes invalid quantities, malformed image references, and hook templates that fail to expand.
var ErrPermanentConfig = errors.New("permanent configuration error")

// Transient errors indicate temporary conditions on the apply path that should be retried.

// ErrTransientKubernetesAPI indicates a transient Kubernetes API error that should be retried.
// This includes rate limiting, conflicts, temporary server errors, and network issues.
var ErrTransientKubernetesAPI = errors.New("transient Kubernetes API error")

// WrapPermanentConfig wraps an error as a permanent configuration error.
func WrapPermanentConfig(err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrPermanentConfig, err)
}

// IsPermanent checks if an error is a permanent configuration error.
func IsPermanent(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, ErrPermanentConfig)
}

// IsTransientKubernetesAPI checks if an error is a transient Kubernetes API error.
func IsTransientKubernetesAPI(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrTransientKubernetesAPI) {
		return true
	}

	if apierrors.IsConflict(err) ||
		apierrors.IsTooManyRequests(err) ||
		apierrors.IsServerTimeout(err) ||
		apierrors.IsTimeout(err) ||
		apierrors.IsServiceUnavailable(err) ||
		apierrors.IsInternalError(err) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	errStr := strings.ToLower(err.Error())

	transientPatterns := []string{
		"rate limit",
		"too many requests",
		"service unavailable",
		"context deadline exceeded",
		"connection refused",
		"connection reset",
		"i/o timeout",
	}

	for _, pattern := range transientPatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}

	return false
}

// WrapTransientKubernetesAPI wraps an error as a transient Kubernetes API error.
// If the error is already a transient Kubernetes API error, it is returned as-is.
func WrapTransientKubernetesAPI(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrTransientKubernetesAPI) {
		return err
	}

	return fmt.Errorf("%w: %w", ErrTransientKubernetesAPI, err)
}
