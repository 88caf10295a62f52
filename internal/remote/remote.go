// Package remote centralizes the mapping from outbound transport errors to
// typed failures. All three external-service adapters classify through here
// so the timeout/connection/generic branches exist exactly once.
package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"

	"github.com/DevOps-In-Motion/buildalert/internal/domain"
)

// Classify converts an error returned by an outbound call into a typed
// failure for the given stage. service is the printable provider name used
// in messages ("Ollama", "Slack").
func Classify(stage domain.Stage, service string, err error) *domain.Failure {
	if isTimeout(err) {
		return domain.NewFailure(stage, domain.KindTimeout,
			fmt.Sprintf("%s API request timeout", service))
	}
	if isConnectionFailure(err) {
		return domain.NewFailure(stage, domain.KindUnreachable,
			fmt.Sprintf("unable to connect to %s API", service))
	}
	return domain.NewFailure(stage, domain.KindRequestFailed,
		fmt.Sprintf("%s API request failed: %v", service, err))
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isConnectionFailure(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return opErr.Op == "dial"
	}
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}
