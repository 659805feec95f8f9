package releases

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

type circuitState int

const (
	stateClosed   circuitState = iota // Normal operation
	stateOpen                         // GitHub failing, fetches skipped
	stateHalfOpen                     // Open period elapsed, next fetch is a probe
)

func (s circuitState) String() string {
	switch s {
	case stateOpen:
		return "OPEN (failing)"
	case stateHalfOpen:
		return "HALF-OPEN (testing)"
	default:
		return "CLOSED (recovered)"
	}
}

// circuitBreaker stops calling the GitHub API after consecutive provider-level failures.
// Repository-level outcomes (404, missing tag) count as the provider working.
type circuitBreaker struct {
	lastFailure      time.Time
	now              func() time.Time
	failures         int
	failureThreshold int
	openDuration     time.Duration
	state            circuitState
	mu               sync.Mutex
}

func newCircuitBreaker() *circuitBreaker {
	return &circuitBreaker{
		failureThreshold: 3,
		openDuration:     5 * time.Minute,
		now:              time.Now,
	}
}

// canAttempt returns ErrCircuitOpen while the open period is running.
// Once it elapses the breaker moves to half-open and lets the next fetch through.
func (cb *circuitBreaker) canAttempt() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state != stateOpen {
		return nil
	}

	nextRetry := cb.lastFailure.Add(cb.openDuration)
	if cb.now().After(nextRetry) {
		cb.setState(stateHalfOpen)
		return nil
	}

	return fmt.Errorf("%w (failures: %d, next retry: %s)", ErrCircuitOpen, cb.failures, nextRetry.Format("15:04:05"))
}

func (cb *circuitBreaker) recordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures = 0
	cb.lastFailure = time.Time{}
	cb.setState(stateClosed)
}

func (cb *circuitBreaker) recordFailure(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures++
	cb.lastFailure = cb.now()

	// A failed half-open probe reopens immediately
	if cb.failures >= cb.failureThreshold || cb.state == stateHalfOpen {
		if cb.state != stateOpen {
			slog.Warn("[RELEASES] opening circuit for GitHub API",
				"consecutive_failures", cb.failures,
				"open_for", cb.openDuration,
				"last_error", err,
			)
		}
		cb.setState(stateOpen)
		return
	}

	slog.Debug("[RELEASES] GitHub API failure recorded",
		"failures", cb.failures,
		"threshold", cb.failureThreshold,
		"error", err,
	)
}

// setState must be called with the lock held
func (cb *circuitBreaker) setState(s circuitState) {
	if cb.state == s {
		return
	}
	if s != stateOpen {
		slog.Info("[RELEASES] GitHub API circuit state changed", "state", s.String())
	}
	cb.state = s
}
