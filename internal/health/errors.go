package health

import (
	"fmt"
	"time"

	"github.com/docker/go-units"
)

// TimeoutError reports an exhausted health polling budget.
type TimeoutError struct {
	Attempts int
	Elapsed  time.Duration
}

func NewTimeoutError(attempts int, elapsed time.Duration) *TimeoutError {
	return &TimeoutError{Attempts: attempts, Elapsed: elapsed}
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("cluster did not reach an acceptable health status after %d attempts over %s; check service logs with `docker compose logs`", e.Attempts, units.HumanDuration(e.Elapsed))
}
