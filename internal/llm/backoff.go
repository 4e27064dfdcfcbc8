package llm

import "time"

// Delay returns the backoff before retrying after the given 1-based attempt:
// base * 2^(attempt-1). Kept pure so the schedule is testable without a clock.
func Delay(base time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return base << (attempt - 1)
}
