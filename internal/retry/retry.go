package retry

import (
	"Keyo/internal/logging"
	"time"
)

const (
	attempts = 5
	backoff  = 5 * time.Second
)

// FiveTimes runs f until it succeeds, sleeping between attempts, and panics
// with the last error after the fifth failure.
func FiveTimes(f func() error, msg string) {
	var err error
	for i := 0; i < attempts; i++ {
		err = f()
		if err == nil {
			return
		}

		logging.Logger.Warnf("%s: %v", msg, err)
		if i < attempts-1 {
			logging.Logger.Infof("retrying in %s (attempt %d/%d)", backoff, i+1, attempts)
			time.Sleep(backoff)
		}
	}

	panic(err)
}
