package classify

import "time"

// Option applies a configuration option to the Classifier.
type Option func(*Classifier)

// WithClock sets the clock used to measure wine age.
func WithClock(now func() time.Time) Option {
	return func(c *Classifier) {
		if now != nil {
			c.now = now
		}
	}
}

// WithCurrentYear pins the current year. Non-positive years are ignored
// so a zero config value keeps the wall clock.
func WithCurrentYear(year int) Option {
	return func(c *Classifier) {
		if year > 0 {
			pinned := time.Date(year, time.July, 1, 0, 0, 0, 0, time.UTC)
			c.now = func() time.Time { return pinned }
		}
	}
}
