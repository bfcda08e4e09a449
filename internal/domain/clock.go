package domain

import "github.com/jonboulle/clockwork"

// clock stamps AlertReport.ProcessedAt. Alert timestamps never use it; they
// derive from the observation time.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source for report assembly. Pass nil to reset to
// real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
