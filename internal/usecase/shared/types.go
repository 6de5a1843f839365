package shared

import "time"

// SchedulingPolicy holds the product knobs the allocator and expander read.
type SchedulingPolicy struct {
	HoldDuration        time.Duration
	RequireConfirmation bool
	MaxHorizonDays      int
}

// SweepPolicy holds the retention knobs of the expiry sweeper.
type SweepPolicy struct {
	// Zero keeps confirmed slots forever
	ConfirmedRetention time.Duration
}
