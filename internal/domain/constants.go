package domain

import "time"

// Default reservation tuning values, overridable via config
const (
	DefaultHoldTTL       = 10 * time.Minute
	MaxHoldTTL           = 30 * time.Minute
	DefaultSweepInterval = 60 * time.Second
)

// Business validation constants
const (
	MinMaxCapacity = 1
	MaxMaxCapacity = 100

	MaxHolderIDLength = 128
)

// Time format constants
const (
	TimestampFormat = time.RFC3339
)
