// Package usecase contains application business logic.
package usecase

import "time"

// DefaultExitMessage is the overlay text shown ahead of the remaining-attempts count.
const DefaultExitMessage = "Too much scrolling. Time to take a break"

// Config holds the fixed monitoring thresholds.
type Config struct {
	MinScrollDistance int           // Offset delta a scroll must exceed to count
	WindowDuration    time.Duration // Gap after which the burst count decays to zero
	BurstThreshold    int           // Significant scrolls per window that make a burst
	MaxViolations     int           // Bursts before the user is sent home
	OverlayHideDelay  time.Duration // How long the overlay stays visible
	EnforcementDelay  time.Duration // Delay between the final warning and the HOME action
	ExitMessage       string
}

// DefaultConfig returns the monitoring thresholds.
func DefaultConfig() Config {
	return Config{
		MinScrollDistance: 50,
		WindowDuration:    5 * time.Second,
		BurstThreshold:    3,
		MaxViolations:     4,
		OverlayHideDelay:  2 * time.Second,
		EnforcementDelay:  2 * time.Second,
		ExitMessage:       DefaultExitMessage,
	}
}
