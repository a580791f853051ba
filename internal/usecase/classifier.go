package usecase

import (
	"github.com/eliteGoblin/focusd/scroll_mon/internal/domain"
)

// Classification is the outcome of classifying one raw event.
type Classification int

const (
	// Ignored events come from unmonitored targets and change nothing.
	Ignored Classification = iota
	// TargetUpdated events only move the current target.
	TargetUpdated
	// MinorScroll is a scroll within the minimum distance.
	MinorScroll
	// SignificantScroll is a scroll that feeds the window tracker.
	SignificantScroll
)

func (c Classification) String() string {
	switch c {
	case TargetUpdated:
		return "target_updated"
	case MinorScroll:
		return "minor_scroll"
	case SignificantScroll:
		return "significant_scroll"
	default:
		return "ignored"
	}
}

// Classifier filters raw events down to the monitored targets and detects
// significant scrolls against the latest observed offset.
type Classifier struct {
	targets     domain.TargetStore
	minDistance int

	currentTarget string
	lastOffset    int
}

// NewClassifier creates a classifier for the given allow-list.
func NewClassifier(targets domain.TargetStore, minDistance int) *Classifier {
	return &Classifier{
		targets:     targets,
		minDistance: minDistance,
	}
}

// Classify folds ev into the classifier state.
// Scroll events always move the offset baseline, significant or not.
func (c *Classifier) Classify(ev domain.Event) Classification {
	if !c.targets.Contains(ev.TargetID) {
		return Ignored
	}

	c.currentTarget = ev.TargetID
	if ev.Type != domain.EventScroll {
		return TargetUpdated
	}

	delta := ev.ScrollOffset - c.lastOffset
	if delta < 0 {
		delta = -delta
	}
	c.lastOffset = ev.ScrollOffset

	if delta > c.minDistance {
		return SignificantScroll
	}
	return MinorScroll
}

// CurrentTarget returns the latest monitored target seen.
func (c *Classifier) CurrentTarget() string {
	return c.currentTarget
}

// LastOffset returns the offset baseline for the next delta.
func (c *Classifier) LastOffset() int {
	return c.lastOffset
}

// ResetBaseline zeroes the offset baseline.
func (c *Classifier) ResetBaseline() {
	c.lastOffset = 0
}
