package core

import (
	"fmt"
	"time"
)

// ScheduleMode selects how the host loop advances the animation clock.
type ScheduleMode string

const (
	// ScheduleDelta advances by real elapsed time every tick, uncapped.
	ScheduleDelta ScheduleMode = "delta"
	// ScheduleFixed advances by one fixed tick and drops composites when late.
	ScheduleFixed ScheduleMode = "fixed"
)

// ParseScheduleMode validates a mode name.
func ParseScheduleMode(s string) (ScheduleMode, error) {
	switch ScheduleMode(s) {
	case ScheduleDelta, ScheduleFixed:
		return ScheduleMode(s), nil
	case "":
		return ScheduleDelta, nil
	}
	return "", fmt.Errorf("unknown scheduler mode %q (want delta or fixed)", s)
}

// Frame tells the host loop what to do on this iteration.
type Frame struct {
	Step    bool          // Run input + simulation for this tick
	Elapsed time.Duration // Animation time to add
	Render  bool          // Composite and present a new frame
	Wait    time.Duration // Nothing to do yet; sleep this long
}

// Scheduler is the single timing abstraction shared by every frontend.
type Scheduler interface {
	// Tick is called once per host iteration with the current time.
	Tick(now time.Time) Frame
	// RecordRender reports how long the last composite took.
	RecordRender(d time.Duration)
	// Diagnostic returns the corner text for this mode, or "".
	Diagnostic() string
	// Interval is the nominal time between host iterations.
	Interval() time.Duration
}

// NewScheduler builds the scheduler for a mode at the given tick rate.
func NewScheduler(mode ScheduleMode, tickRate int) Scheduler {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	if mode == ScheduleFixed {
		return NewFixedScheduler(interval)
	}
	return NewDeltaScheduler(interval)
}

const renderAvgDecay = 0.99

// DeltaScheduler accumulates wall-clock time and renders every tick.
// Its diagnostic is an exponentially decayed render-time average.
type DeltaScheduler struct {
	interval time.Duration
	prev     time.Time
	avgMS    float64
	avgDenom float64
}

// NewDeltaScheduler creates a delta-time scheduler.
func NewDeltaScheduler(interval time.Duration) *DeltaScheduler {
	return &DeltaScheduler{interval: interval}
}

// Tick implements Scheduler.
func (s *DeltaScheduler) Tick(now time.Time) Frame {
	var elapsed time.Duration
	if !s.prev.IsZero() {
		elapsed = now.Sub(s.prev)
	}
	s.prev = now
	return Frame{Step: true, Elapsed: elapsed, Render: true}
}

// RecordRender implements Scheduler.
func (s *DeltaScheduler) RecordRender(d time.Duration) {
	ms := float64(d) / float64(time.Millisecond)
	s.avgMS = renderAvgDecay*s.avgMS + (1-renderAvgDecay)*ms
	s.avgDenom = renderAvgDecay*s.avgDenom + (1 - renderAvgDecay)
}

// RenderAverage returns the decayed average render time in milliseconds.
func (s *DeltaScheduler) RenderAverage() float64 {
	if s.avgDenom <= 0 {
		return 0
	}
	return s.avgMS / s.avgDenom
}

// Diagnostic implements Scheduler.
func (s *DeltaScheduler) Diagnostic() string {
	if s.avgDenom <= 0 {
		return ""
	}
	return fmt.Sprintf("Render avg: %.2f ms", s.RenderAverage())
}

// Interval implements Scheduler.
func (s *DeltaScheduler) Interval() time.Duration {
	return s.interval
}

// FixedScheduler steps at a fixed rate using a next-deadline accumulator.
// A tick that is already past the following deadline still steps the
// simulation, but its composite is dropped so the loop catches up.
type FixedScheduler struct {
	interval time.Duration
	next     time.Time
	dropped  int
}

// NewFixedScheduler creates a fixed-timestep scheduler.
func NewFixedScheduler(interval time.Duration) *FixedScheduler {
	return &FixedScheduler{interval: interval}
}

// Tick implements Scheduler.
func (s *FixedScheduler) Tick(now time.Time) Frame {
	if s.next.IsZero() {
		s.next = now
	}
	if now.Before(s.next) {
		return Frame{Wait: s.next.Sub(now)}
	}

	s.next = s.next.Add(s.interval)
	f := Frame{Step: true, Elapsed: s.interval, Render: true}
	if !now.Before(s.next) {
		f.Render = false
		s.dropped++
	}
	return f
}

// RecordRender implements Scheduler. Fixed mode reports drops instead.
func (s *FixedScheduler) RecordRender(time.Duration) {}

// Dropped returns how many composites were skipped.
func (s *FixedScheduler) Dropped() int {
	return s.dropped
}

// Diagnostic implements Scheduler.
func (s *FixedScheduler) Diagnostic() string {
	return fmt.Sprintf("Dropped frames: %d", s.dropped)
}

// Interval implements Scheduler.
func (s *FixedScheduler) Interval() time.Duration {
	return s.interval
}
