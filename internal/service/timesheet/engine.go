// Package timesheet is the single time accounting engine. Every
// component that turns a (check-in, check-out) pair into hours goes
// through Engine.Compute; nothing else may carry its own overtime or
// TOIL arithmetic.
package timesheet

import (
	"math"
	"time"

	"github.com/workpulse/hr-backend-go/internal/domain/attendance"
)

// WeekendTOILPolicy selects how weekend work converts into TOIL.
type WeekendTOILPolicy string

const (
	// WeekendTOILFullHours banks every hour worked on a weekend as
	// TOIL. Canonical policy.
	WeekendTOILFullHours WeekendTOILPolicy = "full_hours"

	// WeekendTOILOvertimeOnly banks only hours beyond the standard day,
	// same as a weekday.
	WeekendTOILOvertimeOnly WeekendTOILPolicy = "overtime_only"
)

// Result holds the computed accounting for one closed record. All hour
// values are rounded to 2 decimals and never negative.
type Result struct {
	WorkingHours    float64
	OvertimeHours   float64
	TOILHoursEarned float64
	IsWeekendWork   bool
}

type Engine struct {
	standardHoursPerDay float64
	weekendTOILPolicy   WeekendTOILPolicy
	location            *time.Location
}

func NewEngine(standardHoursPerDay float64, policy WeekendTOILPolicy, location *time.Location) *Engine {
	if location == nil {
		location = time.UTC
	}
	return &Engine{
		standardHoursPerDay: standardHoursPerDay,
		weekendTOILPolicy:   policy,
		location:            location,
	}
}

// Compute derives the accounting for a check-in/check-out pair. It is
// a pure function of its inputs and the engine's configuration and
// fails with ErrNonMonotonicTime when checkOut is not strictly after
// checkIn. Weekend detection uses checkOut's weekday in the engine's
// local timezone.
func (e *Engine) Compute(checkIn, checkOut time.Time) (Result, error) {
	if !checkOut.After(checkIn) {
		return Result{}, attendance.ErrNonMonotonicTime
	}

	workingHours := round2(checkOut.Sub(checkIn).Hours())
	overtimeHours := round2(math.Max(0, workingHours-e.standardHoursPerDay))

	weekday := checkOut.In(e.location).Weekday()
	isWeekend := weekday == time.Saturday || weekday == time.Sunday

	toil := overtimeHours
	if isWeekend && e.weekendTOILPolicy == WeekendTOILFullHours {
		toil = workingHours
	}

	return Result{
		WorkingHours:    workingHours,
		OvertimeHours:   overtimeHours,
		TOILHoursEarned: toil,
		IsWeekendWork:   isWeekend,
	}, nil
}

// round2 rounds to 2 decimals, half away from zero. Inputs here are
// always non-negative.
func round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
