package schedule

import (
	"errors"
	"time"
)

var (
	ErrUnknownMealFrequency = errors.New("unknown meal frequency")
	ErrUnknownMealPlan      = errors.New("unknown meal plan")
)

// Weekdays is an allowed-weekday set.
type Weekdays map[time.Weekday]bool

func (w Weekdays) Contains(t time.Time) bool {
	return w[t.Weekday()]
}

var mealFrequencies = map[string]Weekdays{
	"Mon-Fri": {time.Monday: true, time.Tuesday: true, time.Wednesday: true, time.Thursday: true, time.Friday: true},
	"Mon-Sat": {time.Monday: true, time.Tuesday: true, time.Wednesday: true, time.Thursday: true, time.Friday: true, time.Saturday: true},
	"Mon-Sun": {time.Sunday: true, time.Monday: true, time.Tuesday: true, time.Wednesday: true, time.Thursday: true, time.Friday: true, time.Saturday: true},
	"Sat-Sun": {time.Saturday: true, time.Sunday: true},
}

var mealPlans = map[string]int{
	"1 Week":   7,
	"2 Weeks":  14,
	"1 Month":  30,
	"3 Months": 90,
}

// AllowedWeekdays maps a meal-frequency label to its delivery weekdays.
// Unknown labels are a client input error, not a server fault.
func AllowedWeekdays(frequency string) (Weekdays, error) {
	days, ok := mealFrequencies[frequency]
	if !ok {
		return nil, ErrUnknownMealFrequency
	}
	return days, nil
}

// PlanDurationDays maps a meal-plan label to its duration in calendar days.
func PlanDurationDays(plan string) (int, error) {
	days, ok := mealPlans[plan]
	if !ok {
		return 0, ErrUnknownMealPlan
	}
	return days, nil
}

// Day strips the time-of-day component, leaving midnight UTC. All order dates
// and closure dates are compared and stored in this form.
func Day(t time.Time) time.Time {
	return time.Date(t.UTC().Year(), t.UTC().Month(), t.UTC().Day(), 0, 0, 0, 0, time.UTC)
}

// DateSet indexes normalized dates for membership checks.
type DateSet map[time.Time]bool

func NewDateSet(dates []time.Time) DateSet {
	set := make(DateSet, len(dates))
	for _, d := range dates {
		set[Day(d)] = true
	}
	return set
}

func (s DateSet) Contains(t time.Time) bool {
	return s[Day(t)]
}
