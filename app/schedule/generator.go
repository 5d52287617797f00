package schedule

import (
	"crypto/rand"
	"math/big"
	"time"
)

// DeliveryDates lists every date in [start, end] (inclusive, normalized to
// midnight UTC) whose weekday is in the allowed set.
func DeliveryDates(start, end time.Time, allowed Weekdays) []time.Time {
	dates := make([]time.Time, 0)
	for d := Day(start); !d.After(Day(end)); d = d.AddDate(0, 0, 1) {
		if allowed.Contains(d) {
			dates = append(dates, d)
		}
	}
	return dates
}

// AdjustEndDate extends the end date by one calendar day for every closure
// that lands inside [start, end] on an allowed weekday. A closure on a day
// the subscriber was never going to receive a delivery costs them nothing.
func AdjustEndDate(start, end time.Time, closures []time.Time, allowed Weekdays) time.Time {
	startDay, endDay := Day(start), Day(end)
	k := 0
	for _, c := range closures {
		day := Day(c)
		if day.Before(startDay) || day.After(endDay) {
			continue
		}
		if allowed.Contains(day) {
			k++
		}
	}
	return endDay.AddDate(0, 0, k)
}

// ExtensionDates walks forward one calendar day at a time from the day after
// `after`, collecting dates that are both allowed weekdays and not closed,
// until n qualifying dates are found. The last returned date is the new end
// date that compensates the subscriber with exactly n deliverable days.
func ExtensionDates(after time.Time, n int, allowed Weekdays, closed DateSet) []time.Time {
	dates := make([]time.Time, 0, n)
	d := Day(after)
	for len(dates) < n {
		d = d.AddDate(0, 0, 1)
		if allowed.Contains(d) && !closed.Contains(d) {
			dates = append(dates, d)
		}
	}
	return dates
}

const orderNumberDigits = 16

// NewOrderNumber returns a random 16-decimal-digit order number. Uniqueness
// is enforced by the orders table constraint; callers regenerate on conflict.
func NewOrderNumber() string {
	digits := make([]byte, orderNumberDigits)
	max := big.NewInt(10)
	for i := range digits {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	// no leading zero
	if digits[0] == '0' {
		digits[0] = '9'
	}
	return string(digits)
}
