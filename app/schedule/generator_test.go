package schedule

import (
	"testing"
	"time"
)

// 2025-01-06 is a Monday.
var testMonday = time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)

func mustWeekdays(t *testing.T, frequency string) Weekdays {
	t.Helper()
	days, err := AllowedWeekdays(frequency)
	if err != nil {
		t.Fatalf("AllowedWeekdays(%s) failed: %v", frequency, err)
	}
	return days
}

func TestDeliveryDatesFullWeek(t *testing.T) {
	end := testMonday.AddDate(0, 0, 6)
	dates := DeliveryDates(testMonday, end, mustWeekdays(t, "Mon-Sun"))
	if len(dates) != 7 {
		t.Fatalf("expected 7 delivery dates, got %d", len(dates))
	}
	if !dates[0].Equal(testMonday) || !dates[6].Equal(end) {
		t.Fatalf("unexpected range: first=%v last=%v", dates[0], dates[6])
	}
}

func TestDeliveryDatesSkipsExcludedWeekdays(t *testing.T) {
	end := testMonday.AddDate(0, 0, 6)
	dates := DeliveryDates(testMonday, end, mustWeekdays(t, "Mon-Fri"))
	if len(dates) != 5 {
		t.Fatalf("expected 5 delivery dates, got %d", len(dates))
	}
	for _, d := range dates {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			t.Fatalf("unexpected weekend delivery date %v", d)
		}
	}
}

func TestDeliveryDatesEmptyRange(t *testing.T) {
	dates := DeliveryDates(testMonday.AddDate(0, 0, 1), testMonday, mustWeekdays(t, "Mon-Sun"))
	if len(dates) != 0 {
		t.Fatalf("expected no dates for inverted range, got %d", len(dates))
	}
}

func TestAdjustEndDateIgnoresClosureOnNonDeliveryDay(t *testing.T) {
	end := testMonday.AddDate(0, 0, 6)
	saturday := testMonday.AddDate(0, 0, 5)
	got := AdjustEndDate(testMonday, end, []time.Time{saturday}, mustWeekdays(t, "Mon-Fri"))
	if !got.Equal(end) {
		t.Fatalf("expected end date unchanged, got %v", got)
	}
}

func TestAdjustEndDateExtendsPerAffectedClosure(t *testing.T) {
	end := testMonday.AddDate(0, 0, 6)
	wednesday := testMonday.AddDate(0, 0, 2)
	got := AdjustEndDate(testMonday, end, []time.Time{wednesday}, mustWeekdays(t, "Mon-Fri"))
	if !got.Equal(end.AddDate(0, 0, 1)) {
		t.Fatalf("expected one extra day, got %v", got)
	}

	thursday := testMonday.AddDate(0, 0, 3)
	got = AdjustEndDate(testMonday, end, []time.Time{wednesday, thursday, saturdayOf(end)}, mustWeekdays(t, "Mon-Fri"))
	if !got.Equal(end.AddDate(0, 0, 2)) {
		t.Fatalf("expected two extra days, got %v", got)
	}
}

func TestAdjustEndDateIgnoresClosuresOutsideRange(t *testing.T) {
	end := testMonday.AddDate(0, 0, 6)
	before := testMonday.AddDate(0, 0, -3)
	after := end.AddDate(0, 0, 3)
	got := AdjustEndDate(testMonday, end, []time.Time{before, after}, mustWeekdays(t, "Mon-Sun"))
	if !got.Equal(end) {
		t.Fatalf("expected end date unchanged, got %v", got)
	}
}

func saturdayOf(end time.Time) time.Time {
	for d := end; ; d = d.AddDate(0, 0, -1) {
		if d.Weekday() == time.Saturday {
			return d
		}
	}
}

func TestExtensionDatesSkipsWeekendsAndClosures(t *testing.T) {
	sunday := testMonday.AddDate(0, 0, 6)
	nextMonday := testMonday.AddDate(0, 0, 7)
	nextTuesday := testMonday.AddDate(0, 0, 8)
	nextWednesday := testMonday.AddDate(0, 0, 9)

	dates := ExtensionDates(sunday, 2, mustWeekdays(t, "Mon-Fri"), NewDateSet([]time.Time{nextMonday}))
	if len(dates) != 2 {
		t.Fatalf("expected 2 extension dates, got %d", len(dates))
	}
	if !dates[0].Equal(nextTuesday) || !dates[1].Equal(nextWednesday) {
		t.Fatalf("unexpected extension dates: %v", dates)
	}
}

func TestExtensionDatesWalksToNextAllowedWeekday(t *testing.T) {
	friday := testMonday.AddDate(0, 0, 4)
	saturday := testMonday.AddDate(0, 0, 5)

	dates := ExtensionDates(friday, 1, mustWeekdays(t, "Sat-Sun"), NewDateSet(nil))
	if len(dates) != 1 || !dates[0].Equal(saturday) {
		t.Fatalf("expected next Saturday, got %v", dates)
	}
}

func TestExtensionDatesZero(t *testing.T) {
	dates := ExtensionDates(testMonday, 0, mustWeekdays(t, "Mon-Sun"), NewDateSet(nil))
	if len(dates) != 0 {
		t.Fatalf("expected no dates, got %v", dates)
	}
}

func TestNewOrderNumber(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		number := NewOrderNumber()
		if len(number) != 16 {
			t.Fatalf("expected 16 digits, got %q", number)
		}
		if number[0] == '0' {
			t.Fatalf("expected no leading zero, got %q", number)
		}
		for _, c := range number {
			if c < '0' || c > '9' {
				t.Fatalf("expected digits only, got %q", number)
			}
		}
		seen[number] = true
	}
	if len(seen) < 2 {
		t.Fatal("expected order numbers to vary")
	}
}
