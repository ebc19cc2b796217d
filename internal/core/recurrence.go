package core

import (
	"strings"
	"time"
)

// RecurrenceTemplate describes one form submission that expands into a
// batch of dated installments.
type RecurrenceTemplate struct {
	Description   string
	IsFixed       bool
	Amount        Money
	StartDate     Date
	Count         int
	Periodicity   Periodicity
	MarkFirstPaid bool
}

func (t RecurrenceTemplate) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if t.StartDate.IsZero() {
		return ErrInvalidDate
	}
	if t.Count < 1 {
		return ErrInvalidCount
	}
	if !t.Periodicity.Valid() {
		return ErrInvalidPeriod
	}
	// A one-time bill has exactly one installment; expanding it further
	// would produce count copies due on the same day.
	if t.Periodicity == OneTime && t.Count > 1 {
		return ErrOneTimeCount
	}
	return nil
}

// Expand produces the ordered installment batch for a template. Installment
// i (1-indexed) is due i-1 periods after the start date; only the first may
// be pre-marked paid, stamped with today's date. Expand is pure: the caller
// appends the batch to the payable collection as one atomic write.
//
// The caller is expected to have run Validate first; Expand does not
// re-check the template.
func Expand(t RecurrenceTemplate, today Date, newID func() string) []Payable {
	batch := make([]Payable, 0, t.Count)
	for i := 0; i < t.Count; i++ {
		paid := t.MarkFirstPaid && i == 0

		p := Payable{
			ID:              newID(),
			Description:     t.Description,
			IsFixed:         t.IsFixed,
			Amount:          t.Amount,
			DueDate:         Advance(t.StartDate, t.Periodicity, i),
			Periodicity:     t.Periodicity,
			RecurrenceIndex: i + 1,
			Status:          StatusPending,
		}
		if t.Count > 1 {
			p.RecurrenceTotal = t.Count
		}
		if paid {
			p.Status = StatusPaid
			p.PaidDate = today
		}
		batch = append(batch, p)
	}
	return batch
}

// Advance moves a start date forward by the given number of periods.
//
// Month and year steps always count from the original start date and clamp
// the day-of-month to the last valid day of the target month, so a bill due
// on the 31st lands on Feb 29 in a leap year and back on Mar 31 the month
// after. One-time periodicity never advances.
func Advance(start Date, p Periodicity, periods int) Date {
	if periods <= 0 {
		return start
	}
	switch p {
	case Weekly:
		return Date{Time: start.AddDate(0, 0, 7*periods)}
	case Monthly:
		return addMonthsClamped(start, periods)
	case Yearly:
		return addMonthsClamped(start, 12*periods)
	default:
		return start
	}
}

func addMonthsClamped(d Date, months int) Date {
	y, m, day := d.Time.Date()
	// Normalize the target month via the first of the month, then clamp.
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	if last := daysInMonth(first.Year(), first.Month()); day > last {
		day = last
	}
	return NewDate(first.Year(), int(first.Month()), day)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
