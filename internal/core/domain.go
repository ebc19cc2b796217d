package core

import (
	"errors"
	"strings"
)

const (
	Monthly Periodicity = "monthly"
	Weekly  Periodicity = "weekly"
	Yearly  Periodicity = "yearly"
	OneTime Periodicity = "one-time"
)

const (
	StatusPaid      Status = "paid"
	StatusPending   Status = "pending"
	StatusScheduled Status = "scheduled"
)

type (
	Periodicity string
	Status      string

	// Transaction is a single client engagement/payment record.
	Transaction struct {
		ID          string `json:"id"`
		ClientName  string `json:"clientName"`
		Category    string `json:"category"`
		TotalValue  Money  `json:"totalValue"`
		PaidValue   Money  `json:"paidValue"`
		EventDate   Date   `json:"eventDate"`
		PaymentDate Date   `json:"paymentDate"`
		Status      Status `json:"status"`
		Notes       string `json:"notes,omitempty"`
	}

	// Payable is one installment of a recurring or one-off bill.
	Payable struct {
		ID              string      `json:"id"`
		Description     string      `json:"description"`
		IsFixed         bool        `json:"isFixed"`
		Amount          Money       `json:"amount"`
		DueDate         Date        `json:"dueDate"`
		Periodicity     Periodicity `json:"periodicity"`
		RecurrenceIndex int         `json:"recurrenceIndex,omitempty"`
		RecurrenceTotal int         `json:"recurrenceTotal,omitempty"`
		Status          Status      `json:"status"`
		PaidDate        Date        `json:"paidDate"`
	}

	// PixKey is a named distribution share applied over a transaction's
	// paid value. Percentages are not required to sum to 100.
	PixKey struct {
		ID      string  `json:"id"`
		Name    string  `json:"name"`
		Percent float64 `json:"percent"`
	}

	// CategoryItem is a pricing preset. Transactions reference categories
	// by name only; a rename or removal never cascades.
	CategoryItem struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		DefaultValue Money  `json:"defaultValue"`
	}

	Settings struct {
		DiscountPercent float64        `json:"discountPercent"`
		PixKeys         []PixKey       `json:"pixKeys"`
		Categories      []CategoryItem `json:"categories"`
	}
)

var (
	ErrEmptyClientName  = errors.New("empty client name")
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidCount     = errors.New("recurrence count must be at least 1")
	ErrInvalidPeriod    = errors.New("invalid periodicity")
	ErrOneTimeCount     = errors.New("one-time periodicity allows a single installment only")
)

// DeriveStatus computes a transaction's status from its value fields.
// Paid exactly when the paid value covers the total; scheduled is never
// produced here, it is only assignable externally.
func DeriveStatus(total, paid Money) Status {
	if paid.Cents >= total.Cents {
		return StatusPaid
	}
	return StatusPending
}

func (p Periodicity) Valid() bool {
	switch p {
	case Monthly, Weekly, Yearly, OneTime:
		return true
	}
	return false
}

func (t Transaction) Validate() error {
	if len(strings.TrimSpace(t.ClientName)) == 0 {
		return ErrEmptyClientName
	}
	if t.TotalValue.Cents <= 0 {
		return ErrInvalidAmount
	}
	if t.PaidValue.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Outstanding returns the unpaid remainder; negative when overpaid.
func (t Transaction) Outstanding() Money {
	return t.TotalValue.Sub(t.PaidValue)
}

func (p Payable) Validate() error {
	if len(strings.TrimSpace(p.Description)) == 0 {
		return ErrEmptyDescription
	}
	if p.Amount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if p.DueDate.IsZero() {
		return ErrInvalidDate
	}
	if !p.Periodicity.Valid() {
		return ErrInvalidPeriod
	}
	return nil
}
