// Package calendar builds Google Calendar event links for scheduled
// sessions. The link opens the calendar's event template prefilled with
// the session details; nothing is sent anywhere until the user saves it.
package calendar

import (
	"fmt"
	"net/url"

	"finor/internal/core"
)

const renderURL = "https://calendar.google.com/calendar/render"

// EventLink returns the prefilled event URL for a transaction's session.
// All-day event on the event date; the zero date yields an empty link.
func EventLink(t core.Transaction) string {
	if t.EventDate.IsZero() {
		return ""
	}

	title := t.ClientName
	if t.Category != "" {
		title = fmt.Sprintf("%s - %s", t.ClientName, t.Category)
	}

	day := fmt.Sprintf("%04d%02d%02d", t.EventDate.Year(), t.EventDate.Month(), t.EventDate.Day())
	details := fmt.Sprintf("Valor total: R$ %.2f / Valor pago: R$ %.2f",
		t.TotalValue.Reais(), t.PaidValue.Reais())

	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", title)
	q.Set("dates", day+"/"+day)
	q.Set("details", details)

	return renderURL + "?" + q.Encode()
}
