package core

import (
	"math"
	"sort"
	"strings"
)

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// FilterAll matches every transaction status.
const FilterAll StatusFilter = "all"

type (
	SortOrder    string
	StatusFilter string

	SummaryStats struct {
		Received   Money `json:"received"`
		Receivable Money `json:"receivable"`
	}

	// Share is one pix key's cut of a transaction's paid value.
	Share struct {
		Name    string  `json:"name"`
		Percent float64 `json:"percent"`
		Amount  Money   `json:"amount"`
	}
)

// Summarize folds the whole ledger into the two dashboard numbers.
// Receivable is not clamped: an overpaid transaction contributes a
// negative remainder.
func Summarize(ts []Transaction) SummaryStats {
	var stats SummaryStats
	for _, t := range ts {
		stats.Received = stats.Received.Add(t.PaidValue)
		stats.Receivable = stats.Receivable.Add(t.Outstanding())
	}
	return stats
}

// FilterTransactions returns the transactions whose client name contains
// the search term (case-insensitive) and whose status matches the filter,
// sorted by event date. The sort is stable: ties keep input order.
func FilterTransactions(ts []Transaction, search string, filter StatusFilter, order SortOrder) []Transaction {
	needle := strings.ToLower(strings.TrimSpace(search))

	out := make([]Transaction, 0, len(ts))
	for _, t := range ts {
		if needle != "" && !strings.Contains(strings.ToLower(t.ClientName), needle) {
			continue
		}
		if filter != FilterAll && filter != "" && t.Status != Status(filter) {
			continue
		}
		out = append(out, t)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if order == SortAsc {
			return out[i].EventDate.Before(out[j].EventDate)
		}
		return out[i].EventDate.After(out[j].EventDate)
	})
	return out
}

// Debtors lists every transaction with an outstanding balance, oldest
// event first.
func Debtors(ts []Transaction) []Transaction {
	out := make([]Transaction, 0)
	for _, t := range ts {
		if t.Outstanding().Cents > 0 {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EventDate.Before(out[j].EventDate)
	})
	return out
}

// FilterPayables partitions by status (paid vs pending) and sorts by due
// date ascending.
func FilterPayables(ps []Payable, showPaid bool) []Payable {
	want := StatusPending
	if showPaid {
		want = StatusPaid
	}
	out := make([]Payable, 0, len(ps))
	for _, p := range ps {
		if p.Status == want {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out
}

// Distribution splits a paid value across the configured pix keys.
// Percentages need not sum to 100; each share is rounded to the cent
// independently.
func Distribution(keys []PixKey, paid Money) []Share {
	shares := make([]Share, 0, len(keys))
	for _, k := range keys {
		shares = append(shares, Share{
			Name:    k.Name,
			Percent: k.Percent,
			Amount:  Money{Cents: int64(math.Round(float64(paid.Cents) * k.Percent / 100))},
		})
	}
	return shares
}
