package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"finor/internal/core"
)

func TestTransactions(t *testing.T) {
	ts := []core.Transaction{
		{
			ID:         "a1b2c3d4-0000-0000-0000-000000000000",
			ClientName: "Maria",
			Category:   "24 fotos /Ensaio ESSÊNCIA",
			TotalValue: core.Money{Cents: 19900},
			PaidValue:  core.Money{Cents: 19900},
			EventDate:  core.NewDate(2024, 5, 1),
			Status:     core.StatusPaid,
		},
		{
			ID:         "e5f6a7b8-0000-0000-0000-000000000000",
			ClientName: "João",
			TotalValue: core.Money{Cents: 30000},
			PaidValue:  core.Money{Cents: 10000},
			EventDate:  core.NewDate(2024, 6, 12),
			Status:     core.StatusPending,
		},
	}

	data, err := Transactions(ts)
	if err != nil {
		t.Fatalf("Transactions() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("workbook does not open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("workbook has %d rows, want header + 2", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][1] != "Cliente" {
		t.Errorf("header row = %v", rows[0])
	}
	if rows[1][0] != "a1b2c3d4" {
		t.Errorf("id not shortened: %q", rows[1][0])
	}
	if rows[1][1] != "Maria" || rows[1][7] != "paid" {
		t.Errorf("first data row = %v", rows[1])
	}
	if rows[2][3] != "2024-06-12" {
		t.Errorf("event date cell = %q, want 2024-06-12", rows[2][3])
	}
}

func TestTransactions_Empty(t *testing.T) {
	data, err := Transactions(nil)
	if err != nil {
		t.Fatalf("Transactions(nil) error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("workbook does not open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Errorf("empty ledger workbook has %d rows, want header only", len(rows))
	}
}
