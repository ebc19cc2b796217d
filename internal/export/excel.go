// Package export renders the transaction ledger as a spreadsheet
// attachment.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"finor/internal/core"
)

const sheetName = "Transações"

var headers = []string{
	"ID", "Cliente", "Categoria", "Data do evento", "Data do pagamento",
	"Valor total", "Valor pago", "Status",
}

// Transactions writes the ledger into an xlsx workbook, one row per
// record in the given order. IDs are shortened to their first segment,
// matching what the list view shows.
func Transactions(ts []core.Transaction) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for row, t := range ts {
		values := []any{
			shortID(t.ID),
			t.ClientName,
			t.Category,
			t.EventDate.String(),
			t.PaymentDate.String(),
			t.TotalValue.Reais(),
			t.PaidValue.Reais(),
			string(t.Status),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row+1, err)
			}
		}
	}

	if err := f.SetColWidth(sheetName, "B", "E", 18); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// shortID keeps the first dash-separated segment of a uuid so the column
// stays readable.
func shortID(id string) string {
	for i := 0; i < len(id); i++ {
		if id[i] == '-' {
			return id[:i]
		}
	}
	return id
}
