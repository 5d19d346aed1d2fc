// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/mediation-calc/internal/deadline"
	"github.com/iwvelando/mediation-calc/pkg/output"
)

// FindRow finds a category row by name in a deadline table.
// Returns a pointer to the row if found, nil otherwise.
func FindRow(table deadline.Table, category string) *deadline.TableRow {
	for i := range table.Rows {
		if table.Rows[i].Category == category {
			return &table.Rows[i]
		}
	}
	return nil
}

// FindRowView is FindRow for the serialised table.
func FindRowView(view output.DeadlineTableView, category string) *output.DeadlineRowView {
	for i := range view.Rows {
		if view.Rows[i].Category == category {
			return &view.Rows[i]
		}
	}
	return nil
}

// FindInvoiceRow finds a receipt line by key in a serialised breakdown.
func FindInvoiceRow(view output.InvoiceView, key string) *output.InvoiceRowView {
	for i := range view.Rows {
		if view.Rows[i].Key == key {
			return &view.Rows[i]
		}
	}
	return nil
}
