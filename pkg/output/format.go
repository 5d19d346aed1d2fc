// Package output provides utilities for formatting and displaying invoice
// breakdowns and deadline tables.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/iwvelando/mediation-calc/internal/deadline"
	"github.com/iwvelando/mediation-calc/internal/invoice"
	"github.com/iwvelando/mediation-calc/pkg/constants"
)

// InvoicePretty writes human-readable receipts, one table per breakdown.
func InvoicePretty(w io.Writer, breakdowns []invoice.Breakdown, locale string) error {
	for i, b := range breakdowns {
		view := NewInvoiceView(b, locale)
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s\n\n", view.Title); err != nil {
			return err
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "Makbuza Yazılacak\tTüzel Kişi\tGerçek Kişi\n")
		fmt.Fprintf(tw, "%s\t%s\t%s\n", strings.Repeat("=", 28), strings.Repeat("=", 16), strings.Repeat("=", 16))
		for _, row := range view.Rows {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", row.Label, row.LegalEntityDisplay, row.IndividualDisplay)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// InvoiceCSV writes breakdowns in comma-separated value format.
func InvoiceCSV(w io.Writer, breakdowns []invoice.Breakdown) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"option", "fee", "row", "label", "legal_entity", "individual"}); err != nil {
		return err
	}
	for _, b := range breakdowns {
		view := NewInvoiceView(b, constants.LocaleEnglish)
		for _, row := range view.Rows {
			record := []string{strconv.Itoa(view.Option), view.Fee, row.Key, row.Label, row.LegalEntity, row.Individual}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// InvoiceJSON writes breakdowns as a JSON array.
func InvoiceJSON(w io.Writer, breakdowns []invoice.Breakdown, locale string) error {
	views := make([]InvoiceView, 0, len(breakdowns))
	for _, b := range breakdowns {
		views = append(views, NewInvoiceView(b, locale))
	}
	return writeJSON(w, views)
}

// OptionsPretty lists the tax treatments with their codes.
func OptionsPretty(w io.Writer, treatments []invoice.Treatment) error {
	for _, option := range NewOptionViews(treatments) {
		if _, err := fmt.Fprintf(w, "%d - %s\n", option.Code, option.Name); err != nil {
			return err
		}
	}
	return nil
}

// OptionsCSV writes the tax treatments as code,name records.
func OptionsCSV(w io.Writer, treatments []invoice.Treatment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"code", "name"}); err != nil {
		return err
	}
	for _, option := range NewOptionViews(treatments) {
		if err := cw.Write([]string{strconv.Itoa(option.Code), option.Name}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// OptionsJSON writes the tax treatments as JSON.
func OptionsJSON(w io.Writer, treatments []invoice.Treatment) error {
	return writeJSON(w, NewOptionViews(treatments))
}

// DeadlinesPretty writes the category by week grid.
func DeadlinesPretty(w io.Writer, table deadline.Table) error {
	view := NewDeadlineTableView(table)
	if _, err := fmt.Fprintf(w, "Başlangıç Tarihi: %s\n\n", view.Start); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := []string{"Uyuşmazlık Türü"}
	for _, week := range view.Offsets {
		header = append(header, fmt.Sprintf("%d. Hafta", week))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range view.Rows {
		cells := []string{row.Category}
		for _, cell := range row.Cells {
			cells = append(cells, cellText(cell))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// DeadlinesCSV writes the grid with one column per week offset.
func DeadlinesCSV(w io.Writer, table deadline.Table) error {
	view := NewDeadlineTableView(table)
	cw := csv.NewWriter(w)

	header := []string{"category"}
	for _, week := range view.Offsets {
		header = append(header, fmt.Sprintf("week_%d", week))
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range view.Rows {
		record := []string{row.Category}
		for _, cell := range row.Cells {
			record = append(record, cellText(cell))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DeadlinesJSON writes the grid as JSON.
func DeadlinesJSON(w io.Writer, table deadline.Table) error {
	return writeJSON(w, NewDeadlineTableView(table))
}

// CategoriesPretty lists the catalog with its week offsets.
func CategoriesPretty(w io.Writer, categories []deadline.Category) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Uyuşmazlık Türü\tHaftalar")
	for _, category := range NewCategoryViews(categories) {
		weeks := make([]string, 0, len(category.Weeks))
		for _, week := range category.Weeks {
			weeks = append(weeks, strconv.Itoa(week))
		}
		fmt.Fprintf(tw, "%s\t%s\n", category.Name, strings.Join(weeks, ", "))
	}
	return tw.Flush()
}

// CategoriesCSV writes one record per category with weeks joined by spaces.
func CategoriesCSV(w io.Writer, categories []deadline.Category) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"category", "weeks"}); err != nil {
		return err
	}
	for _, category := range NewCategoryViews(categories) {
		weeks := make([]string, 0, len(category.Weeks))
		for _, week := range category.Weeks {
			weeks = append(weeks, strconv.Itoa(week))
		}
		if err := cw.Write([]string{category.Name, strings.Join(weeks, " ")}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CategoriesJSON writes the catalog as JSON.
func CategoriesJSON(w io.Writer, categories []deadline.Category) error {
	return writeJSON(w, NewCategoryViews(categories))
}

func writeJSON(w io.Writer, payload interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
