package output

import (
	"fmt"

	"github.com/iwvelando/mediation-calc/internal/deadline"
	"github.com/iwvelando/mediation-calc/internal/invoice"
	"github.com/iwvelando/mediation-calc/pkg/constants"
	"github.com/iwvelando/mediation-calc/pkg/datetime"
	"github.com/iwvelando/mediation-calc/pkg/format"
)

// InvoiceView is the serialisable form of a breakdown.
type InvoiceView struct {
	Option     int              `json:"option"`
	OptionName string           `json:"optionName"`
	Fee        string           `json:"fee"`
	Title      string           `json:"title"`
	Rows       []InvoiceRowView `json:"rows"`
}

// InvoiceRowView is one receipt line. Raw amounts are rounded to cents and
// use a dot decimal mark; the Display fields use the requested locale.
type InvoiceRowView struct {
	Key                string `json:"key"`
	Label              string `json:"label"`
	LegalEntity        string `json:"legalEntity"`
	Individual         string `json:"individual"`
	LegalEntityDisplay string `json:"legalEntityDisplay"`
	IndividualDisplay  string `json:"individualDisplay"`
}

// DeadlineTableView is the serialisable form of a deadline table.
type DeadlineTableView struct {
	Start   string            `json:"start"`
	Offsets []int             `json:"offsets"`
	Rows    []DeadlineRowView `json:"rows"`
}

// DeadlineRowView holds one category's cells.
type DeadlineRowView struct {
	Category string             `json:"category"`
	Cells    []DeadlineCellView `json:"cells"`
}

// DeadlineCellView is empty-dated when the offset does not apply.
type DeadlineCellView struct {
	Week       int    `json:"week"`
	Applicable bool   `json:"applicable"`
	Date       string `json:"date,omitempty"`
}

// CategoryView lists a category and its week offsets.
type CategoryView struct {
	Name  string `json:"name"`
	Weeks []int  `json:"weeks"`
}

// OptionView lists a tax treatment.
type OptionView struct {
	Code int    `json:"code"`
	Name string `json:"name"`
}

// Title returns the receipt heading for a breakdown.
func Title(b invoice.Breakdown, locale string) string {
	return fmt.Sprintf("%s%s için %s Serbest Meslek Makbuzu Hesabı",
		constants.CurrencySymbol, format.Number(b.Fee, locale), b.Treatment.Name())
}

// NewInvoiceView converts a breakdown for rendering in locale.
func NewInvoiceView(b invoice.Breakdown, locale string) InvoiceView {
	rounded := b.Rounded()
	view := InvoiceView{
		Option:     b.Treatment.Code(),
		OptionName: b.Treatment.Name(),
		Fee:        b.Fee.StringFixed(constants.CurrencyPlaces),
		Title:      Title(b, locale),
		Rows:       make([]InvoiceRowView, 0, len(rounded.Items)),
	}
	for _, item := range rounded.Items {
		view.Rows = append(view.Rows, InvoiceRowView{
			Key:                item.Row.Key(),
			Label:              item.Label,
			LegalEntity:        item.LegalEntity.StringFixed(constants.CurrencyPlaces),
			Individual:         item.Individual.StringFixed(constants.CurrencyPlaces),
			LegalEntityDisplay: format.Lira(item.LegalEntity, locale),
			IndividualDisplay:  format.Lira(item.Individual, locale),
		})
	}
	return view
}

// NewDeadlineTableView converts a deadline table, rendering dates as DD.MM.YYYY.
func NewDeadlineTableView(table deadline.Table) DeadlineTableView {
	view := DeadlineTableView{
		Start:   datetime.FormatDate(table.Start),
		Offsets: table.Offsets,
		Rows:    make([]DeadlineRowView, 0, len(table.Rows)),
	}
	for _, row := range table.Rows {
		rowView := DeadlineRowView{Category: row.Category, Cells: make([]DeadlineCellView, 0, len(row.Cells))}
		for _, cell := range row.Cells {
			cellView := DeadlineCellView{Week: cell.Week, Applicable: cell.Applicable}
			if cell.Applicable && !cell.Date.IsZero() {
				cellView.Date = datetime.FormatDate(cell.Date)
			}
			rowView.Cells = append(rowView.Cells, cellView)
		}
		view.Rows = append(view.Rows, rowView)
	}
	return view
}

// NewCategoryViews converts a catalog.
func NewCategoryViews(categories []deadline.Category) []CategoryView {
	views := make([]CategoryView, 0, len(categories))
	for _, category := range categories {
		views = append(views, CategoryView{Name: category.Name, Weeks: category.Weeks})
	}
	return views
}

// NewOptionViews converts the tax treatments.
func NewOptionViews(treatments []invoice.Treatment) []OptionView {
	views := make([]OptionView, 0, len(treatments))
	for _, treatment := range treatments {
		views = append(views, OptionView{Code: treatment.Code(), Name: treatment.Name()})
	}
	return views
}

func cellText(cell DeadlineCellView) string {
	if !cell.Applicable || cell.Date == "" {
		return constants.NotApplicableMarker
	}
	return cell.Date
}
