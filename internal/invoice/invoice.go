// Package invoice allocates a mediation fee across VAT and withholding tax
// for a professional-service receipt, side by side for a legal-entity payer
// and an individual payer. Individuals never bear withholding tax.
package invoice

import (
	"github.com/iwvelando/mediation-calc/pkg/constants"
	"github.com/iwvelando/mediation-calc/pkg/mathutil"
	"github.com/shopspring/decimal"
)

var taxRate = decimal.RequireFromString(constants.TaxRate)

// TaxRate returns the rate used for both VAT and withholding tax.
func TaxRate() decimal.Decimal {
	return taxRate
}

// Row identifies one receipt line. Rows are declared in presentation order.
type Row int

const (
	RowGross Row = iota
	RowWithholding
	RowNet
	RowVAT
	RowTotal

	// RowCount is the number of lines on every breakdown.
	RowCount = int(RowTotal) + 1
)

var rowLabels = [RowCount]string{
	"Brüt (KDV Hariç)",
	"Gelir Vergisi Stopajı (%20)",
	"Alınan Net Ücret",
	"KDV (%20)",
	"Tahsil Edilen Ücret",
}

var rowKeys = [RowCount]string{"gross", "withholding", "net", "vat", "total"}

// String returns the receipt label of the row.
func (r Row) String() string {
	if r < 0 || int(r) >= RowCount {
		return "unknown"
	}
	return rowLabels[r]
}

// Key returns a stable machine-readable identifier for the row.
func (r Row) Key() string {
	if r < 0 || int(r) >= RowCount {
		return "unknown"
	}
	return rowKeys[r]
}

// LineItem is a single receipt line with the amount for each payer type.
type LineItem struct {
	Row         Row
	Label       string
	LegalEntity decimal.Decimal
	Individual  decimal.Decimal
}

// Breakdown is the full five-line receipt for one fee and treatment.
type Breakdown struct {
	Fee       decimal.Decimal
	Treatment Treatment
	Items     [RowCount]LineItem
}

type amounts struct {
	legalEntity decimal.Decimal
	individual  decimal.Decimal
}

func pair(legalEntity, individual decimal.Decimal) amounts {
	return amounts{legalEntity: legalEntity, individual: individual}
}

type allocation struct {
	gross       amounts
	withholding amounts
	net         amounts
	vat         amounts
	total       amounts
}

// Allocate computes the breakdown of fee under treatment. The fee is not
// validated; zero and negative values flow through the arithmetic.
func Allocate(fee decimal.Decimal, treatment Treatment) Breakdown {
	a := treatment.allocate(fee)
	b := Breakdown{Fee: fee, Treatment: treatment}
	for i, v := range [RowCount]amounts{a.gross, a.withholding, a.net, a.vat, a.total} {
		row := Row(i)
		b.Items[i] = LineItem{
			Row:         row,
			Label:       row.String(),
			LegalEntity: v.legalEntity,
			Individual:  v.individual,
		}
	}
	return b
}

// Compute resolves the option code and allocates fee. An unknown code
// returns an InvalidOptionError and no breakdown.
func Compute(fee decimal.Decimal, code int) (Breakdown, error) {
	treatment, err := ParseTreatment(code)
	if err != nil {
		return Breakdown{}, err
	}
	return Allocate(fee, treatment), nil
}

// ComputeAll allocates fee under every treatment, in option-code order.
func ComputeAll(fee decimal.Decimal) []Breakdown {
	out := make([]Breakdown, 0, len(treatments))
	for _, treatment := range treatments {
		out = append(out, Allocate(fee, treatment))
	}
	return out
}

// Item returns the line for row. A row outside the receipt yields a zero
// line labelled "unknown".
func (b Breakdown) Item(row Row) LineItem {
	if row < 0 || int(row) >= RowCount {
		return LineItem{Row: row, Label: row.String(), LegalEntity: decimal.Zero, Individual: decimal.Zero}
	}
	return b.Items[row]
}

// Rounded returns a copy with every amount rounded to whole cents.
func (b Breakdown) Rounded() Breakdown {
	out := b
	for i := range out.Items {
		out.Items[i].LegalEntity = mathutil.Round(out.Items[i].LegalEntity)
		out.Items[i].Individual = mathutil.Round(out.Items[i].Individual)
	}
	return out
}
