package invoice

import (
	"github.com/iwvelando/mediation-calc/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// Treatment is one of the four closed tax-treatment conventions describing
// whether the quoted fee already contains VAT and withholding tax. The set is
// sealed by the unexported allocate method.
type Treatment interface {
	// Code is the stable numeric option code (1-4).
	Code() int
	// Name is the display name used in receipt headings.
	Name() string

	allocate(fee decimal.Decimal) allocation
}

// VATAndWithholdingIncluded is option 1: the fee contains both VAT and
// withholding tax.
type VATAndWithholdingIncluded struct{}

// VATIncludedWithholdingExcluded is option 2: the fee contains VAT but not
// withholding tax.
type VATIncludedWithholdingExcluded struct{}

// VATAndWithholdingExcluded is option 3: the fee is the net amount the
// mediator receives.
type VATAndWithholdingExcluded struct{}

// VATExcludedWithholdingIncluded is option 4: the fee is the gross amount
// before VAT.
type VATExcludedWithholdingIncluded struct{}

var treatments = [...]Treatment{
	VATAndWithholdingIncluded{},
	VATIncludedWithholdingExcluded{},
	VATAndWithholdingExcluded{},
	VATExcludedWithholdingIncluded{},
}

// Treatments returns the four treatments in option-code order.
func Treatments() []Treatment {
	out := make([]Treatment, len(treatments))
	copy(out, treatments[:])
	return out
}

// ParseTreatment maps an option code to its treatment.
func ParseTreatment(code int) (Treatment, error) {
	if code < 1 || code > len(treatments) {
		return nil, &InvalidOptionError{Code: code}
	}
	return treatments[code-1], nil
}

func (VATAndWithholdingIncluded) Code() int      { return 1 }
func (VATIncludedWithholdingExcluded) Code() int { return 2 }
func (VATAndWithholdingExcluded) Code() int      { return 3 }
func (VATExcludedWithholdingIncluded) Code() int { return 4 }

func (VATAndWithholdingIncluded) Name() string      { return "KDV ve Stopaj Dahil" }
func (VATIncludedWithholdingExcluded) Name() string { return "KDV Dahil, Stopaj Hariç" }
func (VATAndWithholdingExcluded) Name() string      { return "KDV ve Stopaj Hariç" }
func (VATExcludedWithholdingIncluded) Name() string { return "KDV Hariç, Stopaj Dahil" }

func (VATAndWithholdingIncluded) allocate(fee decimal.Decimal) allocation {
	gross := mathutil.RemoveRate(fee, taxRate)
	withholding := mathutil.ApplyRate(gross, taxRate)
	vat := mathutil.ApplyRate(gross, taxRate)
	return allocation{
		gross:       pair(gross, gross),
		withholding: pair(withholding, decimal.Zero),
		net:         pair(gross.Sub(withholding), gross),
		vat:         pair(vat, vat),
		total:       pair(gross, gross.Add(vat)),
	}
}

func (VATIncludedWithholdingExcluded) allocate(fee decimal.Decimal) allocation {
	withholding := mathutil.ApplyRate(fee, taxRate)
	individualGross := mathutil.RemoveRate(fee, taxRate)
	return allocation{
		gross:       pair(fee, individualGross),
		withholding: pair(withholding, decimal.Zero),
		net:         pair(fee.Sub(withholding), individualGross),
		vat:         pair(mathutil.ApplyRate(fee, taxRate), mathutil.ApplyRate(individualGross, taxRate)),
		total:       pair(fee, fee),
	}
}

func (VATAndWithholdingExcluded) allocate(fee decimal.Decimal) allocation {
	legalGross := mathutil.GrossUp(fee, taxRate)
	legalTax := mathutil.ApplyRate(legalGross, taxRate)
	individualVAT := mathutil.ApplyRate(fee, taxRate)
	return allocation{
		gross:       pair(legalGross, fee),
		withholding: pair(legalTax, decimal.Zero),
		net:         pair(fee, fee),
		vat:         pair(legalTax, individualVAT),
		total:       pair(legalGross, fee.Add(individualVAT)),
	}
}

func (VATExcludedWithholdingIncluded) allocate(fee decimal.Decimal) allocation {
	tax := mathutil.ApplyRate(fee, taxRate)
	return allocation{
		gross:       pair(fee, fee),
		withholding: pair(tax, decimal.Zero),
		net:         pair(fee.Sub(tax), fee),
		vat:         pair(tax, tax),
		total:       pair(fee, fee.Add(tax)),
	}
}
