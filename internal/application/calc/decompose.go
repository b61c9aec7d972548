package calc

import "github.com/shopspring/decimal"

// TaxParts is the result of splitting an amount into its tax-exclusive base
// and tax component.
type TaxParts struct {
	Base decimal.Decimal
	Tax  decimal.Decimal
}

// Decompose splits amount into a tax-exclusive base and a tax amount under
// the sale's tax regime. When vatIncluded is true the amount is treated as
// already containing VAT and the base is extracted; otherwise the amount is
// the base and VAT is added on top.
//
// The caller guarantees amount >= 0; a negative amount is a contract
// violation, not a recoverable input.
func Decompose(amount decimal.Decimal, vatIncluded bool) TaxParts {
	if vatIncluded {
		base := round(amount.Div(onePlusTaxRate))
		return TaxParts{
			Base: base,
			Tax:  round(amount.Sub(base)),
		}
	}
	return TaxParts{
		Base: round(amount),
		Tax:  round(amount.Mul(TaxRate)),
	}
}

// Compose is the inverse of Decompose: given a tax-exclusive base it returns
// the tax and the tax-inclusive total.
func Compose(base decimal.Decimal) TaxParts {
	return TaxParts{
		Base: round(base),
		Tax:  round(base.Mul(TaxRate)),
	}
}

// Total returns base + tax
func (p TaxParts) Total() decimal.Decimal {
	return round(p.Base.Add(p.Tax))
}
