package calc

import "github.com/shopspring/decimal"

// ExchangeSettlement is the net financial outcome of exchanging returned
// items for new ones. AdditionalPayment - RefundIssued always equals
// NetDifference, and at most one of the two is non-zero.
type ExchangeSettlement struct {
	NetDifference     decimal.Decimal
	AdditionalPayment decimal.Decimal
	RefundIssued      decimal.Decimal
	CreditApplied     decimal.Decimal
}

// ComputeExchange settles a return's refund against a new purchase's total.
// A positive net difference means the customer owes the difference; a
// negative one means a refund is owed; zero is an even exchange. The return
// credit actually consumed is whichever of the two amounts is smaller.
func ComputeExchange(returnRefundAmount, newItemsTotal decimal.Decimal) ExchangeSettlement {
	refund := round(returnRefundAmount)
	newTotal := round(newItemsTotal)
	net := round(newTotal.Sub(refund))

	switch {
	case net.IsPositive():
		return ExchangeSettlement{
			NetDifference:     net,
			AdditionalPayment: net,
			RefundIssued:      decimal.Zero,
			CreditApplied:     refund,
		}
	case net.IsNegative():
		return ExchangeSettlement{
			NetDifference:     net,
			AdditionalPayment: decimal.Zero,
			RefundIssued:      net.Neg(),
			CreditApplied:     newTotal,
		}
	default:
		return ExchangeSettlement{
			NetDifference:     decimal.Zero,
			AdditionalPayment: decimal.Zero,
			RefundIssued:      decimal.Zero,
			CreditApplied:     refund,
		}
	}
}

// IsEven reports whether the exchange settles with no money moving
func (s ExchangeSettlement) IsEven() bool {
	return s.NetDifference.IsZero()
}
