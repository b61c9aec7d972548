package calc

import (
	"fmt"

	"github.com/bottegasoft/bottega-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// PaymentSplit is the amount settled on each payment channel.
type PaymentSplit struct {
	Cash         decimal.Decimal
	Card         decimal.Decimal
	BankTransfer decimal.Decimal
}

// Sum returns the total across all channels
func (p PaymentSplit) Sum() decimal.Decimal {
	return round(p.Cash.Add(p.Card).Add(p.BankTransfer))
}

// Channel returns the amount on the given channel
func (p PaymentSplit) Channel(ch enum.PaymentChannel) decimal.Decimal {
	switch ch {
	case enum.ChannelCard:
		return p.Card
	case enum.ChannelBankTransfer:
		return p.BankTransfer
	default:
		return p.Cash
	}
}

// withChannel returns a copy of the split with the given channel set
func (p PaymentSplit) withChannel(ch enum.PaymentChannel, amount decimal.Decimal) PaymentSplit {
	switch ch {
	case enum.ChannelCard:
		p.Card = amount
	case enum.ChannelBankTransfer:
		p.BankTransfer = amount
	default:
		p.Cash = amount
	}
	return p
}

// ReconcilePayment validates a payment split against the sale total and
// returns the normalized split to persist.
//
// For a single payment the chosen channel is forced to the total and the
// other channels are zeroed. For a hybrid payment the channel amounts must
// sum to the total within Tolerance; a larger mismatch is the hard error
// PaymentMismatch and is never silently corrected.
func ReconcilePayment(total decimal.Decimal, paymentType enum.PaymentType, channel enum.PaymentChannel, split PaymentSplit) (PaymentSplit, error) {
	if split.Cash.IsNegative() || split.Card.IsNegative() || split.BankTransfer.IsNegative() {
		return PaymentSplit{}, newValidationError(KindPaymentMismatch,
			"payment channel amounts must not be negative")
	}

	if paymentType == enum.PaymentSingle {
		return PaymentSplit{}.withChannel(channel, round(total)), nil
	}

	sum := split.Sum()
	if !withinTolerance(sum, total) {
		return PaymentSplit{}, newValidationError(KindPaymentMismatch,
			fmt.Sprintf("payment channels sum to %s but sale total is %s", sum, round(total)))
	}
	return PaymentSplit{
		Cash:         round(split.Cash),
		Card:         round(split.Card),
		BankTransfer: round(split.BankTransfer),
	}, nil
}

// FillRemainder assigns total minus the sum of the other channels to the
// requested channel, clamped to [0, total]. It backs the "pay the remainder"
// shortcut on the payment form.
func FillRemainder(total decimal.Decimal, split PaymentSplit, channel enum.PaymentChannel) PaymentSplit {
	others := round(split.Sum().Sub(split.Channel(channel)))
	remaining := round(total.Sub(others))
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	if remaining.GreaterThan(round(total)) {
		remaining = round(total)
	}
	return split.withChannel(channel, remaining)
}
