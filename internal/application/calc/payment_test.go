package calc

import (
	"testing"

	"github.com/bottegasoft/bottega-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileSinglePaymentForcesChosenChannel(t *testing.T) {
	// Whatever was typed into the channels, a single payment settles the
	// full total on the chosen channel and zeroes the rest.
	split, err := ReconcilePayment(d("80.00"), enum.PaymentSingle, enum.ChannelCard, PaymentSplit{
		Cash: d("12.00"),
		Card: d("1.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "0.00", split.Cash.StringFixed(2))
	assert.Equal(t, "80.00", split.Card.StringFixed(2))
	assert.Equal(t, "0.00", split.BankTransfer.StringFixed(2))
}

func TestReconcileHybridPayment(t *testing.T) {
	tests := []struct {
		name    string
		total   string
		split   PaymentSplit
		wantErr bool
	}{
		{
			name:  "exact_sum",
			total: "100.00",
			split: PaymentSplit{Cash: d("40.00"), Card: d("50.00"), BankTransfer: d("10.00")},
		},
		{
			name:  "within_tolerance_under",
			total: "100.00",
			split: PaymentSplit{Cash: d("99.995"), Card: d("0.00")},
		},
		{
			name:    "one_cent_off_is_rejected",
			total:   "100.00",
			split:   PaymentSplit{Cash: d("40.00"), Card: d("50.00"), BankTransfer: d("9.99")},
			wantErr: true,
		},
		{
			name:    "grossly_short",
			total:   "100.00",
			split:   PaymentSplit{Cash: d("10.00")},
			wantErr: true,
		},
		{
			name:    "overpayment_rejected",
			total:   "100.00",
			split:   PaymentSplit{Cash: d("60.00"), Card: d("50.00")},
			wantErr: true,
		},
		{
			name:    "negative_channel_rejected",
			total:   "100.00",
			split:   PaymentSplit{Cash: d("110.00"), Card: d("-10.00")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReconcilePayment(d(tt.total), enum.PaymentHybrid, enum.ChannelCash, tt.split)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsKind(err, KindPaymentMismatch), "expected PaymentMismatch, got %v", err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestHybridValidIffWithinTolerance(t *testing.T) {
	// Completeness: valid exactly when |sum - total| < 0.01.
	total := d("50.00")
	for _, tc := range []struct {
		cash  string
		valid bool
	}{
		{"50.00", true},
		{"49.995", true},
		{"50.005", true},
		{"49.99", false},
		{"50.01", false},
	} {
		_, err := ReconcilePayment(total, enum.PaymentHybrid, enum.ChannelCash, PaymentSplit{Cash: d(tc.cash)})
		if tc.valid {
			assert.NoError(t, err, "cash %s", tc.cash)
		} else {
			assert.Error(t, err, "cash %s", tc.cash)
		}
	}
}

func TestFillRemainder(t *testing.T) {
	tests := []struct {
		name    string
		total   string
		split   PaymentSplit
		channel enum.PaymentChannel
		want    string
	}{
		{
			name:    "assigns_difference",
			total:   "100.00",
			split:   PaymentSplit{Cash: d("30.00"), Card: d("25.50")},
			channel: enum.ChannelBankTransfer,
			want:    "44.50",
		},
		{
			name:    "overwrites_existing_channel_value",
			total:   "100.00",
			split:   PaymentSplit{Cash: d("30.00"), Card: d("99.00")},
			channel: enum.ChannelCard,
			want:    "70.00",
		},
		{
			name:    "clamps_to_zero_when_overpaid",
			total:   "100.00",
			split:   PaymentSplit{Cash: d("120.00")},
			channel: enum.ChannelCard,
			want:    "0.00",
		},
		{
			name:    "clamps_to_total_when_channels_empty",
			total:   "100.00",
			split:   PaymentSplit{},
			channel: enum.ChannelCash,
			want:    "100.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FillRemainder(d(tt.total), tt.split, tt.channel)
			assert.Equal(t, tt.want, got.Channel(tt.channel).StringFixed(2))
		})
	}
}

func TestFillRemainderThenHybridReconciles(t *testing.T) {
	total := d("123.45")
	split := FillRemainder(total, PaymentSplit{Cash: d("100.00")}, enum.ChannelCard)
	_, err := ReconcilePayment(total, enum.PaymentHybrid, enum.ChannelCash, split)
	assert.NoError(t, err)
}
