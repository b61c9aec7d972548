package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PaymentType represents how a sale is settled across payment channels
type PaymentType int

const (
	// PaymentSingle settles the whole total on one channel
	PaymentSingle PaymentType = 0
	// PaymentHybrid splits the total across several channels
	PaymentHybrid PaymentType = 1
)

func (t PaymentType) String() string {
	names := [...]string{"single", "hybrid"}
	if int(t) < 0 || int(t) >= len(names) {
		return "single"
	}
	return names[t]
}

func (t PaymentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *PaymentType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "single", "":
		*t = PaymentSingle
	case "hybrid":
		*t = PaymentHybrid
	default:
		return fmt.Errorf("invalid payment type %q", str)
	}
	return nil
}

// ParsePaymentType converts a string into a PaymentType
func ParsePaymentType(s string) (PaymentType, error) {
	switch s {
	case "single", "":
		return PaymentSingle, nil
	case "hybrid":
		return PaymentHybrid, nil
	default:
		return PaymentSingle, fmt.Errorf("invalid payment type %q", s)
	}
}

func (t PaymentType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *PaymentType) Scan(value interface{}) error {
	if value == nil {
		*t = PaymentSingle
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = PaymentType(v)
	case int:
		*t = PaymentType(v)
	}
	return nil
}

// PaymentChannel identifies one of the supported payment channels
type PaymentChannel int

const (
	ChannelCash         PaymentChannel = 0
	ChannelCard         PaymentChannel = 1
	ChannelBankTransfer PaymentChannel = 2
)

// ParsePaymentChannel converts a string into a PaymentChannel.
// An empty string maps to ChannelCash.
func ParsePaymentChannel(s string) (PaymentChannel, error) {
	switch s {
	case "cash", "":
		return ChannelCash, nil
	case "card":
		return ChannelCard, nil
	case "bank_transfer":
		return ChannelBankTransfer, nil
	default:
		return ChannelCash, fmt.Errorf("invalid payment channel %q", s)
	}
}

func (c PaymentChannel) String() string {
	names := [...]string{"cash", "card", "bank_transfer"}
	if int(c) < 0 || int(c) >= len(names) {
		return "cash"
	}
	return names[c]
}

func (c PaymentChannel) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *PaymentChannel) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "cash":
		*c = ChannelCash
	case "card":
		*c = ChannelCard
	case "bank_transfer":
		*c = ChannelBankTransfer
	default:
		return fmt.Errorf("invalid payment channel %q", str)
	}
	return nil
}
