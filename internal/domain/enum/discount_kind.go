package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// DiscountKind represents the kind of discount applied to a sale.
// Exactly one discount may apply to a sale.
type DiscountKind int

const (
	DiscountNone DiscountKind = 0
	// DiscountPercentage is applied before tax and shifts the tax base
	DiscountPercentage DiscountKind = 1
	// DiscountAmount is applied after tax against the grand total
	DiscountAmount DiscountKind = 2
)

func (k DiscountKind) String() string {
	names := [...]string{"none", "percentage", "amount"}
	if int(k) < 0 || int(k) >= len(names) {
		return "none"
	}
	return names[k]
}

func (k DiscountKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *DiscountKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "none", "":
		*k = DiscountNone
	case "percentage":
		*k = DiscountPercentage
	case "amount":
		*k = DiscountAmount
	default:
		return fmt.Errorf("invalid discount kind %q", str)
	}
	return nil
}

// ParseDiscountKind converts a string into a DiscountKind.
// An empty string maps to DiscountNone.
func ParseDiscountKind(s string) (DiscountKind, error) {
	switch s {
	case "none", "":
		return DiscountNone, nil
	case "percentage":
		return DiscountPercentage, nil
	case "amount":
		return DiscountAmount, nil
	default:
		return DiscountNone, fmt.Errorf("invalid discount kind %q", s)
	}
}

func (k DiscountKind) Value() (driver.Value, error) {
	return int64(k), nil
}

func (k *DiscountKind) Scan(value interface{}) error {
	if value == nil {
		*k = DiscountNone
		return nil
	}
	switch v := value.(type) {
	case int64:
		*k = DiscountKind(v)
	case int:
		*k = DiscountKind(v)
	}
	return nil
}
