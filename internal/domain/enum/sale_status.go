package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// SaleStatus represents the lifecycle state of a sale
type SaleStatus int

const (
	SaleStatusCompleted         SaleStatus = 0
	SaleStatusPartiallyReturned SaleStatus = 1
	SaleStatusRefunded          SaleStatus = 2
	SaleStatusCancelled         SaleStatus = 3
)

func (s SaleStatus) String() string {
	names := [...]string{"Completed", "PartiallyReturned", "Refunded", "Cancelled"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Completed"
	}
	return names[s]
}

// IsClosed reports whether the sale no longer accepts returns
func (s SaleStatus) IsClosed() bool {
	return s == SaleStatusRefunded || s == SaleStatusCancelled
}

func (s SaleStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SaleStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		if i < 0 || i > int(SaleStatusCancelled) {
			return fmt.Errorf("invalid sale status %d", i)
		}
		*s = SaleStatus(i)
		return nil
	}
	switch str {
	case "Completed":
		*s = SaleStatusCompleted
	case "PartiallyReturned":
		*s = SaleStatusPartiallyReturned
	case "Refunded":
		*s = SaleStatusRefunded
	case "Cancelled":
		*s = SaleStatusCancelled
	default:
		return fmt.Errorf("invalid sale status %q", str)
	}
	return nil
}

// ParseSaleStatus converts a string into a SaleStatus
func ParseSaleStatus(str string) (SaleStatus, error) {
	switch str {
	case "Completed":
		return SaleStatusCompleted, nil
	case "PartiallyReturned":
		return SaleStatusPartiallyReturned, nil
	case "Refunded":
		return SaleStatusRefunded, nil
	case "Cancelled":
		return SaleStatusCancelled, nil
	default:
		return SaleStatusCompleted, fmt.Errorf("invalid sale status %q", str)
	}
}

func (s SaleStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *SaleStatus) Scan(value interface{}) error {
	if value == nil {
		*s = SaleStatusCompleted
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = SaleStatus(v)
	case int:
		*s = SaleStatus(v)
	}
	return nil
}
