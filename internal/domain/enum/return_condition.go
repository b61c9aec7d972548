package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ReturnCondition represents the physical condition of a returned item.
// The condition determines the restocking-fee rate applied to the refund.
type ReturnCondition int

const (
	ConditionNew       ReturnCondition = 0
	ConditionGood      ReturnCondition = 1
	ConditionDamaged   ReturnCondition = 2
	ConditionDefective ReturnCondition = 3
)

func (c ReturnCondition) String() string {
	names := [...]string{"new", "good", "damaged", "defective"}
	if int(c) < 0 || int(c) >= len(names) {
		return "new"
	}
	return names[c]
}

// Known reports whether the value is one of the defined conditions
func (c ReturnCondition) Known() bool {
	return c >= ConditionNew && c <= ConditionDefective
}

func (c ReturnCondition) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ReturnCondition) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "new":
		*c = ConditionNew
	case "good":
		*c = ConditionGood
	case "damaged":
		*c = ConditionDamaged
	case "defective":
		*c = ConditionDefective
	default:
		return fmt.Errorf("invalid return condition %q", str)
	}
	return nil
}

// ParseReturnCondition converts a string into a ReturnCondition
func ParseReturnCondition(s string) (ReturnCondition, error) {
	switch s {
	case "new":
		return ConditionNew, nil
	case "good":
		return ConditionGood, nil
	case "damaged":
		return ConditionDamaged, nil
	case "defective":
		return ConditionDefective, nil
	default:
		return ConditionNew, fmt.Errorf("invalid return condition %q", s)
	}
}

func (c ReturnCondition) Value() (driver.Value, error) {
	return int64(c), nil
}

func (c *ReturnCondition) Scan(value interface{}) error {
	if value == nil {
		*c = ConditionNew
		return nil
	}
	switch v := value.(type) {
	case int64:
		*c = ReturnCondition(v)
	case int:
		*c = ReturnCondition(v)
	}
	return nil
}
