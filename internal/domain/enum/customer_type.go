package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// CustomerType classifies a customer by cumulative spend tier
type CustomerType string

const (
	CustomerTypeRegular   CustomerType = "regular"
	CustomerTypeVIP       CustomerType = "vip"
	CustomerTypeWholesale CustomerType = "wholesale"
)

func (t CustomerType) String() string {
	return string(t)
}

// IsValid reports whether the value is one of the known types
func (t CustomerType) IsValid() bool {
	switch t {
	case CustomerTypeRegular, CustomerTypeVIP, CustomerTypeWholesale:
		return true
	}
	return false
}

// Rank returns the ordering of tiers, lowest first. Used for promotion
// checks: a customer is only ever moved to a tier with a higher rank.
func (t CustomerType) Rank() int {
	switch t {
	case CustomerTypeVIP:
		return 1
	case CustomerTypeWholesale:
		return 2
	default:
		return 0
	}
}

func (t CustomerType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *CustomerType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = CustomerType(str)
	return nil
}

func (t CustomerType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *CustomerType) Scan(value interface{}) error {
	if value == nil {
		*t = CustomerTypeRegular
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = CustomerType(v)
	case []byte:
		*t = CustomerType(string(v))
	}
	return nil
}
