package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// SaleType represents the sales channel
type SaleType string

const (
	SaleTypeRetail    SaleType = "retail"
	SaleTypeWholesale SaleType = "wholesale"
	SaleTypeOnline    SaleType = "online"
)

func (t SaleType) String() string {
	return string(t)
}

// IsValid reports whether the value is one of the known types
func (t SaleType) IsValid() bool {
	switch t {
	case SaleTypeRetail, SaleTypeWholesale, SaleTypeOnline:
		return true
	}
	return false
}

func (t SaleType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *SaleType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = SaleType(str)
	return nil
}

func (t SaleType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *SaleType) Scan(value interface{}) error {
	if value == nil {
		*t = SaleTypeRetail
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = SaleType(v)
	case []byte:
		*t = SaleType(string(v))
	}
	return nil
}
