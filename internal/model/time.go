package model

import (
	"fmt"
	"time"
)

// LocalDate is a custom time type to format dates as "YYYY-MM-DD".
type LocalDate time.Time

const dateFormat = "2006-01-02"

// MarshalJSON implements the json.Marshaler interface.
func (d LocalDate) MarshalJSON() ([]byte, error) {
	formatted := fmt.Sprintf("\"%s\"", time.Time(d).Format(dateFormat))
	return []byte(formatted), nil
}
