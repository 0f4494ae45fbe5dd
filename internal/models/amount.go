package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Amount денежная сумма. Backend отдает decimal то числом, то строкой.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			// нечисловая сумма считается нулевой
			*a = 0
			return nil
		}
		*a = Amount(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = Amount(v)
	return nil
}

// Float возвращает сумму как float64
func (a Amount) Float() float64 {
	return float64(a)
}

// Address адрес доставки: строка или объект {street, city, state, zipCode, country}
type Address string

func (a *Address) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var obj struct {
			Street  string `json:"street"`
			City    string `json:"city"`
			State   string `json:"state"`
			ZipCode string `json:"zipCode"`
			Country string `json:"country"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		parts := make([]string, 0, 5)
		for _, p := range []string{obj.Street, obj.City, obj.State, obj.ZipCode, obj.Country} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		*a = Address(strings.Join(parts, ", "))
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*a = Address(s)
	return nil
}
