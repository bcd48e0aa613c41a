package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// dateLayouts - форматы дат, которые принимаются в телах запросов
var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

// Date - дата из тела запроса. Принимает "2006-01-02" и RFC3339;
// дата без зоны трактуется как UTC.
type Date struct {
	time.Time
}

// NewDate оборачивает время в Date
func NewDate(t time.Time) Date {
	return Date{Time: t}
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}

// TimePtr возвращает nil для отсутствующей даты
func (d *Date) TimePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
