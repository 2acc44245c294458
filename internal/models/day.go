package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// PlaceholderClock время начала и конца служебной сессии
const PlaceholderClock = "00:00"

// NewDate отбрасывает время и приводит дату к полуночи UTC
func NewDate(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// ParseDate принимает YYYY-MM-DD или RFC 3339 (время отбрасывается)
func ParseDate(value string) (datatypes.Date, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(DateLayout, value); err == nil {
		return NewDate(t), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return NewDate(t), nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", value); err == nil {
		return NewDate(t), nil
	}
	return datatypes.Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
}

// FormatDate форматирует дату как YYYY-MM-DD
func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(DateLayout)
}

// ParseClock возвращает смещение от полуночи для HH:MM или HH:MM:SS
func ParseClock(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{ClockLayout, "15:04:05"} {
		t, err := time.Parse(layout, value)
		if err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, fmt.Errorf("invalid time %q, expected HH:MM", value)
}

// MonthRange возвращает первый и последний день месяца
func MonthRange(year, month int) (datatypes.Date, datatypes.Date) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return datatypes.Date(start), datatypes.Date(end)
}
