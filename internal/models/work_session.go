package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

type WorkSession struct {
	ID     uint           `gorm:"primarykey" json:"id"`
	UserID uint           `gorm:"not null;uniqueIndex:idx_work_sessions_user_date" json:"user_id"`
	Date   datatypes.Date `gorm:"not null;uniqueIndex:idx_work_sessions_user_date" json:"date"`

	// Время прихода/ухода в формате HH:MM
	StartTime string `gorm:"type:varchar(8);not null" json:"start_time"`
	EndTime   string `gorm:"type:varchar(8);not null" json:"end_time"`
	IsRemote  bool   `gorm:"not null;default:false" json:"is_remote"`

	// Рассчитывается из StartTime/EndTime, может быть отрицательным
	TotalHours float64 `gorm:"not null;default:0" json:"total_hours"`

	// Служебная сессия, созданная вместе с отсутствием или командировкой
	IsPlaceholder bool `gorm:"not null;default:false" json:"is_placeholder"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (WorkSession) TableName() string {
	return "work_sessions"
}

// NewPlaceholderSession создает нулевую сессию для дня отсутствия/командировки
func NewPlaceholderSession(userID uint, date datatypes.Date) *WorkSession {
	return &WorkSession{
		UserID:        userID,
		Date:          date,
		StartTime:     PlaceholderClock,
		EndTime:       PlaceholderClock,
		TotalHours:    0,
		IsPlaceholder: true,
	}
}

// CalculateTotalHours вычисляет end - start в часах без ограничения снизу
func (ws *WorkSession) CalculateTotalHours() (float64, error) {
	start, err := ParseClock(ws.StartTime)
	if err != nil {
		return 0, err
	}
	end, err := ParseClock(ws.EndTime)
	if err != nil {
		return 0, err
	}

	return (end - start).Hours(), nil
}

// UpdateCalculatedFields обновляет вычисляемые поля
func (ws *WorkSession) UpdateCalculatedFields() error {
	total, err := ws.CalculateTotalHours()
	if err != nil {
		return err
	}
	ws.TotalHours = total
	return nil
}

// HasWorkedHours true, если в этот день уже отработаны часы
func (ws *WorkSession) HasWorkedHours() bool {
	return ws.TotalHours > 0
}

// Duration возвращает продолжительность работы как строку
func (ws *WorkSession) Duration() string {
	d := time.Duration(ws.TotalHours * float64(time.Hour)).Round(time.Minute)
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	if minutes == 0 {
		return fmt.Sprintf("%s%dч", sign, hours)
	}
	return fmt.Sprintf("%s%dч %dм", sign, hours, minutes)
}

// IsValid проверяет валидность данных
func (ws *WorkSession) IsValid() bool {
	if ws.UserID == 0 {
		return false
	}
	if time.Time(ws.Date).IsZero() {
		return false
	}
	if _, err := ParseClock(ws.StartTime); err != nil {
		return false
	}
	if _, err := ParseClock(ws.EndTime); err != nil {
		return false
	}
	return true
}
