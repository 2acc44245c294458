package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ContractHourly  = "hourly"
	ContractMonthly = "monthly"
)

type SalaryProfile struct {
	ID            uint                `gorm:"primarykey" json:"id"`
	UserID        uint                `gorm:"not null;uniqueIndex" json:"user_id"`
	ContractType  string              `gorm:"type:varchar(32);not null" json:"contract_type"`
	HourlyRate    decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"hourly_rate"`
	MonthlyAmount decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"monthly_amount"`
	CreatedAt     time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SalaryProfile) TableName() string {
	return "salary_profiles"
}

// IsHourly проверяет почасовой договор
func (sp *SalaryProfile) IsHourly() bool {
	return sp.ContractType == ContractHourly
}

// IsMonthly проверяет договор с фиксированным окладом
func (sp *SalaryProfile) IsMonthly() bool {
	return sp.ContractType == ContractMonthly
}

type PayrollRecord struct {
	ID     uint `gorm:"primarykey" json:"id"`
	UserID uint `gorm:"not null;uniqueIndex:idx_payroll_user_month" json:"user_id"`
	Year   int  `gorm:"not null;uniqueIndex:idx_payroll_user_month" json:"year"`
	Month  int  `gorm:"not null;check:month >= 1 AND month <= 12;uniqueIndex:idx_payroll_user_month" json:"month"`

	// Рассчитывается генератором
	ExpectedAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"expected_amount"`

	// Заполняются сотрудником при сверке
	ReceivedAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"received_amount"`
	IsConfirmed    bool            `gorm:"not null;default:false" json:"is_confirmed"`
	HasBonus       bool            `gorm:"not null;default:false" json:"has_bonus"`
	Notes          *string         `json:"notes"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PayrollRecord) TableName() string {
	return "payroll_records"
}

// IsValid проверяет валидность периода
func (pr *PayrollRecord) IsValid() bool {
	if pr.UserID == 0 {
		return false
	}
	if pr.Year < 2000 || pr.Year > 2100 {
		return false
	}
	if pr.Month < 1 || pr.Month > 12 {
		return false
	}
	return true
}
