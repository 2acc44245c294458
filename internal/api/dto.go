package api

import (
	"employee-panel/internal/models"

	"github.com/shopspring/decimal"
)

// Запросы

type AbsenceRequest struct {
	Date string `json:"date"`
	Type string `json:"type"`
}

type DelegationRequest struct {
	Date string `json:"date"`
}

type WorkSessionRequest struct {
	ID        uint   `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsRemote  bool   `json:"isRemote"`
}

type GeneratePayrollRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

type UpdatePayrollRequest struct {
	ReceivedAmount decimal.Decimal `json:"receivedAmount"`
	IsConfirmed    bool            `json:"isConfirmed"`
	HasBonus       bool            `json:"hasBonus"`
	Notes          *string         `json:"notes"`
}

type SalaryProfileRequest struct {
	ContractType  string              `json:"contractType"`
	HourlyRate    decimal.NullDecimal `json:"hourlyRate"`
	MonthlyAmount decimal.NullDecimal `json:"monthlyAmount"`
}

// Ответы

type AbsenceDTO struct {
	Date string `json:"date"`
	Type string `json:"type"`
}

type WorkSessionDTO struct {
	ID         uint    `json:"id"`
	Date       string  `json:"date"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	IsRemote   bool    `json:"isRemote"`
	TotalHours float64 `json:"totalHours"`
}

type SalaryProfileDTO struct {
	UserID        uint                `json:"userId"`
	ContractType  string              `json:"contractType"`
	HourlyRate    decimal.NullDecimal `json:"hourlyRate"`
	MonthlyAmount decimal.NullDecimal `json:"monthlyAmount"`
}

type PayrollRecordDTO struct {
	ID             uint            `json:"id"`
	Year           int             `json:"year"`
	Month          int             `json:"month"`
	ExpectedAmount decimal.Decimal `json:"expectedAmount"`
	ReceivedAmount decimal.Decimal `json:"receivedAmount"`
	IsConfirmed    bool            `json:"isConfirmed"`
	HasBonus       bool            `json:"hasBonus"`
	Notes          *string         `json:"notes"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func toAbsenceDTOs(absences []models.Absence) []AbsenceDTO {
	result := make([]AbsenceDTO, 0, len(absences))
	for _, a := range absences {
		result = append(result, AbsenceDTO{Date: models.FormatDate(a.Date), Type: a.Type})
	}
	return result
}

func toDelegationDates(delegations []models.Delegation) []string {
	result := make([]string, 0, len(delegations))
	for _, d := range delegations {
		result = append(result, models.FormatDate(d.Date))
	}
	return result
}

func toWorkSessionDTO(s *models.WorkSession) WorkSessionDTO {
	return WorkSessionDTO{
		ID:         s.ID,
		Date:       models.FormatDate(s.Date),
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
		IsRemote:   s.IsRemote,
		TotalHours: s.TotalHours,
	}
}

func toWorkSessionDTOs(sessions []*models.WorkSession) []WorkSessionDTO {
	result := make([]WorkSessionDTO, 0, len(sessions))
	for _, s := range sessions {
		result = append(result, toWorkSessionDTO(s))
	}
	return result
}

func toSalaryProfileDTO(p *models.SalaryProfile) SalaryProfileDTO {
	return SalaryProfileDTO{
		UserID:        p.UserID,
		ContractType:  p.ContractType,
		HourlyRate:    p.HourlyRate,
		MonthlyAmount: p.MonthlyAmount,
	}
}

func toPayrollRecordDTOs(records []*models.PayrollRecord) []PayrollRecordDTO {
	result := make([]PayrollRecordDTO, 0, len(records))
	for _, r := range records {
		result = append(result, PayrollRecordDTO{
			ID:             r.ID,
			Year:           r.Year,
			Month:          r.Month,
			ExpectedAmount: r.ExpectedAmount,
			ReceivedAmount: r.ReceivedAmount,
			IsConfirmed:    r.IsConfirmed,
			HasBonus:       r.HasBonus,
			Notes:          r.Notes,
		})
	}
	return result
}
