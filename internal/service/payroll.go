package service

import (
	"context"
	"employee-panel/internal/models"
	"employee-panel/internal/repository"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	minPayrollYear = 2000
	maxPayrollYear = 2100
)

type PayrollService struct {
	store  *repository.Store
	logger *logrus.Logger
}

func NewPayrollService(store *repository.Store, logger *logrus.Logger) *PayrollService {
	return &PayrollService{
		store:  store,
		logger: logger,
	}
}

// PayrollUpdate - поля сверки, которые сотрудник заполняет после получения выплаты
type PayrollUpdate struct {
	ReceivedAmount decimal.Decimal
	IsConfirmed    bool
	HasBonus       bool
	Notes          *string
}

type SalaryProfileInput struct {
	ContractType  string
	HourlyRate    decimal.NullDecimal
	MonthlyAmount decimal.NullDecimal
}

// GeneratePayroll рассчитывает ожидаемую сумму за месяц и сохраняет ведомость.
// Существующая ведомость перезаписывается, поля сверки сбрасываются.
func (s *PayrollService) GeneratePayroll(ctx context.Context, userID uint, year, month int) (*models.PayrollRecord, error) {
	if month < 1 || month > 12 {
		return nil, validationError("месяц должен быть от 1 до 12")
	}
	if year < minPayrollYear || year > maxPayrollYear {
		return nil, validationError("год должен быть от %d до %d", minPayrollYear, maxPayrollYear)
	}

	fields := logrus.Fields{
		"user_id": userID,
		"year":    year,
		"month":   month,
	}

	var record *models.PayrollRecord

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		scope := tx.ForUser(ctx, userID)

		profile, err := scope.GetSalaryProfile()
		if err != nil {
			return err
		}
		if profile == nil {
			return notFoundError("не найдены данные о договоре пользователя")
		}

		amount, err := expectedAmount(scope, profile, year, month)
		if err != nil {
			return err
		}

		record, err = scope.GetPayrollRecordByMonth(year, month)
		if err != nil {
			return err
		}
		if record == nil {
			record = &models.PayrollRecord{Year: year, Month: month}
		}

		record.ExpectedAmount = amount
		resetOnRegenerate(record)

		return scope.SavePayrollRecord(record)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			err = conflictError("ведомость за %02d.%d уже создается", month, year)
		}
		if IsClientError(err) {
			s.logger.WithFields(fields).WithError(err).Warn("Payroll generation rejected")
			return nil, err
		}
		s.logger.WithFields(fields).WithError(err).Error("Failed to generate payroll")
		return nil, fmt.Errorf("failed to generate payroll: %w", err)
	}

	s.logger.WithFields(fields).
		WithField("expected_amount", record.ExpectedAmount.String()).
		Info("Payroll generated")

	return record, nil
}

// expectedAmount считает сумму по типу договора. Отсутствующая ставка или оклад считаются нулем.
func expectedAmount(scope *repository.UserScope, profile *models.SalaryProfile, year, month int) (decimal.Decimal, error) {
	switch {
	case profile.IsHourly():
		hours, err := scope.SumHoursForMonth(year, month)
		if err != nil {
			return decimal.Zero, err
		}
		rate := decimal.Zero
		if profile.HourlyRate.Valid {
			rate = profile.HourlyRate.Decimal
		}
		return rate.Mul(decimal.NewFromFloat(hours)).RoundBank(2), nil

	case profile.IsMonthly():
		if !profile.MonthlyAmount.Valid {
			return decimal.Zero, nil
		}
		return profile.MonthlyAmount.Decimal.RoundBank(2), nil

	default:
		return decimal.Zero, newError(ErrUnsupportedContract, "неподдерживаемый тип договора %q", profile.ContractType)
	}
}

// resetOnRegenerate задает поля сверки для свежесгенерированной ведомости.
// При повторной генерации ручные правки сотрудника теряются.
func resetOnRegenerate(record *models.PayrollRecord) {
	record.ReceivedAmount = decimal.Zero
	record.IsConfirmed = false
	record.HasBonus = false
	record.Notes = nil
}

// UpdatePayrollRecord записывает результаты сверки; ожидаемая сумма не меняется
func (s *PayrollService) UpdatePayrollRecord(ctx context.Context, userID, id uint, update PayrollUpdate) error {
	scope := s.store.ForUser(ctx, userID)

	record, err := scope.GetPayrollRecord(id)
	if err != nil {
		return fmt.Errorf("failed to get payroll record: %w", err)
	}
	if record == nil {
		return notFoundError("ведомость %d не найдена", id)
	}

	record.ReceivedAmount = update.ReceivedAmount
	record.IsConfirmed = update.IsConfirmed
	record.HasBonus = update.HasBonus
	record.Notes = update.Notes

	if err := scope.UpdatePayrollReconciliation(record); err != nil {
		return fmt.Errorf("failed to update payroll record: %w", err)
	}

	return nil
}

func (s *PayrollService) GetSalaryProfile(ctx context.Context, userID uint) (*models.SalaryProfile, error) {
	profile, err := s.store.ForUser(ctx, userID).GetSalaryProfile()
	if err != nil {
		return nil, fmt.Errorf("failed to get salary profile: %w", err)
	}
	if profile == nil {
		return nil, notFoundError("нет данных о зарплате")
	}
	return profile, nil
}

// GetPayrollHistory возвращает ведомости от последнего месяца к первому
func (s *PayrollService) GetPayrollHistory(ctx context.Context, userID uint) ([]*models.PayrollRecord, error) {
	records, err := s.store.ForUser(ctx, userID).ListPayrollRecords()
	if err != nil {
		return nil, fmt.Errorf("failed to get payroll history: %w", err)
	}
	return records, nil
}

// UpsertSalaryProfile задает договор сотрудника. Проверка прав остается на вызывающей стороне.
func (s *PayrollService) UpsertSalaryProfile(ctx context.Context, targetUserID uint, input SalaryProfileInput) (*models.SalaryProfile, error) {
	contractType := strings.TrimSpace(input.ContractType)
	if contractType == "" {
		return nil, validationError("тип договора не может быть пустым")
	}
	if input.HourlyRate.Valid && input.HourlyRate.Decimal.IsNegative() {
		return nil, validationError("ставка не может быть отрицательной")
	}
	if input.MonthlyAmount.Valid && input.MonthlyAmount.Decimal.IsNegative() {
		return nil, validationError("оклад не может быть отрицательным")
	}

	var profile *models.SalaryProfile

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		scope := tx.ForUser(ctx, targetUserID)

		existing, err := scope.GetSalaryProfile()
		if err != nil {
			return err
		}
		profile = existing
		if profile == nil {
			profile = &models.SalaryProfile{}
		}

		profile.ContractType = contractType
		profile.HourlyRate = input.HourlyRate
		profile.MonthlyAmount = input.MonthlyAmount

		return scope.SaveSalaryProfile(profile)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflictError("профиль пользователя %d изменяется параллельно", targetUserID)
		}
		s.logger.WithField("user_id", targetUserID).WithError(err).Error("Failed to upsert salary profile")
		return nil, fmt.Errorf("failed to upsert salary profile: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":       targetUserID,
		"contract_type": profile.ContractType,
	}).Info("Salary profile saved")

	return profile, nil
}
