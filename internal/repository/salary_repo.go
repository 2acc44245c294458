package repository

import (
	"employee-panel/internal/models"
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func (u *UserScope) GetSalaryProfile() (*models.SalaryProfile, error) {
	var profile models.SalaryProfile
	result := u.scoped().First(&profile)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		u.logger.WithFields(u.fields()).Debug("Salary profile not found")
		return nil, nil
	}

	if result.Error != nil {
		u.logger.WithError(result.Error).Error("Failed to get salary profile")
		return nil, result.Error
	}

	return &profile, nil
}

// SaveSalaryProfile создает профиль или перезаписывает существующий
func (u *UserScope) SaveSalaryProfile(profile *models.SalaryProfile) error {
	profile.UserID = u.userID

	u.logger.WithFields(logrus.Fields{
		"user_id":       u.userID,
		"contract_type": profile.ContractType,
	}).Info("Saving salary profile")

	if err := u.db.Save(profile).Error; err != nil {
		u.logger.WithError(err).Error("Failed to save salary profile")
		return translate(err)
	}
	return nil
}

func (u *UserScope) GetPayrollRecord(id uint) (*models.PayrollRecord, error) {
	var record models.PayrollRecord
	result := u.scoped().Where("id = ?", id).First(&record)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		u.logger.WithFields(u.fields()).WithField("id", id).Debug("Payroll record not found")
		return nil, nil
	}

	if result.Error != nil {
		u.logger.WithError(result.Error).Error("Failed to get payroll record by ID")
		return nil, result.Error
	}

	return &record, nil
}

func (u *UserScope) GetPayrollRecordByMonth(year, month int) (*models.PayrollRecord, error) {
	var record models.PayrollRecord
	result := u.scoped().Where("year = ? AND month = ?", year, month).First(&record)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		u.logger.WithFields(logrus.Fields{
			"user_id": u.userID,
			"year":    year,
			"month":   month,
		}).Debug("Payroll record not found for month")
		return nil, nil
	}

	if result.Error != nil {
		u.logger.WithError(result.Error).Error("Failed to get payroll record by month")
		return nil, result.Error
	}

	return &record, nil
}

// ListPayrollRecords возвращает ведомости от новых к старым
func (u *UserScope) ListPayrollRecords() ([]*models.PayrollRecord, error) {
	var records []*models.PayrollRecord
	result := u.scoped().
		Order("year DESC").
		Order("month DESC").
		Find(&records)

	if result.Error != nil {
		u.logger.WithError(result.Error).Error("Failed to get payroll records")
		return nil, result.Error
	}

	return records, nil
}

// SavePayrollRecord создает ведомость или перезаписывает все поля существующей
func (u *UserScope) SavePayrollRecord(record *models.PayrollRecord) error {
	record.UserID = u.userID

	u.logger.WithFields(logrus.Fields{
		"id":              record.ID,
		"user_id":         u.userID,
		"year":            record.Year,
		"month":           record.Month,
		"expected_amount": record.ExpectedAmount.String(),
	}).Info("Saving payroll record")

	if !record.IsValid() {
		return errors.New("invalid payroll record period")
	}

	if err := u.db.Save(record).Error; err != nil {
		u.logger.WithError(err).Error("Failed to save payroll record")
		return translate(err)
	}
	return nil
}

// UpdatePayrollReconciliation меняет только поля сверки, ожидаемая сумма не трогается
func (u *UserScope) UpdatePayrollReconciliation(record *models.PayrollRecord) error {
	u.logger.WithFields(logrus.Fields{
		"id":           record.ID,
		"user_id":      u.userID,
		"is_confirmed": record.IsConfirmed,
	}).Info("Updating payroll reconciliation")

	result := u.scoped().Model(&models.PayrollRecord{}).
		Where("id = ?", record.ID).
		Updates(map[string]interface{}{
			"received_amount": record.ReceivedAmount,
			"is_confirmed":    record.IsConfirmed,
			"has_bonus":       record.HasBonus,
			"notes":           record.Notes,
		})
	if result.Error != nil {
		u.logger.WithError(result.Error).Error("Failed to update payroll record")
		return result.Error
	}
	return nil
}
