package repository

import (
	"employee-panel/internal/models"
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func (u *UserScope) CreateAbsence(absence *models.Absence) error {
	absence.UserID = u.userID

	u.logger.WithFields(logrus.Fields{
		"user_id": u.userID,
		"date":    models.FormatDate(absence.Date),
		"type":    absence.Type,
	}).Info("Creating absence")

	if err := u.db.Create(absence).Error; err != nil {
		u.logger.WithError(err).Error("Failed to create absence")
		return translate(err)
	}
	return nil
}

func (u *UserScope) GetAbsenceByDate(date datatypes.Date) (*models.Absence, error) {
	var absence models.Absence
	err := u.scoped().Where("date = ?", date).First(&absence).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &absence, nil
}

func (u *UserScope) ListAbsences() ([]models.Absence, error) {
	var absences []models.Absence
	err := u.scoped().
		Order("date ASC").
		Find(&absences).Error
	return absences, err
}

func (u *UserScope) DeleteAbsence(id uint) error {
	u.logger.WithFields(u.fields()).WithField("id", id).Info("Deleting absence")
	return u.scoped().Where("id = ?", id).Delete(&models.Absence{}).Error
}
