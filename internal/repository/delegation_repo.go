package repository

import (
	"employee-panel/internal/models"
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func (u *UserScope) CreateDelegation(delegation *models.Delegation) error {
	delegation.UserID = u.userID

	u.logger.WithFields(logrus.Fields{
		"user_id": u.userID,
		"date":    models.FormatDate(delegation.Date),
	}).Info("Creating delegation")

	if err := u.db.Create(delegation).Error; err != nil {
		u.logger.WithError(err).Error("Failed to create delegation")
		return translate(err)
	}
	return nil
}

func (u *UserScope) GetDelegationByDate(date datatypes.Date) (*models.Delegation, error) {
	var delegation models.Delegation
	err := u.scoped().Where("date = ?", date).First(&delegation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &delegation, nil
}

func (u *UserScope) ListDelegations() ([]models.Delegation, error) {
	var delegations []models.Delegation
	err := u.scoped().
		Order("date ASC").
		Find(&delegations).Error
	return delegations, err
}

func (u *UserScope) DeleteDelegation(id uint) error {
	u.logger.WithFields(u.fields()).WithField("id", id).Info("Deleting delegation")
	return u.scoped().Where("id = ?", id).Delete(&models.Delegation{}).Error
}
