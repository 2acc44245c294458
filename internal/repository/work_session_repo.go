package repository

import (
	"employee-panel/internal/models"
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func (u *UserScope) CreateWorkSession(session *models.WorkSession) error {
	session.UserID = u.userID

	u.logger.WithFields(logrus.Fields{
		"user_id":     u.userID,
		"date":        models.FormatDate(session.Date),
		"placeholder": session.IsPlaceholder,
	}).Info("Creating work session")

	if !session.IsValid() {
		u.logger.WithFields(logrus.Fields{
			"user_id": u.userID,
			"date":    models.FormatDate(session.Date),
		}).Warn("Invalid work session data")
		return errors.New("invalid work session data")
	}

	result := u.db.Create(session)
	if result.Error != nil {
		u.logger.WithError(result.Error).Error("Failed to create work session")
		return translate(result.Error)
	}

	u.logger.WithFields(logrus.Fields{
		"id":          session.ID,
		"user_id":     u.userID,
		"total_hours": session.TotalHours,
	}).Info("Work session created successfully")

	return nil
}

func (u *UserScope) UpdateWorkSession(session *models.WorkSession) error {
	u.logger.WithFields(logrus.Fields{
		"id":      session.ID,
		"user_id": u.userID,
	}).Info("Updating work session")

	if session.UserID != u.userID || !session.IsValid() {
		u.logger.WithFields(logrus.Fields{
			"id":      session.ID,
			"user_id": u.userID,
		}).Warn("Invalid work session data for update")
		return errors.New("invalid work session data")
	}

	result := u.scoped().Model(&models.WorkSession{}).
		Where("id = ?", session.ID).
		Updates(map[string]interface{}{
			"date":        session.Date,
			"start_time":  session.StartTime,
			"end_time":    session.EndTime,
			"total_hours": session.TotalHours,
		})
	if result.Error != nil {
		u.logger.WithError(result.Error).Error("Failed to update work session")
		return translate(result.Error)
	}

	u.logger.WithFields(logrus.Fields{
		"id":          session.ID,
		"user_id":     u.userID,
		"total_hours": session.TotalHours,
	}).Info("Work session updated successfully")

	return nil
}

func (u *UserScope) GetWorkSession(id uint) (*models.WorkSession, error) {
	var session models.WorkSession
	result := u.scoped().Where("id = ?", id).First(&session)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		u.logger.WithFields(logrus.Fields{
			"id":      id,
			"user_id": u.userID,
		}).Debug("Work session not found")
		return nil, nil
	}

	if result.Error != nil {
		u.logger.WithError(result.Error).Error("Failed to get work session by ID")
		return nil, result.Error
	}

	return &session, nil
}

func (u *UserScope) GetWorkSessionByDate(date datatypes.Date) (*models.WorkSession, error) {
	var session models.WorkSession
	result := u.scoped().Where("date = ?", date).First(&session)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		u.logger.WithFields(logrus.Fields{
			"user_id": u.userID,
			"date":    models.FormatDate(date),
		}).Debug("Work session not found for user/date")
		return nil, nil
	}

	if result.Error != nil {
		u.logger.WithError(result.Error).Error("Failed to get work session by user and date")
		return nil, result.Error
	}

	return &session, nil
}

func (u *UserScope) ListWorkSessions() ([]*models.WorkSession, error) {
	var sessions []*models.WorkSession

	result := u.scoped().Order("date ASC").Find(&sessions)
	if result.Error != nil {
		u.logger.WithError(result.Error).Error("Failed to get work sessions by user ID")
		return nil, result.Error
	}

	u.logger.WithFields(logrus.Fields{
		"user_id": u.userID,
		"count":   len(sessions),
	}).Debug("Retrieved work sessions by user ID")

	return sessions, nil
}

func (u *UserScope) ListWorkSessionsForMonth(year, month int) ([]*models.WorkSession, error) {
	var sessions []*models.WorkSession

	startDate, endDate := models.MonthRange(year, month)

	result := u.scoped().
		Where("date BETWEEN ? AND ?", startDate, endDate).
		Order("date ASC").
		Find(&sessions)

	if result.Error != nil {
		u.logger.WithError(result.Error).Error("Failed to get work sessions by user and month")
		return nil, result.Error
	}

	return sessions, nil
}

// SumHoursForMonth суммирует total_hours всех сессий месяца
func (u *UserScope) SumHoursForMonth(year, month int) (float64, error) {
	var data struct {
		Hours float64
	}

	startDate, endDate := models.MonthRange(year, month)

	result := u.scoped().Model(&models.WorkSession{}).
		Select("COALESCE(SUM(total_hours), 0) AS hours").
		Where("date BETWEEN ? AND ?", startDate, endDate).
		Scan(&data)

	if result.Error != nil {
		u.logger.WithError(result.Error).Error("Failed to sum work session hours")
		return 0, result.Error
	}

	u.logger.WithFields(logrus.Fields{
		"user_id": u.userID,
		"year":    year,
		"month":   month,
		"hours":   data.Hours,
	}).Debug("Summed work session hours")

	return data.Hours, nil
}

// DeleteWorkSession возвращает false, если у сотрудника нет такой сессии
func (u *UserScope) DeleteWorkSession(id uint) (bool, error) {
	u.logger.WithFields(logrus.Fields{
		"id":      id,
		"user_id": u.userID,
	}).Info("Deleting work session by ID")

	result := u.scoped().Where("id = ?", id).Delete(&models.WorkSession{})
	if result.Error != nil {
		u.logger.WithError(result.Error).Error("Failed to delete work session")
		return false, result.Error
	}

	if result.RowsAffected == 0 {
		u.logger.WithField("id", id).Warn("Work session not found for deletion")
		return false, nil
	}

	u.logger.WithField("id", id).Info("Work session deleted successfully")
	return true, nil
}
