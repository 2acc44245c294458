package service

import (
	"context"
	"employee-panel/internal/models"
	"employee-panel/internal/repository"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// AttendanceService следит, чтобы у сотрудника на каждый день было не больше
// одного отсутствия, одной командировки и одной рабочей сессии, и чтобы
// отсутствие и командировка не пересекались с отработанными часами.
type AttendanceService struct {
	store  *repository.Store
	logger *logrus.Logger
}

func NewAttendanceService(store *repository.Store, logger *logrus.Logger) *AttendanceService {
	return &AttendanceService{
		store:  store,
		logger: logger,
	}
}

type WorkSessionInput struct {
	Date      string
	StartTime string
	EndTime   string
	IsRemote  bool
}

type WorkSessionUpdate struct {
	ID        uint
	Date      string
	StartTime string
	EndTime   string
}

// AddAbsence добавляет отсутствие и, если на этот день нет сессии, служебную нулевую сессию
func (s *AttendanceService) AddAbsence(ctx context.Context, userID uint, rawDate, absenceType string) (*models.Absence, error) {
	date, err := models.ParseDate(rawDate)
	if err != nil {
		return nil, validationError("некорректная дата %q", rawDate)
	}

	absenceType = strings.TrimSpace(absenceType)
	if absenceType == "" {
		return nil, validationError("тип отсутствия не может быть пустым")
	}

	absence := &models.Absence{Date: date, Type: absenceType}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		day := tx.ForUser(ctx, userID)
		if err := reserveDay(day, date); err != nil {
			return err
		}
		return day.CreateAbsence(absence)
	})
	if err != nil {
		return nil, s.fail(err, userID, date, "Failed to add absence")
	}

	s.logger.WithFields(logrus.Fields{
		"id":      absence.ID,
		"user_id": userID,
		"date":    models.FormatDate(date),
		"type":    absence.Type,
	}).Info("Absence added")

	return absence, nil
}

// DeleteAbsence удаляет отсутствие вместе со служебной сессией этого дня
func (s *AttendanceService) DeleteAbsence(ctx context.Context, userID uint, rawDate string) error {
	date, err := models.ParseDate(rawDate)
	if err != nil {
		return validationError("некорректный формат даты %q", rawDate)
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		day := tx.ForUser(ctx, userID)

		absence, err := day.GetAbsenceByDate(date)
		if err != nil {
			return err
		}
		if absence == nil {
			return notFoundError("отсутствие на %s не найдено", models.FormatDate(date))
		}

		if err := day.DeleteAbsence(absence.ID); err != nil {
			return err
		}
		return releaseDay(day, date)
	})
	if err != nil {
		return s.fail(err, userID, date, "Failed to delete absence")
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"date":    models.FormatDate(date),
	}).Info("Absence deleted")

	return nil
}

// ListAbsences возвращает отсутствия сотрудника по возрастанию даты
func (s *AttendanceService) ListAbsences(ctx context.Context, userID uint) ([]models.Absence, error) {
	s.logger.WithField("user_id", userID).Debug("Listing absences")

	absences, err := s.store.ForUser(ctx, userID).ListAbsences()
	if err != nil {
		return nil, fmt.Errorf("failed to list absences: %w", err)
	}
	return absences, nil
}

// AddDelegation добавляет командировку по тем же правилам, что и отсутствие
func (s *AttendanceService) AddDelegation(ctx context.Context, userID uint, rawDate string) (*models.Delegation, error) {
	date, err := models.ParseDate(rawDate)
	if err != nil {
		return nil, validationError("некорректная дата %q", rawDate)
	}

	delegation := &models.Delegation{Date: date}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		day := tx.ForUser(ctx, userID)
		if err := reserveDay(day, date); err != nil {
			return err
		}
		return day.CreateDelegation(delegation)
	})
	if err != nil {
		return nil, s.fail(err, userID, date, "Failed to add delegation")
	}

	s.logger.WithFields(logrus.Fields{
		"id":      delegation.ID,
		"user_id": userID,
		"date":    models.FormatDate(date),
	}).Info("Delegation added")

	return delegation, nil
}

// DeleteDelegation удаляет командировку вместе со служебной сессией этого дня
func (s *AttendanceService) DeleteDelegation(ctx context.Context, userID uint, rawDate string) error {
	date, err := models.ParseDate(rawDate)
	if err != nil {
		return validationError("некорректный формат даты %q", rawDate)
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		day := tx.ForUser(ctx, userID)

		delegation, err := day.GetDelegationByDate(date)
		if err != nil {
			return err
		}
		if delegation == nil {
			return notFoundError("командировка на %s не найдена", models.FormatDate(date))
		}

		if err := day.DeleteDelegation(delegation.ID); err != nil {
			return err
		}
		return releaseDay(day, date)
	})
	if err != nil {
		return s.fail(err, userID, date, "Failed to delete delegation")
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"date":    models.FormatDate(date),
	}).Info("Delegation deleted")

	return nil
}

// ListDelegations возвращает командировки сотрудника по возрастанию даты
func (s *AttendanceService) ListDelegations(ctx context.Context, userID uint) ([]models.Delegation, error) {
	s.logger.WithField("user_id", userID).Debug("Listing delegations")

	delegations, err := s.store.ForUser(ctx, userID).ListDelegations()
	if err != nil {
		return nil, fmt.Errorf("failed to list delegations: %w", err)
	}
	return delegations, nil
}

// AddWorkSession записывает рабочий день. Итог end - start не ограничивается снизу.
func (s *AttendanceService) AddWorkSession(ctx context.Context, userID uint, input WorkSessionInput) (*models.WorkSession, error) {
	date, err := models.ParseDate(input.Date)
	if err != nil {
		return nil, validationError("некорректная дата %q", input.Date)
	}

	session := &models.WorkSession{
		UserID:    userID,
		Date:      date,
		StartTime: strings.TrimSpace(input.StartTime),
		EndTime:   strings.TrimSpace(input.EndTime),
		IsRemote:  input.IsRemote,
	}
	if err := session.UpdateCalculatedFields(); err != nil {
		return nil, validationError("некорректный формат времени: %v", err)
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		day := tx.ForUser(ctx, userID)

		if err := ensureNoDayMark(day, date); err != nil {
			return err
		}

		existing, err := day.GetWorkSessionByDate(date)
		if err != nil {
			return err
		}
		if existing != nil {
			return conflictError("рабочая сессия на %s уже существует", models.FormatDate(date))
		}

		return day.CreateWorkSession(session)
	})
	if err != nil {
		return nil, s.fail(err, userID, date, "Failed to add work session")
	}

	s.logger.WithFields(logrus.Fields{
		"id":          session.ID,
		"user_id":     userID,
		"date":        models.FormatDate(date),
		"total_hours": session.TotalHours,
	}).Info("Work session added")

	return session, nil
}

// UpdateWorkSession меняет дату и время сессии и пересчитывает итог
func (s *AttendanceService) UpdateWorkSession(ctx context.Context, userID, id uint, input WorkSessionUpdate) error {
	if input.ID != id {
		return validationError("ID mismatch")
	}

	date, err := models.ParseDate(input.Date)
	if err != nil {
		return validationError("некорректная дата %q", input.Date)
	}

	changes := &models.WorkSession{
		StartTime: strings.TrimSpace(input.StartTime),
		EndTime:   strings.TrimSpace(input.EndTime),
	}
	if err := changes.UpdateCalculatedFields(); err != nil {
		return validationError("некорректный формат времени: %v", err)
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		day := tx.ForUser(ctx, userID)

		session, err := day.GetWorkSession(id)
		if err != nil {
			return err
		}
		if session == nil {
			return notFoundError("рабочая сессия %d не найдена", id)
		}
		if session.IsPlaceholder {
			return conflictError("сессия создана для отсутствия или командировки и не может быть изменена")
		}

		if err := ensureNoDayMark(day, date); err != nil {
			return err
		}

		other, err := day.GetWorkSessionByDate(date)
		if err != nil {
			return err
		}
		if other != nil && other.ID != session.ID {
			return conflictError("рабочая сессия на %s уже существует", models.FormatDate(date))
		}

		session.Date = date
		session.StartTime = changes.StartTime
		session.EndTime = changes.EndTime
		session.TotalHours = changes.TotalHours

		return day.UpdateWorkSession(session)
	})
	if err != nil {
		return s.fail(err, userID, date, "Failed to update work session")
	}

	s.logger.WithFields(logrus.Fields{
		"id":          id,
		"user_id":     userID,
		"total_hours": changes.TotalHours,
	}).Info("Work session updated")

	return nil
}

// DeleteWorkSession удаляет сессию сотрудника по ID
func (s *AttendanceService) DeleteWorkSession(ctx context.Context, userID, id uint) error {
	deleted, err := s.store.ForUser(ctx, userID).DeleteWorkSession(id)
	if err != nil {
		s.logger.WithError(err).Error("Failed to delete work session")
		return fmt.Errorf("failed to delete work session: %w", err)
	}
	if !deleted {
		return notFoundError("рабочая сессия %d не найдена или принадлежит другому пользователю", id)
	}
	return nil
}

// ListWorkSessions возвращает сессии по возрастанию даты; пустой список считается NotFound
func (s *AttendanceService) ListWorkSessions(ctx context.Context, userID uint) ([]*models.WorkSession, error) {
	sessions, err := s.store.ForUser(ctx, userID).ListWorkSessions()
	if err != nil {
		return nil, fmt.Errorf("failed to list work sessions: %w", err)
	}
	if len(sessions) == 0 {
		return nil, notFoundError("рабочие сессии не найдены")
	}
	return sessions, nil
}

// reserveDay проверяет, что день свободен для отсутствия или командировки,
// и создает служебную сессию, если сессии на этот день еще нет.
func reserveDay(day *repository.UserScope, date datatypes.Date) error {
	if err := ensureNoDayMark(day, date); err != nil {
		return err
	}

	session, err := day.GetWorkSessionByDate(date)
	if err != nil {
		return err
	}
	if session != nil {
		if session.HasWorkedHours() {
			return conflictError("на %s уже есть запись с рабочими часами", models.FormatDate(date))
		}
		return nil
	}

	return day.CreateWorkSession(models.NewPlaceholderSession(day.UserID(), date))
}

// releaseDay удаляет служебную сессию дня, обычные сессии не трогает
func releaseDay(day *repository.UserScope, date datatypes.Date) error {
	session, err := day.GetWorkSessionByDate(date)
	if err != nil {
		return err
	}
	if session == nil || !session.IsPlaceholder {
		return nil
	}

	_, err = day.DeleteWorkSession(session.ID)
	return err
}

// ensureNoDayMark отклоняет день, на который уже есть отсутствие или командировка
func ensureNoDayMark(day *repository.UserScope, date datatypes.Date) error {
	absence, err := day.GetAbsenceByDate(date)
	if err != nil {
		return err
	}
	if absence != nil {
		return conflictError("на %s уже есть отсутствие (%s)", models.FormatDate(date), absence.Type)
	}

	delegation, err := day.GetDelegationByDate(date)
	if err != nil {
		return err
	}
	if delegation != nil {
		return conflictError("на %s уже есть командировка", models.FormatDate(date))
	}

	return nil
}

// fail приводит ошибку транзакции к виду для вызывающей стороны и логирует ее
func (s *AttendanceService) fail(err error, userID uint, date datatypes.Date, msg string) error {
	fields := logrus.Fields{
		"user_id": userID,
		"date":    models.FormatDate(date),
	}

	if errors.Is(err, repository.ErrDuplicate) {
		err = conflictError("запись на %s уже существует", models.FormatDate(date))
	}

	if IsClientError(err) {
		s.logger.WithFields(fields).WithError(err).Warn(msg)
		return err
	}

	s.logger.WithFields(fields).WithError(err).Error(msg)
	return fmt.Errorf("%s: %w", strings.ToLower(msg), err)
}
