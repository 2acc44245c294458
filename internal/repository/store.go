package repository

import (
	"context"
	"employee-panel/internal/models"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrDuplicate возвращается при нарушении уникального индекса
// (одна запись каждого вида на пользователя и день, одна ведомость на месяц).
var ErrDuplicate = errors.New("record already exists")

// Store хранит записи по дням и зарплатные данные сотрудников.
// Все операции над данными сотрудника идут через ForUser.
type Store struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormStore(db *gorm.DB, logger *logrus.Logger) (*Store, error) {
	// Автомиграция
	err := db.AutoMigrate(
		&models.WorkSession{},
		&models.Absence{},
		&models.Delegation{},
		&models.SalaryProfile{},
		&models.PayrollRecord{},
	)
	if err != nil {
		logger.WithError(err).Error("Failed to auto-migrate day record tables")
		return nil, err
	}

	logger.Info("Day record store initialized")

	return &Store{
		db:     db,
		logger: logger,
	}, nil
}

// Transaction выполняет fn в одной транзакции. Ошибка fn откатывает все изменения.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx, logger: s.logger})
	})
}

// ForUser возвращает представление хранилища, ограниченное записями одного сотрудника
func (s *Store) ForUser(ctx context.Context, userID uint) *UserScope {
	return &UserScope{
		db:     s.db.WithContext(ctx),
		userID: userID,
		logger: s.logger,
	}
}

// UserScope применяет фильтр user_id ко всем запросам
type UserScope struct {
	db     *gorm.DB
	userID uint
	logger *logrus.Logger
}

func (u *UserScope) UserID() uint {
	return u.userID
}

func (u *UserScope) scoped() *gorm.DB {
	return u.db.Where("user_id = ?", u.userID)
}

func (u *UserScope) fields() logrus.Fields {
	return logrus.Fields{"user_id": u.userID}
}

// translate оборачивает нарушение уникальности в ErrDuplicate
func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}
