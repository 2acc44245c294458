package service

import (
	"context"
	"employee-panel/internal/models"
	"employee-panel/internal/repository"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// UserService связывает чаты Telegram с сотрудниками
type UserService struct {
	repo   repository.UserRepository
	logger *logrus.Logger
}

func NewUserService(repo repository.UserRepository, logger *logrus.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// RegisterChat возвращает сотрудника для чата, при первом обращении создает его с ролью client
func (s *UserService) RegisterChat(ctx context.Context, chatID int64, username, firstName string) (*models.User, error) {
	user, err := s.repo.GetByChatID(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}
	if user != nil {
		return user, nil
	}

	user = &models.User{
		ChatID:    chatID,
		Username:  username,
		FirstName: firstName,
		Role:      models.RoleClient,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Чат уже зарегистрирован параллельным запросом
			return s.repo.GetByChatID(ctx, chatID)
		}
		return nil, fmt.Errorf("ошибка создания пользователя: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"chat_id": chatID,
	}).Info("User registered")

	return user, nil
}

// GetUserByChatID возвращает Unauthorized для незарегистрированного чата
func (s *UserService) GetUserByChatID(ctx context.Context, chatID int64) (*models.User, error) {
	user, err := s.repo.GetByChatID(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}
	if user == nil {
		return nil, newError(ErrUnauthorized, "пользователь не зарегистрирован, отправьте /start")
	}
	return user, nil
}

// GetUserByID ищет сотрудника по идентификатору
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}
	if user == nil {
		return nil, notFoundError("пользователь %d не найден", id)
	}
	return user, nil
}

// FormatUserInfo форматирует информацию о пользователе для вывода
func (s *UserService) FormatUserInfo(user *models.User) string {
	var lines []string

	lines = append(lines, "👤 Профиль пользователя:")
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("🆔 ID сотрудника: %d", user.ID))
	lines = append(lines, fmt.Sprintf("💬 ID чата: %d", user.ChatID))

	if user.Username != "" {
		lines = append(lines, fmt.Sprintf("📛 Никнейм: @%s", user.Username))
	}
	if user.FirstName != "" {
		lines = append(lines, fmt.Sprintf("👨‍💼 Имя: %s", user.FirstName))
	}

	roleEmoji := "👤"
	if user.IsAdmin() {
		roleEmoji = "👑"
	}
	lines = append(lines, fmt.Sprintf("%s Роль: %s", roleEmoji, user.Role))

	return strings.Join(lines, "\n")
}

// InitializeAdmin инициализирует администратора из конфига
func (s *UserService) InitializeAdmin(ctx context.Context, adminChatID int64) error {
	if adminChatID == 0 {
		return nil // Админ не задан в конфиге
	}

	existingUser, err := s.repo.GetByChatID(ctx, adminChatID)
	if err != nil {
		return err
	}

	if existingUser != nil {
		if existingUser.IsAdmin() {
			return nil
		}
		return s.repo.UpdateRole(ctx, adminChatID, models.RoleAdmin)
	}

	adminUser := &models.User{
		ChatID:    adminChatID,
		Username:  "admin",
		FirstName: "Администратор",
		Role:      models.RoleAdmin,
	}

	if err := s.repo.Create(ctx, adminUser); err != nil {
		return err
	}

	s.logger.WithField("chat_id", adminChatID).Info("Base admin created")
	return nil
}
