package handler

import (
	"context"
	"employee-panel/internal/models"
	"employee-panel/internal/service"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Sender - часть tgbotapi.BotAPI, через которую бот отвечает пользователям
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Handler struct {
	sender          Sender
	userService     *service.UserService
	attendance      *service.AttendanceService
	payroll         *service.PayrollService
	baseAdminChatID int64
	logger          *logrus.Logger
}

func NewHandler(
	sender Sender,
	userService *service.UserService,
	attendance *service.AttendanceService,
	payroll *service.PayrollService,
	baseAdminChatID int64,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		sender:          sender,
		userService:     userService,
		attendance:      attendance,
		payroll:         payroll,
		baseAdminChatID: baseAdminChatID,
		logger:          logger,
	}
}

// HandleUpdates обрабатывает обновления по одному, пока не закроется канал или не отменится ctx
func (h *Handler) HandleUpdates(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			h.HandleUpdate(ctx, update)
		}
	}
}

func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	// Обработка callback query (для inline кнопок)
	if update.CallbackQuery != nil {
		h.handleCallbackQuery(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		return
	}

	h.handleMessage(ctx, update.Message)
}

// handleCallbackQuery обрабатывает inline кнопки
func (h *Handler) handleCallbackQuery(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil || callback.Message.Chat == nil {
		return
	}

	chatID := callback.Message.Chat.ID
	data := callback.Data

	// Удаляем клавиатуру
	editMsg := tgbotapi.NewEditMessageReplyMarkup(chatID, callback.Message.MessageID, tgbotapi.NewInlineKeyboardMarkup())
	if _, err := h.sender.Request(editMsg); err != nil {
		h.logger.WithError(err).Warn("Failed to remove inline keyboard")
	}

	switch {
	case strings.HasPrefix(data, regenerateCallbackPrefix):
		h.confirmRegeneration(ctx, chatID, strings.TrimPrefix(data, regenerateCallbackPrefix))
	case data == cancelRegenerateCallback:
		h.reply(chatID, "❌ Пересчет зарплаты отменен.")
	}

	// Отвечаем на callback (убираем "часики" у кнопки)
	if _, err := h.sender.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		h.logger.WithError(err).Warn("Failed to answer callback query")
	}
}

func (h *Handler) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.Chat == nil {
		return
	}

	username := ""
	if message.From != nil {
		username = message.From.UserName
	}
	h.logger.Infof("[%s] %s", username, message.Text)

	if message.IsCommand() {
		h.handleCommand(ctx, message)
		return
	}

	h.reply(message.Chat.ID, "🤖 Я понимаю только команды. Используйте /help для списка команд.")
}

// identify находит сотрудника по чату; незарегистрированному отправляет подсказку
func (h *Handler) identify(ctx context.Context, chatID int64) (*models.User, bool) {
	user, err := h.userService.GetUserByChatID(ctx, chatID)
	if err != nil {
		h.logger.WithField("chat_id", chatID).WithError(err).Warn("User not identified")
		h.replyError(chatID, err)
		return nil, false
	}
	return user, true
}

func (h *Handler) reply(chatID int64, text string) {
	h.send(tgbotapi.NewMessage(chatID, text))
}

func (h *Handler) send(msg tgbotapi.MessageConfig) {
	if _, err := h.sender.Send(msg); err != nil {
		h.logger.WithError(err).WithField("chat_id", msg.ChatID).Error("Failed to send message")
	}
}

// replyError показывает пользователю текст клиентской ошибки, внутренние ошибки только логируются
func (h *Handler) replyError(chatID int64, err error) {
	if !service.IsClientError(err) {
		h.logger.WithError(err).WithField("chat_id", chatID).Error("Command failed")
	}
	h.reply(chatID, "❌ "+service.Message(err))
}
