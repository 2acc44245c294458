package handler

import (
	"context"
	"employee-panel/internal/service"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// showProfile показывает профиль пользователя и его договор, если он задан
func (h *Handler) showProfile(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	user, ok := h.identify(ctx, chatID)
	if !ok {
		return
	}

	text := h.userService.FormatUserInfo(user)
	if user.IsAdmin() && h.baseAdminChatID != 0 {
		text += fmt.Sprintf("\n🔧 ID главного администратора: %d", h.baseAdminChatID)
	}

	profile, err := h.payroll.GetSalaryProfile(ctx, user.ID)
	switch {
	case err == nil:
		text += "\n\n" + formatSalaryProfile(profile)
	case errors.Is(err, service.ErrNotFound):
		text += "\n\n📄 Договор еще не задан администратором."
	default:
		h.logger.WithError(err).WithField("user_id", user.ID).Error("Failed to load salary profile")
	}

	h.reply(chatID, text)
}
