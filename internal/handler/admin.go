package handler

import (
	"context"
	"employee-panel/internal/models"
	"employee-panel/internal/service"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
)

// setSalary задает договор сотрудника: /setsalary ID_СОТРУДНИКА hourly|monthly СУММА
func (h *Handler) setSalary(ctx context.Context, message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	admin, ok := h.identify(ctx, chatID)
	if !ok {
		return
	}

	// Проверяем права доступа
	if !admin.IsAdmin() {
		h.logger.WithField("chat_id", chatID).Warn("Unauthorized access to setsalary command")
		h.reply(chatID, "❌ Доступ запрещен. Эта команда только для администраторов.")
		return
	}

	parts := strings.Fields(args)
	if len(parts) != 3 {
		h.reply(chatID, "❌ Неверный формат. Используйте: /setsalary ID_СОТРУДНИКА hourly|monthly СУММА\nПример: /setsalary 3 hourly 35.50")
		return
	}

	targetID, err := parseID(parts[0])
	if err != nil {
		h.reply(chatID, "❌ Неверный ID сотрудника.")
		return
	}

	amount, err := parseAmount(parts[2])
	if err != nil {
		h.reply(chatID, "❌ Неверная сумма. Пример: 35.50")
		return
	}

	input := service.SalaryProfileInput{ContractType: strings.ToLower(parts[1])}
	switch input.ContractType {
	case models.ContractHourly:
		input.HourlyRate = decimal.NewNullDecimal(amount)
	case models.ContractMonthly:
		input.MonthlyAmount = decimal.NewNullDecimal(amount)
	default:
		h.reply(chatID, "❌ Тип договора должен быть hourly или monthly.")
		return
	}

	target, err := h.userService.GetUserByID(ctx, targetID)
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	profile, err := h.payroll.UpsertSalaryProfile(ctx, target.ID, input)
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	name := target.FirstName
	if target.Username != "" {
		name += " (@" + target.Username + ")"
	}

	h.reply(chatID, fmt.Sprintf("✅ Договор сотрудника %d %s обновлен.\n\n%s", target.ID, name, formatSalaryProfile(profile)))
}
