package handler

import (
	"context"
	"employee-panel/internal/models"
	"employee-panel/internal/service"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
)

const (
	regenerateCallbackPrefix = "regenerate_payroll:"
	cancelRegenerateCallback = "cancel_regenerate_payroll"
)

// showSalaryProfile показывает договор сотрудника
func (h *Handler) showSalaryProfile(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	user, ok := h.identify(ctx, chatID)
	if !ok {
		return
	}

	profile, err := h.payroll.GetSalaryProfile(ctx, user.ID)
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	h.reply(chatID, formatSalaryProfile(profile))
}

// generatePayroll рассчитывает зарплату: /payroll ГГГГ ММ.
// Если за месяц уже есть сверенная ведомость, сначала просит подтверждение.
func (h *Handler) generatePayroll(ctx context.Context, message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	user, ok := h.identify(ctx, chatID)
	if !ok {
		return
	}

	year, month, err := parseYearMonth(args)
	if err != nil {
		h.reply(chatID, "❌ Неверный формат. Используйте: /payroll ГГГГ ММ\nПример: /payroll 2026 3")
		return
	}

	existing, err := h.findPayrollRecord(ctx, user.ID, year, month)
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	if existing != nil && (existing.IsConfirmed || !existing.ReceivedAmount.IsZero()) {
		msg := tgbotapi.NewMessage(chatID, fmt.Sprintf(
			"⚠️ Ведомость за %02d.%d уже сверена. Пересчет сбросит полученную сумму, подтверждение и заметки.\n\nПересчитать?",
			month, year))
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("✅ Пересчитать", fmt.Sprintf("%s%d:%d", regenerateCallbackPrefix, year, month)),
				tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", cancelRegenerateCallback),
			),
		)
		h.send(msg)
		return
	}

	h.runPayroll(ctx, chatID, user.ID, year, month)
}

// confirmRegeneration обрабатывает кнопку подтверждения пересчета
func (h *Handler) confirmRegeneration(ctx context.Context, chatID int64, period string) {
	user, ok := h.identify(ctx, chatID)
	if !ok {
		return
	}

	year, month, err := parseYearMonth(strings.ReplaceAll(period, ":", " "))
	if err != nil {
		h.logger.WithField("data", period).Warn("Malformed payroll callback data")
		h.reply(chatID, "❌ Некорректные данные кнопки.")
		return
	}

	h.runPayroll(ctx, chatID, user.ID, year, month)
}

func (h *Handler) runPayroll(ctx context.Context, chatID int64, userID uint, year, month int) {
	record, err := h.payroll.GeneratePayroll(ctx, userID, year, month)
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	h.reply(chatID, fmt.Sprintf(
		"✅ Зарплата рассчитана!\n\n🆔 ID ведомости: %d\n📅 Период: %02d.%d\n💰 Ожидаемая сумма: %s\n\n💡 После получения выплаты используйте /confirmpay %d СУММА",
		record.ID, record.Month, record.Year, record.ExpectedAmount.StringFixed(2), record.ID))
}

// showPayrollHistory показывает ведомости от новых к старым
func (h *Handler) showPayrollHistory(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	user, ok := h.identify(ctx, chatID)
	if !ok {
		return
	}

	records, err := h.payroll.GetPayrollHistory(ctx, user.ID)
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	if len(records) == 0 {
		h.reply(chatID, "📭 История выплат пуста. Используйте /payroll ГГГГ ММ")
		return
	}

	lines := []string{"💰 История выплат:", ""}
	for _, r := range records {
		lines = append(lines, formatPayrollRecord(r))
	}

	h.reply(chatID, strings.Join(lines, "\n"))
}

// confirmPayment записывает полученную выплату: /confirmpay ID СУММА [bonus] [заметка]
func (h *Handler) confirmPayment(ctx context.Context, message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	user, ok := h.identify(ctx, chatID)
	if !ok {
		return
	}

	parts := strings.Fields(args)
	if len(parts) < 2 {
		h.reply(chatID, "❌ Неверный формат. Используйте: /confirmpay ID СУММА [bonus] [заметка]")
		return
	}

	id, err := parseID(parts[0])
	if err != nil {
		h.reply(chatID, "❌ Неверный ID ведомости.")
		return
	}

	received, err := parseAmount(parts[1])
	if err != nil {
		h.reply(chatID, "❌ Неверная сумма. Пример: 4500.50")
		return
	}

	rest := parts[2:]
	hasBonus := false
	if len(rest) > 0 && (strings.EqualFold(rest[0], "bonus") || strings.EqualFold(rest[0], "премия")) {
		hasBonus = true
		rest = rest[1:]
	}

	var notes *string
	if len(rest) > 0 {
		text := strings.Join(rest, " ")
		notes = &text
	}

	err = h.payroll.UpdatePayrollRecord(ctx, user.ID, id, service.PayrollUpdate{
		ReceivedAmount: received,
		IsConfirmed:    true,
		HasBonus:       hasBonus,
		Notes:          notes,
	})
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	h.reply(chatID, fmt.Sprintf("✅ Выплата по ведомости %d подтверждена: %s", id, received.StringFixed(2)))
}

func (h *Handler) findPayrollRecord(ctx context.Context, userID uint, year, month int) (*models.PayrollRecord, error) {
	records, err := h.payroll.GetPayrollHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if r.Year == year && r.Month == month {
			return r, nil
		}
	}
	return nil, nil
}

func parseYearMonth(args string) (int, int, error) {
	parts := strings.Fields(args)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected year and month, got %q", args)
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, err
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return year, month, nil
}

// parseAmount принимает и точку, и запятую в качестве разделителя
func parseAmount(raw string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(raw, ",", "."))
}

func formatSalaryProfile(profile *models.SalaryProfile) string {
	lines := []string{"📄 Договор:", ""}

	switch {
	case profile.IsHourly():
		lines = append(lines, "🕐 Тип: почасовой")
		lines = append(lines, "💵 Ставка: "+formatNullAmount(profile.HourlyRate)+" за час")
	case profile.IsMonthly():
		lines = append(lines, "📆 Тип: оклад")
		lines = append(lines, "💵 Оклад: "+formatNullAmount(profile.MonthlyAmount))
	default:
		lines = append(lines, "❔ Тип: "+profile.ContractType)
	}

	return strings.Join(lines, "\n")
}

func formatPayrollRecord(r *models.PayrollRecord) string {
	status := "⏳ не подтверждена"
	if r.IsConfirmed {
		status = "✅ подтверждена"
	}

	line := fmt.Sprintf("%d. 📅 %02d.%d 💰 %s / получено %s %s",
		r.ID, r.Month, r.Year, r.ExpectedAmount.StringFixed(2), r.ReceivedAmount.StringFixed(2), status)
	if r.HasBonus {
		line += " 🎁"
	}
	if r.Notes != nil && *r.Notes != "" {
		line += "\n    📝 " + *r.Notes
	}
	return line
}

func formatNullAmount(amount decimal.NullDecimal) string {
	if !amount.Valid {
		return "не задан"
	}
	return amount.Decimal.StringFixed(2)
}
