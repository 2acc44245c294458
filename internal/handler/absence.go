package handler

import (
	"context"
	"employee-panel/internal/models"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// addAbsence добавляет отсутствие: /absence ГГГГ-ММ-ДД тип
func (h *Handler) addAbsence(ctx context.Context, message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	user, ok := h.identify(ctx, chatID)
	if !ok {
		return
	}

	parts := strings.Fields(args)
	if len(parts) < 2 {
		h.reply(chatID, "❌ Неверный формат. Используйте: /absence ГГГГ-ММ-ДД тип\nПример: /absence 2026-07-01 отпуск")
		return
	}

	absenceType := strings.Join(parts[1:], " ")

	absence, err := h.attendance.AddAbsence(ctx, user.ID, parts[0], absenceType)
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	h.reply(chatID, fmt.Sprintf("✅ Отсутствие добавлено!\n\n📅 Дата: %s\n🏷 Тип: %s",
		models.FormatDate(absence.Date), absence.Type))
}

// showAbsences показывает отсутствия сотрудника
func (h *Handler) showAbsences(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	user, ok := h.identify(ctx, chatID)
	if !ok {
		return
	}

	absences, err := h.attendance.ListAbsences(ctx, user.ID)
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	if len(absences) == 0 {
		h.reply(chatID, "📭 У вас нет отсутствий.")
		return
	}

	lines := []string{"🏖️ Ваши отсутствия:", ""}
	for _, a := range absences {
		lines = append(lines, fmt.Sprintf("📅 %s - %s", models.FormatDate(a.Date), a.Type))
	}

	h.reply(chatID, strings.Join(lines, "\n"))
}

// deleteAbsence удаляет отсутствие: /delabsence ГГГГ-ММ-ДД
func (h *Handler) deleteAbsence(ctx context.Context, message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	user, ok := h.identify(ctx, chatID)
	if !ok {
		return
	}

	date := strings.TrimSpace(args)
	if date == "" {
		h.reply(chatID, "❌ Укажите дату: /delabsence ГГГГ-ММ-ДД")
		return
	}

	if err := h.attendance.DeleteAbsence(ctx, user.ID, date); err != nil {
		h.replyError(chatID, err)
		return
	}

	h.reply(chatID, fmt.Sprintf("✅ Отсутствие на %s удалено.", date))
}

// addDelegation добавляет командировку: /delegation ГГГГ-ММ-ДД
func (h *Handler) addDelegation(ctx context.Context, message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	user, ok := h.identify(ctx, chatID)
	if !ok {
		return
	}

	date := strings.TrimSpace(args)
	if date == "" {
		h.reply(chatID, "❌ Укажите дату: /delegation ГГГГ-ММ-ДД")
		return
	}

	delegation, err := h.attendance.AddDelegation(ctx, user.ID, date)
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	h.reply(chatID, fmt.Sprintf("✅ Командировка добавлена!\n\n📅 Дата: %s", models.FormatDate(delegation.Date)))
}

func (h *Handler) showDelegations(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	user, ok := h.identify(ctx, chatID)
	if !ok {
		return
	}

	delegations, err := h.attendance.ListDelegations(ctx, user.ID)
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	if len(delegations) == 0 {
		h.reply(chatID, "📭 У вас нет командировок.")
		return
	}

	lines := []string{"✈️ Ваши командировки:", ""}
	for _, d := range delegations {
		lines = append(lines, "📅 "+models.FormatDate(d.Date))
	}

	h.reply(chatID, strings.Join(lines, "\n"))
}

func (h *Handler) deleteDelegation(ctx context.Context, message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	user, ok := h.identify(ctx, chatID)
	if !ok {
		return
	}

	date := strings.TrimSpace(args)
	if date == "" {
		h.reply(chatID, "❌ Укажите дату: /deldelegation ГГГГ-ММ-ДД")
		return
	}

	if err := h.attendance.DeleteDelegation(ctx, user.ID, date); err != nil {
		h.replyError(chatID, err)
		return
	}

	h.reply(chatID, fmt.Sprintf("✅ Командировка на %s удалена.", date))
}
