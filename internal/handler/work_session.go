package handler

import (
	"context"
	"employee-panel/internal/models"
	"employee-panel/internal/service"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// addWorkSession записывает рабочий день: /work ГГГГ-ММ-ДД ЧЧ:ММ ЧЧ:ММ [remote]
func (h *Handler) addWorkSession(ctx context.Context, message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	user, ok := h.identify(ctx, chatID)
	if !ok {
		return
	}

	parts := strings.Fields(args)
	if len(parts) < 3 || len(parts) > 4 {
		h.reply(chatID, "❌ Неверный формат. Используйте: /work ГГГГ-ММ-ДД ЧЧ:ММ ЧЧ:ММ [remote]\nПример: /work 2026-03-02 09:00 17:30")
		return
	}

	isRemote := false
	if len(parts) == 4 {
		switch strings.ToLower(parts[3]) {
		case "remote", "удаленно":
			isRemote = true
		default:
			h.reply(chatID, "❌ Последний параметр может быть только remote")
			return
		}
	}

	session, err := h.attendance.AddWorkSession(ctx, user.ID, service.WorkSessionInput{
		Date:      parts[0],
		StartTime: parts[1],
		EndTime:   parts[2],
		IsRemote:  isRemote,
	})
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	place := "🏢 В офисе"
	if session.IsRemote {
		place = "🏠 Удаленно"
	}

	response := fmt.Sprintf(
		`✅ Рабочий день записан!

🆔 ID: %d
📅 Дата: %s
⏰ Время: %s - %s
⏳ Отработано: %s
%s`,
		session.ID,
		models.FormatDate(session.Date),
		session.StartTime,
		session.EndTime,
		session.Duration(),
		place,
	)

	h.reply(chatID, response)
}

// showWorkLog показывает все рабочие дни сотрудника
func (h *Handler) showWorkLog(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	user, ok := h.identify(ctx, chatID)
	if !ok {
		return
	}

	sessions, err := h.attendance.ListWorkSessions(ctx, user.ID)
	if errors.Is(err, service.ErrNotFound) {
		h.reply(chatID, "📭 У вас пока нет записей рабочего времени.")
		return
	}
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	lines := []string{"📋 Рабочие дни:", ""}
	total := 0.0
	for _, s := range sessions {
		if s.IsPlaceholder {
			lines = append(lines, fmt.Sprintf("%d. 📅 %s - отсутствие/командировка", s.ID, models.FormatDate(s.Date)))
			continue
		}

		remote := ""
		if s.IsRemote {
			remote = " 🏠"
		}
		lines = append(lines, fmt.Sprintf("%d. 📅 %s ⏰ %s-%s ⏳ %s%s",
			s.ID, models.FormatDate(s.Date), s.StartTime, s.EndTime, s.Duration(), remote))
		total += s.TotalHours
	}

	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("📊 Всего часов: %.2f", total))

	h.reply(chatID, strings.Join(lines, "\n"))
}

// editWorkSession меняет рабочий день: /editwork ID ГГГГ-ММ-ДД ЧЧ:ММ ЧЧ:ММ
func (h *Handler) editWorkSession(ctx context.Context, message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	user, ok := h.identify(ctx, chatID)
	if !ok {
		return
	}

	parts := strings.Fields(args)
	if len(parts) != 4 {
		h.reply(chatID, "❌ Неверный формат. Используйте: /editwork ID ГГГГ-ММ-ДД ЧЧ:ММ ЧЧ:ММ")
		return
	}

	id, err := parseID(parts[0])
	if err != nil {
		h.reply(chatID, "❌ Неверный ID. ID должен быть положительным числом.")
		return
	}

	err = h.attendance.UpdateWorkSession(ctx, user.ID, id, service.WorkSessionUpdate{
		ID:        id,
		Date:      parts[1],
		StartTime: parts[2],
		EndTime:   parts[3],
	})
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	h.reply(chatID, fmt.Sprintf("✅ Рабочий день %d обновлен.", id))
}

// deleteWorkSession удаляет рабочий день: /delwork ID
func (h *Handler) deleteWorkSession(ctx context.Context, message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	user, ok := h.identify(ctx, chatID)
	if !ok {
		return
	}

	id, err := parseID(strings.TrimSpace(args))
	if err != nil {
		h.reply(chatID, "❌ Укажите ID рабочего дня: /delwork ID")
		return
	}

	if err := h.attendance.DeleteWorkSession(ctx, user.ID, id); err != nil {
		h.replyError(chatID, err)
		return
	}

	h.reply(chatID, fmt.Sprintf("✅ Рабочий день %d удален.", id))
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, errors.New("id must be positive")
	}
	return uint(id), nil
}
