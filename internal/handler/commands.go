package handler

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *Handler) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	command := message.Command()
	args := message.CommandArguments()

	switch command {
	case "start":
		h.sendStartMessage(ctx, message)
	case "help":
		h.sendHelpMessage(message)
	case "me", "myprofile":
		h.showProfile(ctx, message)

	// Отсутствия и командировки
	case "absence":
		h.addAbsence(ctx, message, args)
	case "absences":
		h.showAbsences(ctx, message)
	case "delabsence":
		h.deleteAbsence(ctx, message, args)
	case "delegation":
		h.addDelegation(ctx, message, args)
	case "delegations":
		h.showDelegations(ctx, message)
	case "deldelegation":
		h.deleteDelegation(ctx, message, args)

	// Рабочее время
	case "work":
		h.addWorkSession(ctx, message, args)
	case "worklog":
		h.showWorkLog(ctx, message)
	case "editwork":
		h.editWorkSession(ctx, message, args)
	case "delwork":
		h.deleteWorkSession(ctx, message, args)

	// Зарплата
	case "salary":
		h.showSalaryProfile(ctx, message)
	case "payroll":
		h.generatePayroll(ctx, message, args)
	case "payrollhistory":
		h.showPayrollHistory(ctx, message)
	case "confirmpay":
		h.confirmPayment(ctx, message, args)

	// Администрирование
	case "setsalary":
		h.setSalary(ctx, message, args)

	default:
		h.sendUnknownCommand(message)
	}
}

func (h *Handler) sendUnknownCommand(message *tgbotapi.Message) {
	h.reply(message.Chat.ID, "❌ Неизвестная команда. Используйте /help для списка команд.")
}

// sendStartMessage регистрирует чат и показывает справку
func (h *Handler) sendStartMessage(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	username, firstName := "", ""
	if message.From != nil {
		username = message.From.UserName
		firstName = message.From.FirstName
	}

	user, err := h.userService.RegisterChat(ctx, chatID, username, firstName)
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	text := fmt.Sprintf("👋 Добро пожаловать в панель сотрудника!\n\n🆔 Ваш ID сотрудника: %d\n\n%s", user.ID, helpText)
	h.reply(chatID, text)
}

func (h *Handler) sendHelpMessage(message *tgbotapi.Message) {
	h.reply(message.Chat.ID, helpText)
}

const helpText = `📋 Доступные команды:

👤 Профиль:
/start - Зарегистрироваться
/me - Показать мой профиль

🏖️ Отсутствия и командировки:
/absence ГГГГ-ММ-ДД тип - Добавить отсутствие
    Пример: /absence 2026-07-01 отпуск
/absences - Мои отсутствия
/delabsence ГГГГ-ММ-ДД - Удалить отсутствие
/delegation ГГГГ-ММ-ДД - Добавить командировку
/delegations - Мои командировки
/deldelegation ГГГГ-ММ-ДД - Удалить командировку

⏰ Рабочее время:
/work ГГГГ-ММ-ДД ЧЧ:ММ ЧЧ:ММ [remote] - Записать рабочий день
    Пример: /work 2026-03-02 09:00 17:30 remote
/worklog - Мои рабочие дни
/editwork ID ГГГГ-ММ-ДД ЧЧ:ММ ЧЧ:ММ - Изменить рабочий день
/delwork ID - Удалить рабочий день

💰 Зарплата:
/salary - Мой договор
/payroll ГГГГ ММ - Рассчитать зарплату за месяц
/payrollhistory - История выплат
/confirmpay ID СУММА [bonus] [заметка] - Подтвердить получение выплаты

👑 Администрирование:
/setsalary ID_СОТРУДНИКА hourly|monthly СУММА - Задать договор

💡 В день может быть только одна запись: рабочие часы, отсутствие или командировка.`
