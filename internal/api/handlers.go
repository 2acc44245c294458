package api

import (
	"employee-panel/internal/service"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// Handler обслуживает HTTP запросы сотрудников
type Handler struct {
	attendance *service.AttendanceService
	payroll    *service.PayrollService
	logger     *logrus.Logger
}

func NewHandler(attendance *service.AttendanceService, payroll *service.PayrollService, logger *logrus.Logger) *Handler {
	return &Handler{
		attendance: attendance,
		payroll:    payroll,
		logger:     logger,
	}
}

// Отсутствия

func (h *Handler) ListAbsences(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	absences, err := h.attendance.ListAbsences(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toAbsenceDTOs(absences))
}

func (h *Handler) AddAbsence(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var req AbsenceRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	if _, err := h.attendance.AddAbsence(r.Context(), userID, req.Date, req.Type); err != nil {
		h.fail(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteAbsence(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.attendance.DeleteAbsence(r.Context(), userID, chi.URLParam(r, "date")); err != nil {
		h.fail(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Командировки

func (h *Handler) ListDelegations(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	delegations, err := h.attendance.ListDelegations(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toDelegationDates(delegations))
}

func (h *Handler) AddDelegation(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var req DelegationRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	if _, err := h.attendance.AddDelegation(r.Context(), userID, req.Date); err != nil {
		h.fail(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteDelegation(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.attendance.DeleteDelegation(r.Context(), userID, chi.URLParam(r, "date")); err != nil {
		h.fail(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Рабочее время

func (h *Handler) ListWorkSessions(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	sessions, err := h.attendance.ListWorkSessions(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toWorkSessionDTOs(sessions))
}

func (h *Handler) AddWorkSession(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var req WorkSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	session, err := h.attendance.AddWorkSession(r.Context(), userID, service.WorkSessionInput{
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		IsRemote:  req.IsRemote,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toWorkSessionDTO(session))
}

func (h *Handler) UpdateWorkSession(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var req WorkSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	err = h.attendance.UpdateWorkSession(r.Context(), userID, id, service.WorkSessionUpdate{
		ID:        req.ID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteWorkSession(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.attendance.DeleteWorkSession(r.Context(), userID, id); err != nil {
		h.fail(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Зарплата

func (h *Handler) GetSalaryProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	profile, err := h.payroll.GetSalaryProfile(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSalaryProfileDTO(profile))
}

func (h *Handler) GetPayrollHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	records, err := h.payroll.GetPayrollHistory(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPayrollRecordDTOs(records))
}

func (h *Handler) GeneratePayroll(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var req GeneratePayrollRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	if _, err := h.payroll.GeneratePayroll(r.Context(), userID, req.Year, req.Month); err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Зарплата рассчитана или обновлена."})
}

func (h *Handler) UpdatePayrollRecord(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var req UpdatePayrollRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	err = h.payroll.UpdatePayrollRecord(r.Context(), userID, id, service.PayrollUpdate{
		ReceivedAmount: req.ReceivedAmount,
		IsConfirmed:    req.IsConfirmed,
		HasBonus:       req.HasBonus,
		Notes:          req.Notes,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Администрирование

func (h *Handler) UpsertSalaryProfile(w http.ResponseWriter, r *http.Request) {
	targetID, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var req SalaryProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	profile, err := h.payroll.UpsertSalaryProfile(r.Context(), targetID, service.SalaryProfileInput{
		ContractType:  req.ContractType,
		HourlyRate:    req.HourlyRate,
		MonthlyAmount: req.MonthlyAmount,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSalaryProfileDTO(profile))
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Вспомогательные функции

// fail отвечает статусом, соответствующим виду ошибки. Внутренние ошибки не раскрываются клиенту.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).WithError(err).Error("Request failed")
		writeError(w, status, service.Message(err), nil)
		return
	}

	writeError(w, status, errorMessage(err), nil)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrUnsupportedContract):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage берет сообщение service.Error, для остальных клиентских ошибок текст ошибки
func errorMessage(err error) string {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		return svcErr.Message
	}
	return err.Error()
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &service.Error{Kind: service.ErrValidation, Message: fmt.Sprintf("invalid request body: %v", err)}
	}
	return nil
}

func pathID(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, &service.Error{Kind: service.ErrValidation, Message: fmt.Sprintf("invalid id %q", raw)}
	}
	return uint(id), nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
