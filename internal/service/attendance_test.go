package service_test

import (
	"employee-panel/internal/models"
	"employee-panel/internal/service"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func workDay(date, start, end string) service.WorkSessionInput {
	return service.WorkSessionInput{Date: date, StartTime: start, EndTime: end}
}

func TestAddAbsence_CreatesPlaceholderAndBlocksDelegation(t *testing.T) {
	env := newTestEnv(t)

	absence, err := env.attendance.AddAbsence(env.ctx, 1, "2024-03-06", "sick")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-06", models.FormatDate(absence.Date))
	assert.Equal(t, uint(1), absence.UserID)

	session := env.sessionOn(t, 1, "2024-03-06")
	require.NotNil(t, session)
	assert.True(t, session.IsPlaceholder)
	assert.Zero(t, session.TotalHours)
	assert.Equal(t, models.PlaceholderClock, session.StartTime)

	assert.Equal(t, int64(1), env.count(t, &models.Absence{}))
	assert.Equal(t, int64(1), env.count(t, &models.WorkSession{}))

	_, err = env.attendance.AddDelegation(env.ctx, 1, "2024-03-06")
	assert.ErrorIs(t, err, service.ErrConflict)
	assert.Equal(t, int64(0), env.count(t, &models.Delegation{}))
}

func TestAddAbsence_RejectsDuplicate(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.attendance.AddAbsence(env.ctx, 1, "2024-03-06", "sick")
	require.NoError(t, err)

	_, err = env.attendance.AddAbsence(env.ctx, 1, "2024-03-06", "vacation")
	assert.ErrorIs(t, err, service.ErrConflict)
	assert.Equal(t, int64(1), env.count(t, &models.WorkSession{}))
}

func TestAddAbsence_ConflictsWithWorkedHours(t *testing.T) {
	env := newTestEnv(t)

	session, err := env.attendance.AddWorkSession(env.ctx, 1, workDay("2024-03-05", "09:00", "17:00"))
	require.NoError(t, err)
	assert.Equal(t, 8.0, session.TotalHours)

	_, err = env.attendance.AddAbsence(env.ctx, 1, "2024-03-05", "vacation")
	assert.ErrorIs(t, err, service.ErrConflict)

	_, err = env.attendance.AddDelegation(env.ctx, 1, "2024-03-05")
	assert.ErrorIs(t, err, service.ErrConflict)

	assert.Equal(t, int64(0), env.count(t, &models.Absence{}))
	assert.Equal(t, int64(0), env.count(t, &models.Delegation{}))
}

func TestAddAbsence_KeepsNonPositiveSession(t *testing.T) {
	env := newTestEnv(t)

	session, err := env.attendance.AddWorkSession(env.ctx, 1, workDay("2024-03-07", "10:00", "08:00"))
	require.NoError(t, err)

	_, err = env.attendance.AddAbsence(env.ctx, 1, "2024-03-07", "sick")
	require.NoError(t, err, "only positive hours block an absence")
	assert.Equal(t, int64(1), env.count(t, &models.WorkSession{}), "no placeholder next to an existing session")

	require.NoError(t, env.attendance.DeleteAbsence(env.ctx, 1, "2024-03-07"))
	kept := env.sessionOn(t, 1, "2024-03-07")
	require.NotNil(t, kept, "regular session survives absence removal")
	assert.Equal(t, session.ID, kept.ID)
}

func TestAddAbsence_Validation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.attendance.AddAbsence(env.ctx, 1, "06.03.2024", "sick")
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = env.attendance.AddAbsence(env.ctx, 1, "2024-03-06", "  ")
	assert.ErrorIs(t, err, service.ErrValidation)

	assert.Equal(t, int64(0), env.count(t, &models.WorkSession{}))
}

func TestDeleteAbsence_RemovesPlaceholderOnce(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.attendance.AddAbsence(env.ctx, 1, "2024-03-06", "sick")
	require.NoError(t, err)

	require.NoError(t, env.attendance.DeleteAbsence(env.ctx, 1, "2024-03-06"))
	assert.Nil(t, env.sessionOn(t, 1, "2024-03-06"))
	assert.Equal(t, int64(0), env.count(t, &models.Absence{}))

	err = env.attendance.DeleteAbsence(env.ctx, 1, "2024-03-06")
	assert.ErrorIs(t, err, service.ErrNotFound)

	err = env.attendance.DeleteAbsence(env.ctx, 1, "not-a-date")
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestDeleteAbsence_OtherUserIsNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.attendance.AddAbsence(env.ctx, 1, "2024-03-06", "sick")
	require.NoError(t, err)

	err = env.attendance.DeleteAbsence(env.ctx, 2, "2024-03-06")
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.Equal(t, int64(1), env.count(t, &models.Absence{}))
}

func TestDelegation_Lifecycle(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.attendance.AddDelegation(env.ctx, 1, "2024-04-10")
	require.NoError(t, err)
	_, err = env.attendance.AddDelegation(env.ctx, 1, "2024-04-02")
	require.NoError(t, err)

	_, err = env.attendance.AddDelegation(env.ctx, 1, "2024-04-10")
	assert.ErrorIs(t, err, service.ErrConflict)

	_, err = env.attendance.AddAbsence(env.ctx, 1, "2024-04-10", "sick")
	assert.ErrorIs(t, err, service.ErrConflict)

	delegations, err := env.attendance.ListDelegations(env.ctx, 1)
	require.NoError(t, err)
	require.Len(t, delegations, 2)
	assert.Equal(t, "2024-04-02", models.FormatDate(delegations[0].Date))
	assert.Equal(t, "2024-04-10", models.FormatDate(delegations[1].Date))

	session := env.sessionOn(t, 1, "2024-04-10")
	require.NotNil(t, session)
	assert.True(t, session.IsPlaceholder)

	require.NoError(t, env.attendance.DeleteDelegation(env.ctx, 1, "2024-04-10"))
	assert.Nil(t, env.sessionOn(t, 1, "2024-04-10"))
	assert.ErrorIs(t, env.attendance.DeleteDelegation(env.ctx, 1, "2024-04-10"), service.ErrNotFound)
}

func TestListAbsences_OrderedAndScoped(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.attendance.AddAbsence(env.ctx, 1, "2024-05-20", "vacation")
	require.NoError(t, err)
	_, err = env.attendance.AddAbsence(env.ctx, 1, "2024-05-01", "sick")
	require.NoError(t, err)
	_, err = env.attendance.AddAbsence(env.ctx, 2, "2024-05-10", "sick")
	require.NoError(t, err)

	absences, err := env.attendance.ListAbsences(env.ctx, 1)
	require.NoError(t, err)
	require.Len(t, absences, 2)
	assert.Equal(t, "sick", absences[0].Type)
	assert.Equal(t, "vacation", absences[1].Type)
}

func TestAddWorkSession_NegativeTotalIsKept(t *testing.T) {
	env := newTestEnv(t)

	session, err := env.attendance.AddWorkSession(env.ctx, 1, workDay("2024-03-08", "10:00", "08:00"))
	require.NoError(t, err)
	assert.Equal(t, -2.0, session.TotalHours)
	assert.False(t, session.IsPlaceholder)
}

func TestAddWorkSession_Conflicts(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.attendance.AddWorkSession(env.ctx, 1, workDay("2024-03-05", "09:00", "17:00"))
	require.NoError(t, err)

	_, err = env.attendance.AddWorkSession(env.ctx, 1, workDay("2024-03-05", "18:00", "19:00"))
	assert.ErrorIs(t, err, service.ErrConflict)

	_, err = env.attendance.AddAbsence(env.ctx, 1, "2024-03-06", "sick")
	require.NoError(t, err)
	_, err = env.attendance.AddWorkSession(env.ctx, 1, workDay("2024-03-06", "09:00", "17:00"))
	assert.ErrorIs(t, err, service.ErrConflict, "absence day cannot get worked hours")

	_, err = env.attendance.AddDelegation(env.ctx, 1, "2024-03-07")
	require.NoError(t, err)
	_, err = env.attendance.AddWorkSession(env.ctx, 1, workDay("2024-03-07", "09:00", "17:00"))
	assert.ErrorIs(t, err, service.ErrConflict)
}

func TestAddWorkSession_Validation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.attendance.AddWorkSession(env.ctx, 1, workDay("2024-03-05", "9am", "17:00"))
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = env.attendance.AddWorkSession(env.ctx, 1, workDay("yesterday", "09:00", "17:00"))
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestUpdateWorkSession(t *testing.T) {
	env := newTestEnv(t)

	session, err := env.attendance.AddWorkSession(env.ctx, 1, workDay("2024-03-05", "09:00", "17:00"))
	require.NoError(t, err)

	err = env.attendance.UpdateWorkSession(env.ctx, 1, session.ID, service.WorkSessionUpdate{
		ID: session.ID, Date: "2024-03-04", StartTime: "08:00", EndTime: "12:30",
	})
	require.NoError(t, err)

	assert.Nil(t, env.sessionOn(t, 1, "2024-03-05"))
	moved := env.sessionOn(t, 1, "2024-03-04")
	require.NotNil(t, moved)
	assert.Equal(t, 4.5, moved.TotalHours)
	assert.Equal(t, "08:00", moved.StartTime)
}

func TestUpdateWorkSession_Errors(t *testing.T) {
	env := newTestEnv(t)

	session, err := env.attendance.AddWorkSession(env.ctx, 1, workDay("2024-03-05", "09:00", "17:00"))
	require.NoError(t, err)
	other, err := env.attendance.AddWorkSession(env.ctx, 1, workDay("2024-03-06", "09:00", "17:00"))
	require.NoError(t, err)
	_, err = env.attendance.AddAbsence(env.ctx, 1, "2024-03-07", "sick")
	require.NoError(t, err)
	placeholder := env.sessionOn(t, 1, "2024-03-07")
	require.NotNil(t, placeholder)

	update := func(id uint, date, start, end string) service.WorkSessionUpdate {
		return service.WorkSessionUpdate{ID: id, Date: date, StartTime: start, EndTime: end}
	}

	err = env.attendance.UpdateWorkSession(env.ctx, 1, session.ID, update(other.ID, "2024-03-05", "09:00", "10:00"))
	assert.ErrorIs(t, err, service.ErrValidation, "id mismatch")

	err = env.attendance.UpdateWorkSession(env.ctx, 1, session.ID, update(session.ID, "2024-03-05", "nine", "10:00"))
	assert.ErrorIs(t, err, service.ErrValidation)

	err = env.attendance.UpdateWorkSession(env.ctx, 2, session.ID, update(session.ID, "2024-03-05", "09:00", "10:00"))
	assert.ErrorIs(t, err, service.ErrNotFound, "foreign session")

	err = env.attendance.UpdateWorkSession(env.ctx, 1, session.ID, update(session.ID, "2024-03-06", "09:00", "10:00"))
	assert.ErrorIs(t, err, service.ErrConflict, "target day has another session")

	err = env.attendance.UpdateWorkSession(env.ctx, 1, session.ID, update(session.ID, "2024-03-07", "09:00", "10:00"))
	assert.ErrorIs(t, err, service.ErrConflict, "target day has an absence")

	err = env.attendance.UpdateWorkSession(env.ctx, 1, placeholder.ID, update(placeholder.ID, "2024-03-07", "09:00", "17:00"))
	assert.ErrorIs(t, err, service.ErrConflict, "placeholder cannot gain hours")

	unchanged := env.sessionOn(t, 1, "2024-03-05")
	require.NotNil(t, unchanged)
	assert.Equal(t, 8.0, unchanged.TotalHours)
}

func TestDeleteWorkSession(t *testing.T) {
	env := newTestEnv(t)

	session, err := env.attendance.AddWorkSession(env.ctx, 1, workDay("2024-03-05", "09:00", "17:00"))
	require.NoError(t, err)

	assert.ErrorIs(t, env.attendance.DeleteWorkSession(env.ctx, 2, session.ID), service.ErrNotFound)
	require.NoError(t, env.attendance.DeleteWorkSession(env.ctx, 1, session.ID))
	assert.ErrorIs(t, env.attendance.DeleteWorkSession(env.ctx, 1, session.ID), service.ErrNotFound)
}

func TestListWorkSessions(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.attendance.ListWorkSessions(env.ctx, 1)
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = env.attendance.AddWorkSession(env.ctx, 1, workDay("2024-03-05", "09:00", "17:00"))
	require.NoError(t, err)
	_, err = env.attendance.AddAbsence(env.ctx, 1, "2024-03-01", "sick")
	require.NoError(t, err)

	sessions, err := env.attendance.ListWorkSessions(env.ctx, 1)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.True(t, sessions[0].IsPlaceholder)
	assert.Equal(t, "2024-03-05", models.FormatDate(sessions[1].Date))
}

func TestAttendance_ClientErrorsLoggedAsWarnings(t *testing.T) {
	env := newTestEnv(t)
	env.logs.Reset()

	_, err := env.attendance.AddWorkSession(env.ctx, 1, workDay("2024-03-05", "09:00", "17:00"))
	require.NoError(t, err)
	_, err = env.attendance.AddAbsence(env.ctx, 1, "2024-03-05", "sick")
	require.ErrorIs(t, err, service.ErrConflict)

	for _, entry := range env.logs.AllEntries() {
		assert.NotEqual(t, logrus.ErrorLevel, entry.Level, "unexpected error log: %s", entry.Message)
	}
}
