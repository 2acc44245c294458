package repository_test

import (
	"context"
	"employee-panel/internal/models"
	"employee-panel/internal/repository"
	"employee-panel/internal/storage"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) (*repository.Store, *gorm.DB) {
	t.Helper()

	logger, _ := logrustest.NewNullLogger()
	db, err := storage.Open(storage.DriverSQLite, "file:"+uuid.NewString()+"?mode=memory&cache=shared", logger)
	require.NoError(t, err)
	t.Cleanup(func() { storage.Close(db) })

	store, err := repository.NewGormStore(db, logger)
	require.NoError(t, err)
	return store, db
}

func mustDate(t *testing.T, s string) datatypes.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestWorkSession_UniquePerUserAndDay(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	day := mustDate(t, "2026-03-02")

	alice := store.ForUser(ctx, 1)
	require.NoError(t, alice.CreateWorkSession(&models.WorkSession{Date: day, StartTime: "09:00", EndTime: "17:00", TotalHours: 8}))

	err := alice.CreateWorkSession(&models.WorkSession{Date: day, StartTime: "10:00", EndTime: "11:00", TotalHours: 1})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	bob := store.ForUser(ctx, 2)
	assert.NoError(t, bob.CreateWorkSession(&models.WorkSession{Date: day, StartTime: "10:00", EndTime: "11:00", TotalHours: 1}),
		"another user may record the same day")
}

func TestAbsenceAndDelegation_UniquePerUserAndDay(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	day := mustDate(t, "2026-03-03")
	scope := store.ForUser(ctx, 1)

	require.NoError(t, scope.CreateAbsence(&models.Absence{Date: day, Type: "sick"}))
	assert.ErrorIs(t, scope.CreateAbsence(&models.Absence{Date: day, Type: "vacation"}), repository.ErrDuplicate)

	require.NoError(t, scope.CreateDelegation(&models.Delegation{Date: day}))
	assert.ErrorIs(t, scope.CreateDelegation(&models.Delegation{Date: day}), repository.ErrDuplicate)
}

func TestUserScope_IsolatesUsers(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	day := mustDate(t, "2026-03-04")

	alice := store.ForUser(ctx, 1)
	bob := store.ForUser(ctx, 2)

	session := &models.WorkSession{Date: day, StartTime: "09:00", EndTime: "12:00", TotalHours: 3}
	require.NoError(t, alice.CreateWorkSession(session))
	require.NoError(t, alice.CreateAbsence(&models.Absence{Date: mustDate(t, "2026-03-05"), Type: "sick"}))

	got, err := bob.GetWorkSession(session.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "foreign session must be invisible")

	deleted, err := bob.DeleteWorkSession(session.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	absences, err := bob.ListAbsences()
	require.NoError(t, err)
	assert.Empty(t, absences)

	got, err = alice.GetWorkSession(session.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, uint(1), got.UserID)
}

func TestListWorkSessions_OrderedByDate(t *testing.T) {
	store, _ := newTestStore(t)
	scope := store.ForUser(context.Background(), 1)

	for _, d := range []string{"2026-03-10", "2026-03-01", "2026-02-27"} {
		require.NoError(t, scope.CreateWorkSession(&models.WorkSession{Date: mustDate(t, d), StartTime: "09:00", EndTime: "10:00", TotalHours: 1}))
	}

	sessions, err := scope.ListWorkSessions()
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.Equal(t, "2026-02-27", models.FormatDate(sessions[0].Date))
	assert.Equal(t, "2026-03-01", models.FormatDate(sessions[1].Date))
	assert.Equal(t, "2026-03-10", models.FormatDate(sessions[2].Date))
}

func TestSumHoursForMonth(t *testing.T) {
	store, _ := newTestStore(t)
	scope := store.ForUser(context.Background(), 1)

	sessions := []models.WorkSession{
		{Date: mustDate(t, "2026-02-28"), StartTime: "09:00", EndTime: "19:00", TotalHours: 10},
		{Date: mustDate(t, "2026-03-01"), StartTime: "09:00", EndTime: "17:00", TotalHours: 8},
		{Date: mustDate(t, "2026-03-15"), StartTime: "10:00", EndTime: "08:00", TotalHours: -2},
		{Date: mustDate(t, "2026-03-31"), StartTime: "09:00", EndTime: "13:30", TotalHours: 4.5},
		{Date: mustDate(t, "2026-04-01"), StartTime: "09:00", EndTime: "10:00", TotalHours: 1},
	}
	for i := range sessions {
		require.NoError(t, scope.CreateWorkSession(&sessions[i]))
	}

	hours, err := scope.SumHoursForMonth(2026, 3)
	require.NoError(t, err)
	assert.InDelta(t, 10.5, hours, 1e-9)

	hours, err = scope.SumHoursForMonth(2026, 5)
	require.NoError(t, err)
	assert.Zero(t, hours)

	march, err := scope.ListWorkSessionsForMonth(2026, 3)
	require.NoError(t, err)
	assert.Len(t, march, 3)
}

func TestTransaction_RollsBackOnError(t *testing.T) {
	store, db := newTestStore(t)
	ctx := context.Background()
	day := mustDate(t, "2026-03-06")
	boom := errors.New("boom")

	err := store.Transaction(ctx, func(tx *repository.Store) error {
		scope := tx.ForUser(ctx, 1)
		if err := scope.CreateWorkSession(models.NewPlaceholderSession(1, day)); err != nil {
			return err
		}
		if err := scope.CreateAbsence(&models.Absence{Date: day, Type: "sick"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var sessions, absences int64
	require.NoError(t, db.Model(&models.WorkSession{}).Count(&sessions).Error)
	require.NoError(t, db.Model(&models.Absence{}).Count(&absences).Error)
	assert.Zero(t, sessions)
	assert.Zero(t, absences)
}

func TestPayrollRecord_SaveAndReconcile(t *testing.T) {
	store, _ := newTestStore(t)
	scope := store.ForUser(context.Background(), 1)

	record := &models.PayrollRecord{Year: 2026, Month: 3, ExpectedAmount: decimal.RequireFromString("1234.50")}
	require.NoError(t, scope.SavePayrollRecord(record))
	require.NotZero(t, record.ID)

	notes := "paid late"
	record.ExpectedAmount = decimal.RequireFromString("1.00")
	record.ReceivedAmount = decimal.RequireFromString("1200.00")
	record.IsConfirmed = true
	record.HasBonus = true
	record.Notes = &notes
	require.NoError(t, scope.UpdatePayrollReconciliation(record))

	got, err := scope.GetPayrollRecordByMonth(2026, 3)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.ExpectedAmount.Equal(decimal.RequireFromString("1234.50")), "expected amount is not a reconciliation field")
	assert.True(t, got.ReceivedAmount.Equal(decimal.RequireFromString("1200")))
	assert.True(t, got.IsConfirmed)
	assert.True(t, got.HasBonus)
	require.NotNil(t, got.Notes)
	assert.Equal(t, notes, *got.Notes)

	duplicate := &models.PayrollRecord{Year: 2026, Month: 3}
	assert.ErrorIs(t, scope.SavePayrollRecord(duplicate), repository.ErrDuplicate)

	assert.Error(t, scope.SavePayrollRecord(&models.PayrollRecord{Year: 2026, Month: 0}))
}

func TestListPayrollRecords_NewestFirst(t *testing.T) {
	store, _ := newTestStore(t)
	scope := store.ForUser(context.Background(), 1)

	for _, p := range [][2]int{{2025, 12}, {2026, 2}, {2026, 1}} {
		require.NoError(t, scope.SavePayrollRecord(&models.PayrollRecord{Year: p[0], Month: p[1]}))
	}

	records, err := scope.ListPayrollRecords()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, [2]int{2026, 2}, [2]int{records[0].Year, records[0].Month})
	assert.Equal(t, [2]int{2026, 1}, [2]int{records[1].Year, records[1].Month})
	assert.Equal(t, [2]int{2025, 12}, [2]int{records[2].Year, records[2].Month})
}

func TestSalaryProfile_SaveOverwrites(t *testing.T) {
	store, _ := newTestStore(t)
	scope := store.ForUser(context.Background(), 5)

	profile, err := scope.GetSalaryProfile()
	require.NoError(t, err)
	assert.Nil(t, profile)

	profile = &models.SalaryProfile{ContractType: models.ContractHourly, HourlyRate: decimal.NewNullDecimal(decimal.NewFromInt(30))}
	require.NoError(t, scope.SaveSalaryProfile(profile))

	profile.ContractType = models.ContractMonthly
	profile.HourlyRate = decimal.NullDecimal{}
	profile.MonthlyAmount = decimal.NewNullDecimal(decimal.NewFromInt(5000))
	require.NoError(t, scope.SaveSalaryProfile(profile))

	got, err := scope.GetSalaryProfile()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.IsMonthly())
	assert.False(t, got.HourlyRate.Valid)
	assert.True(t, got.MonthlyAmount.Decimal.Equal(decimal.NewFromInt(5000)))
}
