package service_test

import (
	"context"
	"employee-panel/internal/models"
	"employee-panel/internal/repository"
	"employee-panel/internal/service"
	"employee-panel/internal/storage"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	ctx        context.Context
	db         *gorm.DB
	store      *repository.Store
	attendance *service.AttendanceService
	payroll    *service.PayrollService
	users      *service.UserService
	logs       *logrustest.Hook
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger, hook := logrustest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	db, err := storage.Open(storage.DriverSQLite, "file:"+uuid.NewString()+"?mode=memory&cache=shared", logger)
	require.NoError(t, err)
	t.Cleanup(func() { storage.Close(db) })

	store, err := repository.NewGormStore(db, logger)
	require.NoError(t, err)

	userRepo, err := repository.NewGormUserRepository(db)
	require.NoError(t, err)

	return &testEnv{
		ctx:        context.Background(),
		db:         db,
		store:      store,
		attendance: service.NewAttendanceService(store, logger),
		payroll:    service.NewPayrollService(store, logger),
		users:      service.NewUserService(userRepo, logger),
		logs:       hook,
	}
}

// sessionOn возвращает сессию сотрудника на дату или nil
func (e *testEnv) sessionOn(t *testing.T, userID uint, date string) *models.WorkSession {
	t.Helper()
	d, err := models.ParseDate(date)
	require.NoError(t, err)
	session, err := e.store.ForUser(e.ctx, userID).GetWorkSessionByDate(d)
	require.NoError(t, err)
	return session
}

func (e *testEnv) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(model).Count(&n).Error)
	return n
}
