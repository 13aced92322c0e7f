package get

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"agro-cost/internal/storage"
)

type MockAdminReferenceProvider struct {
	mock.Mock
}

func (m *MockAdminReferenceProvider) GetAllActivitiesAdmin(ctx context.Context) ([]*storage.Activity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*storage.Activity), args.Error(1)
}

func (m *MockAdminReferenceProvider) GetAllEmployeesAdmin(ctx context.Context) ([]*storage.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*storage.Employee), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGetActivitiesAdmin(t *testing.T) {
	daily := 50.0
	mockProvider := new(MockAdminReferenceProvider)
	mockProvider.On("GetAllActivitiesAdmin", mock.Anything).Return([]*storage.Activity{
		{ID: 7, Name: "Harvest", UnitCost: 10, DailyActivityCost: &daily, IsActive: true},
	}, nil)

	rr := httptest.NewRecorder()
	GetActivitiesAdmin(discardLogger(), mockProvider).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/admin/activities", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"dailyActivityCost":50`)
}

func TestGetActivitiesAdmin_EmptyIsArray(t *testing.T) {
	mockProvider := new(MockAdminReferenceProvider)
	mockProvider.On("GetAllActivitiesAdmin", mock.Anything).Return(nil, nil)

	rr := httptest.NewRecorder()
	GetActivitiesAdmin(discardLogger(), mockProvider).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/admin/activities", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestGetEmployeesAdmin_Error(t *testing.T) {
	mockProvider := new(MockAdminReferenceProvider)
	mockProvider.On("GetAllEmployeesAdmin", mock.Anything).Return(nil, errors.New("db down"))

	rr := httptest.NewRecorder()
	GetEmployeesAdmin(discardLogger(), mockProvider).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/admin/employees", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
