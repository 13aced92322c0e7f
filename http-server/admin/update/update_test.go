package update

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"agro-cost/internal/storage"
)

type MockAdminReferenceUpdater struct {
	mock.Mock
}

func (m *MockAdminReferenceUpdater) UpdateActivitiesAdmin(ctx context.Context, activities []storage.Activity) error {
	return m.Called(ctx, activities).Error(0)
}

func (m *MockAdminReferenceUpdater) UpdateEmployeesAdmin(ctx context.Context, employees []storage.Employee) error {
	return m.Called(ctx, employees).Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestUpdateActivitiesAdmin_Success(t *testing.T) {
	mockUpdater := new(MockAdminReferenceUpdater)
	mockUpdater.On("UpdateActivitiesAdmin", mock.Anything, mock.MatchedBy(func(a []storage.Activity) bool {
		return len(a) == 1 && a[0].ID == 7 && *a[0].DailyActivityCost == 55
	})).Return(nil)

	body := `[{"id": 7, "unitCost": 11, "dailyActivityCost": 55, "isActive": true}]`
	req := httptest.NewRequest(http.MethodPut, "/api/admin/activities/update", strings.NewReader(body))
	rr := httptest.NewRecorder()

	UpdateActivitiesAdmin(discardLogger(), mockUpdater).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status": "updated", "count": 1}`, rr.Body.String())
	mockUpdater.AssertExpectations(t)
}

func TestUpdateActivitiesAdmin_RejectsNegativeCost(t *testing.T) {
	mockUpdater := new(MockAdminReferenceUpdater)

	body := `[{"id": 7, "unitCost": -1}]`
	req := httptest.NewRequest(http.MethodPut, "/api/admin/activities/update", strings.NewReader(body))
	rr := httptest.NewRecorder()

	UpdateActivitiesAdmin(discardLogger(), mockUpdater).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockUpdater.AssertNotCalled(t, "UpdateActivitiesAdmin", mock.Anything, mock.Anything)
}

func TestUpdateEmployeesAdmin_NormalizesPeriod(t *testing.T) {
	mockUpdater := new(MockAdminReferenceUpdater)
	mockUpdater.On("UpdateEmployeesAdmin", mock.Anything, mock.MatchedBy(func(e []storage.Employee) bool {
		return len(e) == 2 && e[0].PaymentPeriod == "Biweekly" && e[1].PaymentPeriod == "Monthly"
	})).Return(nil)

	body := `[{"id": 1, "salary": 2800, "paymentPeriod": "2"}, {"id": 2, "salary": 3000, "paymentPeriod": "whenever"}]`
	req := httptest.NewRequest(http.MethodPut, "/api/admin/employees/update", strings.NewReader(body))
	rr := httptest.NewRecorder()

	UpdateEmployeesAdmin(discardLogger(), mockUpdater).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	mockUpdater.AssertExpectations(t)
}
