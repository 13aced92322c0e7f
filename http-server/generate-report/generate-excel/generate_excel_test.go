package generate_excel

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"agro-cost/internal/storage"
)

type MockExcelGenerator struct {
	mock.Mock
}

func (m *MockExcelGenerator) GenerateExcel(ctx context.Context, filter storage.WorkOrderFilter) ([]byte, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGenerateReportExcel_Success(t *testing.T) {
	mockGen := new(MockExcelGenerator)
	mockGen.On("GenerateExcel", mock.Anything, storage.WorkOrderFilter{
		From:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		To:      time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		PhaseID: 2,
	}).Return([]byte("xlsx"), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/report/excel?from=2024-01-01&to=2024-01-31&phase_id=2", nil)
	rr := httptest.NewRecorder()

	GenerateReportExcel(discardLogger(), mockGen).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "xlsx", rr.Body.String())
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "WorkOrders_2024-01-01_2024-01-31.xlsx")
	mockGen.AssertExpectations(t)
}

func TestGenerateReportExcel_BadParams(t *testing.T) {
	for _, q := range []string{
		"from=01.01.2024",
		"to=yesterday",
		"from=2024-02-01&to=2024-01-01",
		"from=2024-01-01&to=2024-01-31&phase_id=x",
	} {
		mockGen := new(MockExcelGenerator)
		rr := httptest.NewRecorder()

		GenerateReportExcel(discardLogger(), mockGen).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/report/excel?"+q, nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code, q)
		mockGen.AssertNotCalled(t, "GenerateExcel", mock.Anything, mock.Anything)
	}
}

func TestGenerateReportExcel_ServiceError(t *testing.T) {
	mockGen := new(MockExcelGenerator)
	mockGen.On("GenerateExcel", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	rr := httptest.NewRecorder()
	GenerateReportExcel(discardLogger(), mockGen).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/report/excel?from=2024-01-01&to=2024-01-31", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
