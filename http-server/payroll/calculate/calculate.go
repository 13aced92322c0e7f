package calculate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"agro-cost/http-server/apierr"
	"agro-cost/internal/storage"
)

type PayrollCalculator interface {
	Calculate(ctx context.Context, employeeID int64, startDate, endDate string) (*storage.PayrollCalculation, error)
}

type Request struct {
	EmployeeID int64  `json:"employeeId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
}

func CalculatePayroll(log *slog.Logger, calc PayrollCalculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.payroll.CalculatePayroll"

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		if req.EmployeeID <= 0 {
			http.Error(w, "employeeId is required", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		calculation, err := calc.Calculate(ctx, req.EmployeeID, req.StartDate, req.EndDate)
		if err != nil {
			apierr.Write(w, log, op, err)
			return
		}

		render.JSON(w, r, calculation)
	}
}
