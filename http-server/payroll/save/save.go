package save

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

type PayrollSaver interface {
	Save(ctx context.Context, p storage.Payroll) (*storage.Payroll, error)
}

func SavePayroll(log *slog.Logger, saver PayrollSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.payroll.SavePayroll"

		var req storage.Payroll
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

		saved, err := saver.Save(ctx, req)
		if err != nil {
			apierr.Write(w, log, op, err)
			return
		}

		log.Info("payroll saved",
			slog.Int64("id", saved.ID),
			slog.Int64("employee_id", saved.EmployeeID),
			slog.Float64("total_amount", saved.TotalAmount),
		)

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, saved)
	}
}
