package calculate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"agro-cost/http-server/apierr"
	"agro-cost/internal/service/costing"
	"agro-cost/internal/storage"
)

type WorkOrderCalculator interface {
	Calculate(ctx context.Context, dto storage.WorkOrder) (costing.Estimate, error)
}

// CalculateWorkOrder prices a work order draft without storing it.
func CalculateWorkOrder(log *slog.Logger, calc WorkOrderCalculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.workorder.CalculateWorkOrder"

		var req storage.WorkOrder
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		est, err := calc.Calculate(ctx, req)
		if err != nil {
			apierr.Write(w, log, op, err)
			return
		}

		render.JSON(w, r, est)
	}
}
