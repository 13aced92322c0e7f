package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"agro-cost/internal/service/payroll"
	"agro-cost/internal/storage"
)

type AdminReferenceUpdater interface {
	UpdateActivitiesAdmin(ctx context.Context, activities []storage.Activity) error
	UpdateEmployeesAdmin(ctx context.Context, employees []storage.Employee) error
}

func UpdateActivitiesAdmin(log *slog.Logger, updater AdminReferenceUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.UpdateActivitiesAdmin"

		var activities []storage.Activity
		if err := json.NewDecoder(r.Body).Decode(&activities); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		for _, a := range activities {
			if a.ID <= 0 || a.UnitCost < 0 || (a.DailyActivityCost != nil && *a.DailyActivityCost < 0) {
				http.Error(w, "activity id and non-negative costs are required", http.StatusBadRequest)
				return
			}
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := updater.UpdateActivitiesAdmin(ctx, activities); err != nil {
			log.Error("failed to update activities", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]interface{}{"status": "updated", "count": len(activities)})
	}
}

func UpdateEmployeesAdmin(log *slog.Logger, updater AdminReferenceUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.UpdateEmployeesAdmin"

		var employees []storage.Employee
		if err := json.NewDecoder(r.Body).Decode(&employees); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		for i := range employees {
			if employees[i].ID <= 0 || employees[i].Salary < 0 {
				http.Error(w, "employee id and a non-negative salary are required", http.StatusBadRequest)
				return
			}
			employees[i].PaymentPeriod = string(payroll.ParsePaymentPeriod(employees[i].PaymentPeriod))
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := updater.UpdateEmployeesAdmin(ctx, employees); err != nil {
			log.Error("failed to update employees", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]interface{}{"status": "updated", "count": len(employees)})
	}
}
