package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"agro-cost/internal/storage"
)

type AdminReferenceProvider interface {
	GetAllActivitiesAdmin(ctx context.Context) ([]*storage.Activity, error)
	GetAllEmployeesAdmin(ctx context.Context) ([]*storage.Employee, error)
}

func GetActivitiesAdmin(log *slog.Logger, provider AdminReferenceProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.GetActivitiesAdmin"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		activities, err := provider.GetAllActivitiesAdmin(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to get activities")
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		if activities == nil {
			activities = []*storage.Activity{}
		}

		render.JSON(w, r, activities)
	}
}

func GetEmployeesAdmin(log *slog.Logger, provider AdminReferenceProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.GetEmployeesAdmin"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		employees, err := provider.GetAllEmployeesAdmin(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to get employees")
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		if employees == nil {
			employees = []*storage.Employee{}
		}

		render.JSON(w, r, employees)
	}
}
