package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"

	"agro-cost/internal/service/payroll"
	"agro-cost/internal/storage"
)

type EmployeeCreator interface {
	CreateEmployeeAdmin(ctx context.Context, e storage.Employee) (int64, error)
}

func SaveEmployeeAdmin(log *slog.Logger, creator EmployeeCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.SaveEmployeeAdmin"

		var employee storage.Employee
		if err := json.NewDecoder(r.Body).Decode(&employee); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		employee.FirstName = strings.TrimSpace(employee.FirstName)
		if employee.FirstName == "" || employee.Salary < 0 {
			http.Error(w, "firstName and a non-negative salary are required", http.StatusBadRequest)
			return
		}
		employee.PaymentPeriod = string(payroll.ParsePaymentPeriod(employee.PaymentPeriod))

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id, err := creator.CreateEmployeeAdmin(ctx, employee)
		if err != nil {
			log.Error("failed to create employee", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		employee.ID = id

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, employee)
	}
}
