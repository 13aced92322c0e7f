package get

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"agro-cost/http-server/apierr"
	"agro-cost/internal/storage"
)

type WorkOrderProvider interface {
	Get(ctx context.Context, id int64) (*storage.WorkOrder, error)
}

func GetWorkOrder(log *slog.Logger, provider WorkOrderProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.workorder.GetWorkOrder"

		idStr := chi.URLParam(r, "id")
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil || id <= 0 {
			http.Error(w, "Invalid ID", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		order, err := provider.Get(ctx, id)
		if err != nil {
			apierr.Write(w, log, op, err)
			return
		}

		render.JSON(w, r, order)
	}
}
