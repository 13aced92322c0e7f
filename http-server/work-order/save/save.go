package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"agro-cost/http-server/apierr"
	"agro-cost/internal/storage"
)

type WorkOrderSaver interface {
	Save(ctx context.Context, dto storage.WorkOrder) (*storage.WorkOrder, error)
	Update(ctx context.Context, id int64, dto storage.WorkOrder) (*storage.WorkOrder, error)
}

func SaveWorkOrder(log *slog.Logger, saver WorkOrderSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.workorder.SaveWorkOrder"

		var req storage.WorkOrder
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		saved, err := saver.Save(ctx, req)
		if err != nil {
			apierr.Write(w, log, op, err)
			return
		}

		log.Info("work order saved", slog.Int64("id", saved.ID), slog.Float64("total_cost", saved.TotalCost))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, saved)
	}
}

func UpdateWorkOrder(log *slog.Logger, saver WorkOrderSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.workorder.UpdateWorkOrder"

		idStr := chi.URLParam(r, "id")
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil || id <= 0 {
			http.Error(w, "Invalid ID", http.StatusBadRequest)
			return
		}

		var req storage.WorkOrder
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		updated, err := saver.Update(ctx, id, req)
		if err != nil {
			apierr.Write(w, log, op, err)
			return
		}

		log.Info("work order updated", slog.Int64("id", id), slog.Float64("total_cost", updated.TotalCost))

		render.JSON(w, r, updated)
	}
}
