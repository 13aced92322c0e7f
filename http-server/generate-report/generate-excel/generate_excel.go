package generate_excel

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"agro-cost/internal/storage"
)

const dateLayout = "2006-01-02"

type ExcelGenerator interface {
	GenerateExcel(ctx context.Context, filter storage.WorkOrderFilter) ([]byte, error)
}

// GenerateReportExcel streams the work order cost report. Without from/to the
// current month up to today is exported.
func GenerateReportExcel(log *slog.Logger, gen ExcelGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.report.GenerateReportExcel"

		fromStr := r.URL.Query().Get("from")
		toStr := r.URL.Query().Get("to")
		phaseStr := r.URL.Query().Get("phase_id")

		now := time.Now()
		filter := storage.WorkOrderFilter{
			From: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		}

		if fromStr != "" {
			d, err := time.Parse(dateLayout, fromStr)
			if err != nil {
				http.Error(w, "invalid from date", http.StatusBadRequest)
				return
			}
			filter.From = d
		}

		if toStr != "" {
			d, err := time.Parse(dateLayout, toStr)
			if err != nil {
				http.Error(w, "invalid to date", http.StatusBadRequest)
				return
			}
			filter.To = d
		}

		if filter.To.Before(filter.From) {
			http.Error(w, "to date precedes from date", http.StatusBadRequest)
			return
		}

		if phaseStr != "" {
			id, err := strconv.ParseInt(phaseStr, 10, 64)
			if err != nil || id <= 0 {
				http.Error(w, "invalid phase_id", http.StatusBadRequest)
				return
			}
			filter.PhaseID = id
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		excelBytes, err := gen.GenerateExcel(ctx, filter)
		if err != nil {
			log.Error("failed to generate excel", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		fileName := fmt.Sprintf("WorkOrders_%s_%s.xlsx", filter.From.Format(dateLayout), filter.To.Format(dateLayout))

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		if _, err := w.Write(excelBytes); err != nil {
			log.Error("failed to write excel", slog.String("op", op), slog.String("error", err.Error()))
		}
	}
}
