package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/rs/cors"

	getadmin "agro-cost/http-server/admin/get"
	saveadmin "agro-cost/http-server/admin/save"
	upadmin "agro-cost/http-server/admin/update"
	generate_excel "agro-cost/http-server/generate-report/generate-excel"
	calcpayroll "agro-cost/http-server/payroll/calculate"
	savepayroll "agro-cost/http-server/payroll/save"
	calcworkorder "agro-cost/http-server/work-order/calculate"
	getworkorder "agro-cost/http-server/work-order/get"
	saveworkorder "agro-cost/http-server/work-order/save"
	"agro-cost/internal/config"
	"agro-cost/internal/middleware/auth"
	"agro-cost/internal/service/costing"
	generate_excel_service "agro-cost/internal/service/generate-excel"
	"agro-cost/internal/service/payroll"
)

type Services struct {
	WorkOrders *costing.WorkOrderService
	Payrolls   *payroll.PayrollService
	Reports    *generate_excel_service.GenerateExcelService
}

// AdminStorage is the storage surface the admin routes and health check need.
type AdminStorage interface {
	getadmin.AdminReferenceProvider
	upadmin.AdminReferenceUpdater
	saveadmin.EmployeeCreator
	Ping(ctx context.Context) error
}

func routes(cfg config.Config, log *slog.Logger, storage AdminStorage, services Services) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Get("/healthz", healthz(log, storage))

	router.Route("/api/WorkOrders", func(r chi.Router) {
		r.Post("/calculate", calcworkorder.CalculateWorkOrder(log, services.WorkOrders))
		r.Post("/", saveworkorder.SaveWorkOrder(log, services.WorkOrders))
		r.Put("/{id}", saveworkorder.UpdateWorkOrder(log, services.WorkOrders))
		r.Get("/{id}", getworkorder.GetWorkOrder(log, services.WorkOrders))
	})

	router.Route("/api/Payrolls", func(r chi.Router) {
		r.Post("/calculate", calcpayroll.CalculatePayroll(log, services.Payrolls))
		r.Post("/", savepayroll.SavePayroll(log, services.Payrolls))
	})

	router.Get("/api/report/excel", generate_excel.GenerateReportExcel(log, services.Reports))

	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))

	adminRouter.Get("/activities", getadmin.GetActivitiesAdmin(log, storage))
	adminRouter.Put("/activities/update", upadmin.UpdateActivitiesAdmin(log, storage))
	adminRouter.Get("/employees", getadmin.GetEmployeesAdmin(log, storage))
	adminRouter.Put("/employees/update", upadmin.UpdateEmployeesAdmin(log, storage))
	adminRouter.Post("/employees/save", saveadmin.SaveEmployeeAdmin(log, storage))

	router.Mount("/api/admin", adminRouter)

	return router
}

func healthz(log *slog.Logger, storage AdminStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := storage.Ping(ctx); err != nil {
			log.Error("health check failed", slog.String("error", err.Error()))
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, map[string]string{"status": "unavailable"})
			return
		}

		render.JSON(w, r, map[string]string{"status": "ok"})
	}
}
