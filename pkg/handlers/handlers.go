// Package handlers wires the per-resource HTTP handlers onto one chi router.
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sakib/coinledger/pkg/games"
	"github.com/sakib/coinledger/pkg/handlers/payments"
	"github.com/sakib/coinledger/pkg/handlers/reports"
	"github.com/sakib/coinledger/pkg/handlers/shop"
	"github.com/sakib/coinledger/pkg/handlers/users"
	"github.com/sakib/coinledger/pkg/handlers/wagers"
	"github.com/sakib/coinledger/pkg/middleware"
	paymentflow "github.com/sakib/coinledger/pkg/payments"
	shopflow "github.com/sakib/coinledger/pkg/shop"
	"github.com/sakib/coinledger/pkg/storage"
)

// Dependencies carries everything the router needs.
type Dependencies struct {
	Store          storage.ApiStore
	Payments       *paymentflow.Manager
	Games          *games.Manager
	Shop           *shopflow.Manager
	Logger         *slog.Logger
	MetricsEnabled bool
}

// NewRouter builds the chi router with all routes mounted.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewStructuredLogger(deps.Logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	if deps.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	usersHandler := users.NewUsersHandler(deps.Store)
	paymentsHandler := payments.NewPaymentsHandler(deps.Payments, deps.Store)
	wagersHandler := wagers.NewWagersHandler(deps.Games)
	shopHandler := shop.NewShopHandler(deps.Shop)
	reportsHandler := reports.NewReportsHandler(deps.Store, deps.Store)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", usersHandler.CreateUser)
		r.Get("/{id}", withUserID(usersHandler.GetUserById))
		r.Patch("/{id}", withUserID(usersHandler.UpdateUser))
		r.Post("/{id}/daily", withUserID(usersHandler.ClaimDaily))
		r.Get("/{id}/payments", withUserID(paymentsHandler.ListUserPayments))
	})

	r.Route("/payments", func(r chi.Router) {
		r.Get("/methods", paymentsHandler.ListMethods)
		r.Post("/deposits", paymentsHandler.RequestDeposit)
		r.Post("/withdrawals", paymentsHandler.RequestWithdraw)
		r.Get("/{id}", withPaymentID(paymentsHandler.GetPaymentById))
		r.Post("/{id}/confirm", withPaymentID(paymentsHandler.Confirm))
		r.Post("/{id}/reject", withPaymentID(paymentsHandler.Reject))
	})

	r.Post("/wagers/{game}", func(w http.ResponseWriter, r *http.Request) {
		wagersHandler.Play(w, r, chi.URLParam(r, "game"))
	})

	r.Route("/shop", func(r chi.Router) {
		r.Get("/items", shopHandler.ListItems)
		r.Post("/purchases", shopHandler.Buy)
	})

	r.Get("/transactions", reportsHandler.ListTransactions)
	r.Get("/logs", reportsHandler.ListLogs)
	r.Get("/stats", reportsHandler.GetStats)

	return r
}

// withUserID parses the {id} route parameter into the opaque integer user id.
func withUserID(fn func(http.ResponseWriter, *http.Request, int64)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "Invalid user id", http.StatusBadRequest)
			return
		}
		fn(w, r, id)
	}
}

func withPaymentID(fn func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fn(w, r, chi.URLParam(r, "id"))
	}
}
