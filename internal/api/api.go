package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/askelund/fintrack/internal/auth"
	"github.com/askelund/fintrack/internal/config"
	"github.com/askelund/fintrack/internal/domain/models"
	"github.com/askelund/fintrack/internal/lib/jwt"
	"github.com/gorilla/mux"
)

// LedgerStore is the reporting catalogue. Every scoped method takes the
// userID resolved by the session gate; none accept a caller-supplied one.
type LedgerStore interface {
	ExpenseTypes(ctx context.Context) ([]models.ExpenseType, error)
	CreateTransaction(ctx context.Context, tx models.NewTransaction) (*models.Transaction, error)
	TimeSeries(ctx context.Context, userID string) ([]models.TimeSeriesRow, error)
	IncomeExpenses(ctx context.Context, userID string) ([]models.FinancialDetailRow, error)
	Cashflow(ctx context.Context, userID string) ([]models.CashflowRow, error)
	FinancialOverview(ctx context.Context, userID string) ([]models.OverviewRow, error)
	FinancialDetails(ctx context.Context, userID string) ([]models.FinancialDetailRow, error)
	ExpenseTable(ctx context.Context, userID string) ([]models.ExpenseRow, error)
}

type contextKey string

const userIDKey contextKey = "userId"

type APIServer struct {
	config  *config.Config
	logger  *slog.Logger
	server  *http.Server
	storage LedgerStore
	auth    *auth.Gateway
	secret  []byte
}

func New(config *config.Config, logger *slog.Logger, storage LedgerStore, gateway *auth.Gateway, secret []byte) *APIServer {
	return &APIServer{
		config: config,
		logger: logger,
		server: &http.Server{
			Addr: config.ApiHost + ":" + strconv.Itoa(config.ApiPort),
		},
		storage: storage,
		auth:    gateway,
		secret:  secret,
	}
}

func (s *APIServer) Start() error {
	s.logger.Info("Starting server", slog.String("port", strconv.Itoa(s.config.ApiPort)))

	s.configureRouter()

	return s.server.ListenAndServe()
}

func (s *APIServer) MustStart() {
	err := s.Start()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic("Failed to start server: " + err.Error())
	}
}

func (s *APIServer) Stop(ctx context.Context) error {
	defer s.logger.Info("Server successfully stopped")
	return s.server.Shutdown(ctx)
}

func (s *APIServer) configureRouter() {
	router := mux.NewRouter()

	router.HandleFunc("/auth/signup", s.signupHandler()).Methods("POST")
	router.HandleFunc("/auth/login", s.loginHandler()).Methods("POST")

	router.HandleFunc("/feed/expense-categories", s.expenseCategoriesHandler()).Methods("GET")
	router.HandleFunc("/feed/transaction", s.authenticate(s.createTransactionHandler())).Methods("POST")
	router.HandleFunc("/feed/timeseries", s.authenticate(s.timeSeriesHandler())).Methods("GET")
	router.HandleFunc("/feed/income-expenses", s.authenticate(s.incomeExpensesHandler())).Methods("GET")
	router.HandleFunc("/feed/casflow", s.authenticate(s.cashflowHandler())).Methods("GET")
	router.HandleFunc("/feed/financial-overview", s.authenticate(s.financialOverviewHandler())).Methods("GET")
	router.HandleFunc("/feed/financial-details", s.authenticate(s.financialDetailsHandler())).Methods("GET")
	router.HandleFunc("/feed/list-expenses", s.authenticate(s.expenseTableHandler())).Methods("GET")

	s.server.Handler = corsMiddleware(router)
}

// authenticate is the session gate: it resolves the caller's userID from the
// bearer token and is the only place tenant identity enters a request.
func (s *APIServer) authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenHeader := r.Header.Get("Authorization")
		if tokenHeader == "" {
			s.respondMessage(w, http.StatusUnauthorized, "Not authenticated.")
			return
		}

		parts := strings.Split(tokenHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			s.respondMessage(w, http.StatusUnauthorized, "Not authenticated.")
			return
		}

		claims, err := jwt.ParseToken(parts[1], s.secret)
		if err != nil {
			s.respondMessage(w, http.StatusUnauthorized, "Invalid token.")
			return
		}

		if claims.UserID == "" {
			s.respondMessage(w, http.StatusUnauthorized, "Not authenticated.")
			return
		}

		r = r.WithContext(context.WithValue(r.Context(), userIDKey, claims.UserID))
		next(w, r)
	}
}

func userIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET,HEAD,PUT,PATCH,POST,DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *APIServer) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("Failed to encode response", "error", err)
	}
}

func (s *APIServer) respondMessage(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"message": message})
}

func (s *APIServer) respondValidation(w http.ResponseWriter, errs []string) {
	s.respondJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"message": "Validation failed.",
		"errors":  errs,
	})
}

// respondStoreError logs the full error and returns a genericized message.
func (s *APIServer) respondStoreError(w http.ResponseWriter, op string, err error) {
	s.logger.Error("Store call failed", slog.String("op", op), "error", err)
	s.respondMessage(w, http.StatusInternalServerError, "An internal server error occurred.")
}
