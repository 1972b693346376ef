package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// NewRouter wires every endpoint onto a gorilla/mux router.
func NewRouter(service *RewardsService) *mux.Router {
	router := mux.NewRouter()
	router.Use(loggingMiddleware)

	router.HandleFunc("/health", service.handleHealth).Methods(http.MethodGet)

	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/scan", service.handleScan).Methods(http.MethodPost)
	apiRouter.HandleFunc("/rewards", service.handleGetRewards).Methods(http.MethodGet)
	apiRouter.HandleFunc("/rewards/redeem", service.handleRedeem).Methods(http.MethodPost)
	apiRouter.HandleFunc("/rewards/monthly-check", service.handleMonthlyCheck).Methods(http.MethodPost)
	apiRouter.HandleFunc("/rewards/monthly-check", service.handleMonthlyStatus).Methods(http.MethodGet)
	apiRouter.HandleFunc("/leaderboard", service.handleLeaderboard).Methods(http.MethodGet)

	return router
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		zap.L().Debug("Request handled",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}
