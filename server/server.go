package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/brasas-burger/zapbot/bot"
	"github.com/brasas-burger/zapbot/handlers"
	"github.com/brasas-burger/zapbot/middlewares"
)

type Server struct {
	Router *mux.Router
	server *http.Server
}

const (
	readTimeout       = 5 * time.Minute
	readHeaderTimeout = 30 * time.Second
	writeTimeout      = 5 * time.Minute
)

func SetupRoutes(orc *bot.Orchestrator) *Server {
	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, `{"alive": true}`)
	}).Methods("GET")
	router.HandleFunc("/test-db", handlers.TestDB).Methods("GET")

	// UltraMsg posts every inbound event here
	router.HandleFunc("/", handlers.Webhook(orc)).Methods("POST")

	router.HandleFunc("/register", handlers.RegisterStaff).Methods("POST")
	router.HandleFunc("/login", handlers.Login).Methods("POST")
	router.HandleFunc("/refresh", handlers.RefreshToken).Methods("POST")

	// staff only
	admin := router.PathPrefix("/admin").Subrouter()
	admin.Use(middlewares.AuthMiddleware)

	admin.HandleFunc("/menu", handlers.ListMenuItems).Methods("GET")
	admin.HandleFunc("/menu", handlers.CreateMenuItem).Methods("POST")
	admin.HandleFunc("/menu/{id}/availability", handlers.SetMenuItemAvailability).Methods("PATCH")

	return &Server{
		Router: router,
	}
}

func (svr *Server) Run(port string) error {
	svr.server = &http.Server{
		Addr:              port,
		Handler:           svr.Router,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}
	return svr.server.ListenAndServe()
}

func (svr *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return svr.server.Shutdown(ctx)
}
