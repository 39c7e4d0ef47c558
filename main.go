package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	auth "github.com/00001120-alt/refrigerante/internal/auth"
	batch "github.com/00001120-alt/refrigerante/internal/calc/batch"
	importer "github.com/00001120-alt/refrigerante/internal/calc/importer"
	report "github.com/00001120-alt/refrigerante/internal/calc/report"
	sizing "github.com/00001120-alt/refrigerante/internal/calc/sizing"
	chart "github.com/00001120-alt/refrigerante/internal/chart"
	config "github.com/00001120-alt/refrigerante/internal/config"
	history "github.com/00001120-alt/refrigerante/internal/history"
	live "github.com/00001120-alt/refrigerante/internal/live"
	repo "github.com/00001120-alt/refrigerante/internal/repo"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*") // the API has no fixed domain yet
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, db *sql.DB, cfg config.Config) {
	userRepo := repo.NewPostgresDB(db)

	// Load TOKEN_KEY from environment
	tokenKey := os.Getenv("TOKEN_KEY")
	if tokenKey == "" {
		log.Fatal("TOKEN_KEY environment variable is not set")
	}

	authEnv := &auth.Authenv{JWTkey: []byte(tokenKey), Repo: userRepo}

	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")
	api.HandleFunc("/logout", authEnv.LogoutHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	sizingH := &sizing.Handler{}
	batchH := &batch.Handler{}
	importH := &importer.Handler{}
	reportH := &report.Handler{}
	chartH := &chart.Handler{}
	historyH := &history.Handler{Repo: userRepo, Limit: cfg.HistoryLimit}

	secureApi.HandleFunc("/tools/sizing/calc", sizingH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/sizing/refrigerants", sizingH.Refrigerants).Methods("GET")
	secureApi.HandleFunc("/tools/sizing/tubes", sizingH.Tubes).Methods("GET")
	secureApi.HandleFunc("/tools/sizing/batch", batchH.Sizing).Methods("POST")
	secureApi.HandleFunc("/tools/sizing/import", importH.Sizing).Methods("POST")
	secureApi.HandleFunc("/tools/report/pdf", reportH.Generate).Methods("POST")
	secureApi.HandleFunc("/tools/report/xlsx", reportH.Export).Methods("POST")
	secureApi.HandleFunc("/tools/sizing/chart", chartH.Generate).Methods("POST")

	secureApi.HandleFunc("/history", historyH.Save).Methods("POST")
	secureApi.HandleFunc("/history", historyH.List).Methods("GET")
	secureApi.HandleFunc("/history/{id:[0-9]+}", historyH.Get).Methods("GET")
	secureApi.HandleFunc("/history/{id:[0-9]+}", historyH.Delete).Methods("DELETE")

	liveServer := live.NewServer()
	mux.HandleFunc("/ws/sizing", liveServer.ServeWS)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found")
	}
	cfg := config.Load("conf/server.ini")

	db := auth.InitDB()
	defer db.Close()
	mux := mux.NewRouter()
	log.Info("Starting server on ", cfg.Addr)
	HandleList(mux, db, cfg)
	handler := CORS(mux)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if cfg.CertFile != "" && cfg.KeyFile != "" {
			err = server.ListenAndServeTLS(cfg.CertFile, cfg.KeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			log.Error("Server error: ", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received, closing active connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server shutdown: ", err)
	}
	log.Info("Server stopped")

	wg.Wait()
}
