package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/iconnecthq/iconnect/internal/account"
	accountStore "github.com/iconnecthq/iconnect/internal/account/store"
	"github.com/iconnecthq/iconnect/internal/auth"
	"github.com/iconnecthq/iconnect/internal/catalog"
	catalogStore "github.com/iconnecthq/iconnect/internal/catalog/store"
	"github.com/iconnecthq/iconnect/internal/config"
	"github.com/iconnecthq/iconnect/internal/database"
	iconnectHttp "github.com/iconnecthq/iconnect/internal/http"
	accountHandler "github.com/iconnecthq/iconnect/internal/http/account"
	catalogHandler "github.com/iconnecthq/iconnect/internal/http/catalog"
	leadHandler "github.com/iconnecthq/iconnect/internal/http/lead"
	ledgerHandler "github.com/iconnecthq/iconnect/internal/http/ledger"
	requestHandler "github.com/iconnecthq/iconnect/internal/http/request"
	"github.com/iconnecthq/iconnect/internal/lead"
	leadStore "github.com/iconnecthq/iconnect/internal/lead/store"
	"github.com/iconnecthq/iconnect/internal/ledger"
	ledgerStore "github.com/iconnecthq/iconnect/internal/ledger/store"
	"github.com/iconnecthq/iconnect/internal/notify"
	"github.com/iconnecthq/iconnect/internal/request"
	requestStore "github.com/iconnecthq/iconnect/internal/request/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		notifier       = notify.New(notify.LogMailer{})
		requestService = request.NewService(requestStore.New(db), notifier)
		ledgerService  = ledger.NewService(ledgerStore.New(db), requestService)
		accountService = account.NewService(accountStore.New(db))
		leadService    = lead.NewService(leadStore.New(db))
		catalogService = catalog.NewService(catalogStore.New(db))
	)

	var (
		ledgerH  = ledgerHandler.NewHandler(ledgerService)
		requestH = requestHandler.NewHandler(requestService)
		accountH = accountHandler.NewHandler(accountService)
		leadH    = leadHandler.NewHandler(leadService)
		catalogH = catalogHandler.NewHandler(catalogService)
	)

	verifier := auth.NewVerifier(cfg.Auth.JWTSecret)

	router := iconnectHttp.New(verifier, cfg.Server.CORSOrigins,
		ledgerH, requestH, accountH, leadH, catalogH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
