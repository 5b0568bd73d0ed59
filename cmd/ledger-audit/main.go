// cmd/ledger-audit/main.go
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	app "mood-wallet/internal"
)

// ledger-audit checks that every user's latest running total equals the sum
// of their ledger deltas. It exits 1 if any user fails the check.
func main() {
	userID := flag.Int64("user", 0, "audit a single user id instead of every user")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	application := app.NewApplication()
	if err := application.InitializeCore(ctx); err != nil {
		application.Logger.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}
	defer func() { _ = application.Shutdown(context.Background()) }()

	if *userID > 0 {
		if err := application.WalletService.Audit(ctx, *userID); err != nil {
			application.Logger.Error("Ledger audit failed", "user_id", *userID, "error", err)
			exit(application, 1)
		}
		application.Logger.Info("Ledger audit passed", "user_id", *userID)
		return
	}

	checked, failed, err := application.WalletService.AuditAll(ctx)
	if err != nil {
		application.Logger.Error("Ledger audit aborted", "checked", checked, "error", err)
		exit(application, 1)
	}
	if len(failed) > 0 {
		application.Logger.Error("Ledger audit found violations", "checked", checked, "failed_users", failed)
		exit(application, 1)
	}
	application.Logger.Info("Ledger audit passed", "checked", checked)
}

// exit closes the database before exiting with code.
func exit(application *app.Application, code int) {
	_ = application.Shutdown(context.Background())
	os.Exit(code)
}
