// cmd/issue-token/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"mood-wallet/internal/api/auth"
	"mood-wallet/internal/config"
	"mood-wallet/internal/util"
)

// issue-token prints a bearer token for -user signed with JWT_SECRET, for
// operators and local testing against the API.
func main() {
	userID := flag.Int64("user", 0, "user id to put in the token subject")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	logger := util.GetLogger()
	if *userID <= 0 || *ttl <= 0 {
		logger.Error("Invalid flags", "user", *userID, "ttl", ttl.String())
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	token, err := auth.IssueToken([]byte(cfg.JWTSecret), *userID, *ttl)
	if err != nil {
		logger.Error("Failed to issue token", "user_id", *userID, "error", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
