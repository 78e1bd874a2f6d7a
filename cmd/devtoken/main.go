// Command devtoken mints a staff bearer token for local use against a
// memory-backed front desk. Production tokens come from the identity provider.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/diagnosis/hotel-frontdesk/pkg/auth"
	"github.com/diagnosis/hotel-frontdesk/pkg/config"
	"github.com/diagnosis/hotel-frontdesk/pkg/logger"
)

func main() {
	cfg := config.Load()

	role := flag.String("role", "attendant", "staff role: admin, owner or attendant")
	sub := flag.String("sub", "1", "staff user id (the token subject)")
	email := flag.String("email", "desk@frontdesk.local", "staff email")
	ttl := flag.Duration("ttl", 8*time.Hour, "token lifetime")
	flag.Parse()

	token, err := auth.NewAccessToken(*sub, *email, *role, cfg.Auth.Audience, cfg.Auth.JWTSecret, *ttl)
	if err != nil {
		logger.Error("Failed to sign token", "error", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
