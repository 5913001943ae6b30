// Command token-generator issues a bearer token for the deck API, signed
// with the configured auth.jwt_secret. Useful for local development.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/phrazzld/slidedeck/internal/config"
	"github.com/phrazzld/slidedeck/internal/service/auth"
)

func main() {
	subject := flag.String("subject", "", "subject recorded as the actor of document changes (required)")
	configPath := flag.String("config", "", "path to a YAML config file (default: ./config.yaml if present)")
	lifetime := flag.Int("lifetime", 0, "token lifetime in minutes (default: auth.token_lifetime_minutes)")
	flag.Parse()

	token, err := generate(*configPath, *subject, *lifetime)
	if err != nil {
		fmt.Fprintf(os.Stderr, "token-generator: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}

func generate(configPath, subject string, lifetimeMinutes int) (string, error) {
	if subject == "" {
		return "", auth.ErrEmptySubject
	}

	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return "", fmt.Errorf("failed to load configuration: %w", err)
	}
	if !cfg.Auth.Enabled() {
		return "", fmt.Errorf("auth.jwt_secret is not configured (set %s_AUTH_JWT_SECRET)", config.EnvPrefix)
	}
	if lifetimeMinutes > 0 {
		cfg.Auth.TokenLifetimeMinutes = lifetimeMinutes
	}

	svc, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return "", err
	}
	return svc.GenerateToken(context.Background(), subject)
}
