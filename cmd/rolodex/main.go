// ABOUTME: Entry point for the rolodex contact-management server
// ABOUTME: Wires config, store, services, and the HTTP API together

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"

	"github.com/2389/rolodex/internal/api"
	"github.com/2389/rolodex/internal/auth"
	"github.com/2389/rolodex/internal/config"
	"github.com/2389/rolodex/internal/contacts"
	"github.com/2389/rolodex/internal/store"
	"github.com/2389/rolodex/internal/users"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
           _           _
  _ __ ___ | | ___   __| | _____  __
 | '__/ _ \| |/ _ \ / _' |/ _ \ \/ /
 | | | (_) | | (_) | (_| |  __/>  <
 |_|  \___/|_|\___/ \__,_|\___/_/\_\
`

// getConfigPath returns the path to the rolodex config file.
// Priority: ROLODEX_CONFIG env var > XDG_CONFIG_HOME/rolodex/rolodex.yaml > ~/.config/rolodex/rolodex.yaml
func getConfigPath() string {
	if envPath := os.Getenv("ROLODEX_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "rolodex.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "rolodex", "rolodex.yaml")
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: rolodex <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  serve     Start the contact server")
		fmt.Println("  health    Check server health")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx)
	case "health":
		err = runHealth(ctx)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context) error {
	configPath := getConfigPath()

	// Print banner
	cyan := color.New(color.FgCyan)
	cyan.Print(banner)

	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := setupLogger(cfg.Logging)
	slog.SetDefault(logger)

	green := color.New(color.FgGreen)
	green.Print("    ▶ ")
	fmt.Printf("Config:    %s\n", configPath)
	green.Print("    ▶ ")
	fmt.Printf("HTTP:      %s\n", cfg.Server.HTTPAddr)
	green.Print("    ▶ ")
	fmt.Printf("Database:  %s\n", cfg.Database.Path)
	fmt.Println()

	logger.Info("starting rolodex",
		"config", configPath,
		"http_addr", cfg.Server.HTTPAddr,
	)

	st, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer func() { _ = st.Close() }()

	server := api.NewServer(api.Config{
		Addr:          cfg.Server.HTTPAddr,
		Authenticator: auth.NewAuthenticator(st),
		Sessions:      auth.NewSessionService(st, cfg.Auth.TokenTTL),
		Users:         users.NewService(st),
		Contacts:      contacts.NewService(st),
	})

	return server.Run(ctx)
}

func runHealth(ctx context.Context) error {
	configPath := getConfigPath()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	url := fmt.Sprintf("http://%s/health", cfg.Server.HTTPAddr)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy: status %d", resp.StatusCode)
	}

	fmt.Println("healthy")
	return nil
}
