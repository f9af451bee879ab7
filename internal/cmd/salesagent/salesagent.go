// Package salesagent parses sales agent command flags and selects stdio or
// HTTP transport.
package salesagent

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/adcontextprotocol/buysim/internal/platform/config"
	"github.com/adcontextprotocol/buysim/internal/platform/otel"
	agent "github.com/adcontextprotocol/buysim/internal/salesagent"
)

// Config holds sales agent command configuration.
type Config struct {
	StoragePath    string `env:"BUYSIM_AGENT_DB_PATH"         envDefault:"salesagent.db"`
	HTTPAddr       string `env:"BUYSIM_AGENT_HTTP_ADDR"       envDefault:"localhost:8090"`
	Transport      string `env:"BUYSIM_AGENT_TRANSPORT"       envDefault:"stdio"`
	ApprovalChecks int    `env:"BUYSIM_AGENT_APPROVAL_CHECKS" envDefault:"1"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.StoragePath, "db", cfg.StoragePath, "SQLite database path")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.IntVar(&cfg.ApprovalChecks, "approval-checks", cfg.ApprovalChecks, "status checks before a creative is approved")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the sales agent MCP server.
func Run(ctx context.Context, cfg Config) error {
	shutdown, err := otel.Setup(ctx, "salesagent")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	return agent.Run(ctx, agent.Config{
		StoragePath:    cfg.StoragePath,
		Transport:      agent.TransportKind(cfg.Transport),
		HTTPAddr:       cfg.HTTPAddr,
		ApprovalChecks: cfg.ApprovalChecks,
	})
}
