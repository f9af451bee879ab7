// Package buysim parses simulator command flags, connects to a sales agent
// over MCP, and runs the campaign lifecycle.
package buysim

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os/exec"
	"strings"
	"time"

	"github.com/adcontextprotocol/buysim/internal/adcp"
	sim "github.com/adcontextprotocol/buysim/internal/buysim"
	"github.com/adcontextprotocol/buysim/internal/platform/config"
	"github.com/adcontextprotocol/buysim/internal/platform/otel"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	clientName    = "buysim"
	clientVersion = "0.1.0"
	dateFormat    = "2006-01-02"
)

// Config holds simulator command configuration.
type Config struct {
	AgentURL     string        `env:"BUYSIM_AGENT_URL"`
	AgentCommand string        `env:"BUYSIM_AGENT_CMD"    envDefault:"salesagent"`
	Brief        string        `env:"BUYSIM_BRIEF"        envDefault:"Looking for video and audio inventory for pet food campaign"`
	ProductID    string        `env:"BUYSIM_PRODUCT_ID"   envDefault:"prod_video_guaranteed_sports"`
	Budget       float64       `env:"BUYSIM_TOTAL_BUDGET" envDefault:"50000"`
	FlightStart  string        `env:"BUYSIM_FLIGHT_START" envDefault:"2025-08-01"`
	FlightEnd    string        `env:"BUYSIM_FLIGHT_END"   envDefault:"2025-08-15"`
	PONumber     string        `env:"BUYSIM_PO_NUMBER"    envDefault:"PO-ACME-2025-08"`
	DayDelay     time.Duration `env:"BUYSIM_DAY_DELAY"    envDefault:"0s"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.AgentURL, "agent-url", cfg.AgentURL, "sales agent HTTP endpoint (empty = spawn agent-cmd over stdio)")
	fs.StringVar(&cfg.AgentCommand, "agent-cmd", cfg.AgentCommand, "sales agent command for stdio transport")
	fs.StringVar(&cfg.Brief, "brief", cfg.Brief, "campaign brief for product discovery")
	fs.StringVar(&cfg.ProductID, "product", cfg.ProductID, "product to buy")
	fs.Float64Var(&cfg.Budget, "budget", cfg.Budget, "total campaign budget")
	fs.StringVar(&cfg.FlightStart, "flight-start", cfg.FlightStart, "flight start date (YYYY-MM-DD)")
	fs.StringVar(&cfg.FlightEnd, "flight-end", cfg.FlightEnd, "flight end date (YYYY-MM-DD)")
	fs.StringVar(&cfg.PONumber, "po-number", cfg.PONumber, "purchase order number")
	fs.DurationVar(&cfg.DayDelay, "day-delay", cfg.DayDelay, "cosmetic pause per simulated day")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// CampaignPlan builds the lifecycle plan from the configuration.
func CampaignPlan(cfg Config) (sim.CampaignPlan, error) {
	flightStart, err := time.Parse(dateFormat, cfg.FlightStart)
	if err != nil {
		return sim.CampaignPlan{}, fmt.Errorf("parse flight start date: %w", err)
	}
	flightEnd, err := time.Parse(dateFormat, cfg.FlightEnd)
	if err != nil {
		return sim.CampaignPlan{}, fmt.Errorf("parse flight end date: %w", err)
	}

	return sim.CampaignPlan{
		Brief:       cfg.Brief,
		ProductIDs:  []string{cfg.ProductID},
		FlightStart: flightStart,
		FlightEnd:   flightEnd,
		TotalBudget: cfg.Budget,
		Targeting: adcp.TargetingOverlay{
			Geography:                []string{"USA-CA", "USA-NY"},
			ContentCategoriesExclude: []string{"controversial", "politics"},
		},
		PONumber: cfg.PONumber,
		Creatives: []adcp.Creative{
			{
				CreativeID: "cr_dog_30s_v1",
				FormatID:   "fmt_video_30s",
				ContentURI: "https://cdn.example.com/vast/dog_chow_30s_v1.xml",
			},
			{
				CreativeID: "cr_cat_30s_v1",
				FormatID:   "fmt_video_30s",
				ContentURI: "https://cdn.example.com/vast/cat_chow_30s_v1.xml",
			},
		},
	}, nil
}

// Run connects to the sales agent and drives the full campaign lifecycle,
// writing progress to out and degraded-call reports to errOut.
func Run(ctx context.Context, cfg Config, out, errOut io.Writer) error {
	shutdown, err := otel.Setup(ctx, "buysim")
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

	transport, err := agentTransport(ctx, cfg)
	if err != nil {
		return err
	}

	client := mcp.NewClient(&mcp.Implementation{Name: clientName, Version: clientVersion}, nil)
	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return fmt.Errorf("connect to sales agent: %w", err)
	}
	defer session.Close()

	return RunCampaign(ctx, cfg, session, out, errOut)
}

// RunCampaign drives the lifecycle over an established MCP session.
func RunCampaign(ctx context.Context, cfg Config, session *mcp.ClientSession, out, errOut io.Writer) error {
	plan, err := CampaignPlan(cfg)
	if err != nil {
		return err
	}

	gateway := sim.NewMCPGateway(session, errOut)
	observer := sim.NewConsoleObserver(out, cfg.DayDelay)

	sequencer, err := sim.NewSequencer(gateway, plan, observer)
	if err != nil {
		return err
	}
	if _, err := sequencer.Run(ctx); err != nil {
		return fmt.Errorf("run campaign: %w", err)
	}
	return nil
}

// agentTransport selects HTTP when an endpoint is configured, otherwise
// spawns the agent command over stdio.
func agentTransport(ctx context.Context, cfg Config) (mcp.Transport, error) {
	if strings.TrimSpace(cfg.AgentURL) != "" {
		return &mcp.StreamableClientTransport{Endpoint: cfg.AgentURL}, nil
	}

	parts := strings.Fields(cfg.AgentCommand)
	if len(parts) == 0 {
		return nil, fmt.Errorf("sales agent command is required")
	}
	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)
	return &mcp.CommandTransport{Command: cmd}, nil
}
