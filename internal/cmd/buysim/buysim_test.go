package buysim

import (
	"context"
	"flag"
	"strings"
	"testing"
	"time"

	agent "github.com/adcontextprotocol/buysim/internal/salesagent"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("buysim", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.AgentCommand != "salesagent" {
		t.Fatalf("expected default agent command, got %q", cfg.AgentCommand)
	}
	if cfg.Budget != 50000 {
		t.Fatalf("expected default budget 50000, got %v", cfg.Budget)
	}
	if cfg.FlightStart != "2025-08-01" || cfg.FlightEnd != "2025-08-15" {
		t.Fatalf("expected default flight window, got %q..%q", cfg.FlightStart, cfg.FlightEnd)
	}
	if cfg.DayDelay != 0 {
		t.Fatalf("expected no default delay, got %v", cfg.DayDelay)
	}
}

func TestParseConfigFlagOverrides(t *testing.T) {
	fs := flag.NewFlagSet("buysim", flag.ContinueOnError)
	args := []string{
		"-agent-url", "http://localhost:8090/mcp",
		"-budget", "25000",
		"-flight-start", "2025-09-01",
		"-flight-end", "2025-09-30",
		"-day-delay", "100ms",
	}
	cfg, err := ParseConfig(fs, args)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.AgentURL != "http://localhost:8090/mcp" {
		t.Fatalf("expected flag agent url, got %q", cfg.AgentURL)
	}
	if cfg.Budget != 25000 {
		t.Fatalf("expected flag budget, got %v", cfg.Budget)
	}
	if cfg.DayDelay != 100*time.Millisecond {
		t.Fatalf("expected flag delay, got %v", cfg.DayDelay)
	}
}

func TestCampaignPlanRejectsBadDates(t *testing.T) {
	cfg := Config{FlightStart: "not-a-date", FlightEnd: "2025-08-15"}
	if _, err := CampaignPlan(cfg); err == nil {
		t.Fatal("expected error for bad flight start")
	}

	cfg = Config{FlightStart: "2025-08-01", FlightEnd: "August 15"}
	if _, err := CampaignPlan(cfg); err == nil {
		t.Fatal("expected error for bad flight end")
	}
}

func TestAgentTransportSelection(t *testing.T) {
	transport, err := agentTransport(context.Background(), Config{AgentURL: "http://localhost:8090/mcp"})
	if err != nil {
		t.Fatalf("agent transport: %v", err)
	}
	if _, ok := transport.(*mcp.StreamableClientTransport); !ok {
		t.Fatalf("expected HTTP transport, got %T", transport)
	}

	transport, err = agentTransport(context.Background(), Config{AgentCommand: "salesagent -db /tmp/agent.db"})
	if err != nil {
		t.Fatalf("agent transport: %v", err)
	}
	if _, ok := transport.(*mcp.CommandTransport); !ok {
		t.Fatalf("expected command transport, got %T", transport)
	}

	if _, err := agentTransport(context.Background(), Config{}); err == nil {
		t.Fatal("expected error for empty agent command")
	}
}

// TestRunCampaignAgainstAgent drives the full lifecycle against the stub
// sales agent over in-memory transports.
func TestRunCampaignAgainstAgent(t *testing.T) {
	store, err := agent.OpenInMemory()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()
	if err := store.SeedProducts(context.Background(), agent.DefaultCatalog()); err != nil {
		t.Fatalf("seed products: %v", err)
	}

	server := agent.New(store, 1)
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	serveCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(serveCtx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: clientName, Version: clientVersion}, nil)
	connectCtx, connectCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer connectCancel()
	session, err := client.Connect(connectCtx, clientTransport, nil)
	if err != nil {
		t.Fatalf("connect client: %v", err)
	}
	defer session.Close()

	fs := flag.NewFlagSet("buysim", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}

	var out, errOut strings.Builder
	if err := RunCampaign(context.Background(), cfg, session, &out, &errOut); err != nil {
		t.Fatalf("run campaign: %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"==== Phase: planning ====",
		"==== Phase: buying ====",
		"==== Phase: creative-submission ====",
		"==== Phase: pre-flight ====",
		"==== Phase: in-flight ====",
		"==== Phase: optimization ====",
		"==== Phase: completion ====",
		"prod_video_guaranteed_sports",
		"all creatives approved",
		"final campaign report",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %q in output:\n%s", want, text)
		}
	}
	if errOut.Len() != 0 {
		t.Fatalf("expected no degraded calls, got %q", errOut.String())
	}

	cancel()
	select {
	case err := <-serveErr:
		if err != nil {
			t.Fatalf("serve returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("serve did not stop after cancel")
	}
}
