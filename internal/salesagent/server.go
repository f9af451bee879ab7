package salesagent

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/adcontextprotocol/buysim/internal/adcp"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "AdCP Sales Agent"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP runs MCP over streamable HTTP for remote clients.
	TransportHTTP TransportKind = "http"
)

// Config configures the sales agent server.
type Config struct {
	StoragePath    string
	Transport      TransportKind
	HTTPAddr       string
	ApprovalChecks int
}

// Server hosts the sales agent MCP server.
type Server struct {
	mcpServer *mcp.Server
	store     *Store
}

// New registers the seven AdCP tools against the store.
func New(store *Store, approvalChecks int) *Server {
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	service := NewService(store, approvalChecks)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        adcp.ToolDiscoverProducts,
		Description: "Lists available advertising products for a campaign brief",
	}, service.discoverProducts)
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        adcp.ToolCreateMediaBuy,
		Description: "Creates a media buy for the given products, flight and budget",
	}, service.createMediaBuy)
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        adcp.ToolSubmitCreatives,
		Description: "Submits creative assets for review against a media buy",
	}, service.submitCreatives)
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        adcp.ToolCheckCreativeStatus,
		Description: "Checks the review status of submitted creatives",
	}, service.checkCreativeStatus)
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        adcp.ToolGetMediaBuyDelivery,
		Description: "Reports delivery metrics for a media buy as of a given day",
	}, service.getMediaBuyDelivery)
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        adcp.ToolUpdatePerformanceIndex,
		Description: "Records buyer performance feedback for a media buy",
	}, service.updatePerformanceIndex)
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        adcp.ToolUpdateMediaBuy,
		Description: "Amends the targeting overlay of a media buy",
	}, service.updateMediaBuy)

	return &Server{mcpServer: mcpServer, store: store}
}

// Serve runs the MCP server over the provided transport until it stops or
// the context ends. Context cancellation is a clean shutdown, not an error.
func (s *Server) Serve(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// MCPServer exposes the underlying server for in-process transports.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcpServer
}

// Run is the service entrypoint and blocks until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	store, err := Open(cfg.StoragePath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	if err := store.SeedProducts(ctx, DefaultCatalog()); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	server := New(store, cfg.ApprovalChecks)

	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}
	switch cfg.Transport {
	case TransportStdio:
		return server.Serve(ctx, &mcp.StdioTransport{})
	case TransportHTTP:
		return serveHTTP(ctx, cfg.HTTPAddr, server)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// serveHTTP exposes the MCP server over streamable HTTP, bound to localhost
// by default, and shuts down cleanly on context cancellation.
func serveHTTP(ctx context.Context, addr string, server *Server) error {
	if addr == "" {
		addr = "localhost:8090"
	}
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server.mcpServer
	}, nil)

	httpServer := &http.Server{Addr: addr, Handler: handler}
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown HTTP server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve HTTP: %w", err)
	}
}
