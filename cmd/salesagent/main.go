// Package main runs the stub AdCP sales agent MCP server.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	salesagentcmd "github.com/adcontextprotocol/buysim/internal/cmd/salesagent"
)

// main starts the sales agent on stdio or HTTP.
func main() {
	cfg, err := salesagentcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[SALES-AGENT] ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := salesagentcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve sales agent: %v", err)
	}
}
