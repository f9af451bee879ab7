// Package main runs the AdCP buy-side campaign lifecycle simulator.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	buysimcmd "github.com/adcontextprotocol/buysim/internal/cmd/buysim"
	"github.com/adcontextprotocol/buysim/internal/platform/config"
)

// main connects to a sales agent and runs the campaign lifecycle.
func main() {
	cfg, err := buysimcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix("[BUYSIM] ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := buysimcmd.Run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		config.Exitf("run simulation: %v", err)
	}
}
