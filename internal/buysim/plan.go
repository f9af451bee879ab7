// Package buysim drives a simulated media-buy lifecycle against an AdCP
// sales agent: discovery, purchase, creative approval, flight monitoring,
// one mid-flight optimization cycle, and a final delivery report.
//
// All dates are simulated. The sequencer precomputes a calendar from the
// flight dates and passes each date explicitly to the remote service;
// nothing in this package depends on the wall clock.
package buysim

import (
	"errors"
	"time"

	"github.com/adcontextprotocol/buysim/internal/adcp"
)

// dateFormat is the ISO 8601 date layout used on the wire.
const dateFormat = "2006-01-02"

// Unknown substitutes for any field a failed or partial remote response
// left unset.
const Unknown = "unknown"

// CampaignPlan is the immutable input describing the buy. It is created
// once and never mutated; the optimization phase derives a widened overlay
// from Targeting without touching it.
type CampaignPlan struct {
	Brief       string
	ProductIDs  []string
	FlightStart time.Time
	FlightEnd   time.Time
	TotalBudget float64
	Targeting   adcp.TargetingOverlay
	PONumber    string
	Creatives   []adcp.Creative
}

// Validate checks the invariants a plan must satisfy before a run starts.
func (p CampaignPlan) Validate() error {
	if p.FlightEnd.Before(p.FlightStart) {
		return errors.New("flight end precedes flight start")
	}
	if p.TotalBudget <= 0 {
		return errors.New("total budget must be positive")
	}
	if len(p.ProductIDs) == 0 {
		return errors.New("at least one product is required")
	}
	return nil
}
