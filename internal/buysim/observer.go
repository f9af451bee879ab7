package buysim

import (
	"time"

	"github.com/adcontextprotocol/buysim/internal/adcp"
)

// Phase names the ordered lifecycle stages.
type Phase string

const (
	PhasePlanning           Phase = "planning"
	PhaseBuying             Phase = "buying"
	PhaseCreativeSubmission Phase = "creative-submission"
	PhasePreFlight          Phase = "pre-flight"
	PhaseInFlight           Phase = "in-flight"
	PhaseOptimization       Phase = "optimization"
	PhaseCompletion         Phase = "completion"
)

// Observer receives progress events from a run. Implementations exist for
// rendering and pacing only and must not influence outcomes; the sequencer
// behaves identically under NopObserver.
type Observer interface {
	PhaseStarted(phase Phase)
	DayAdvanced(date time.Time, activity string)
	ProductsDiscovered(products []adcp.Product)
	CreativesChecked(statuses []adcp.CreativeStatus, converged bool)
	SnapshotTaken(snapshot DeliverySnapshot)
	TrendReady(series []DeliverySnapshot)
	FeedbackSent(feedback adcp.ProductPerformance, acknowledged bool)
	ActionDecided(action OptimizationAction, applied bool)
	ReportReady(report CampaignReport)
}

// NopObserver discards all events.
type NopObserver struct{}

func (NopObserver) PhaseStarted(Phase)                              {}
func (NopObserver) DayAdvanced(time.Time, string)                   {}
func (NopObserver) ProductsDiscovered([]adcp.Product)               {}
func (NopObserver) CreativesChecked([]adcp.CreativeStatus, bool)    {}
func (NopObserver) SnapshotTaken(DeliverySnapshot)                  {}
func (NopObserver) TrendReady([]DeliverySnapshot)                   {}
func (NopObserver) FeedbackSent(adcp.ProductPerformance, bool)      {}
func (NopObserver) ActionDecided(OptimizationAction, bool)          {}
func (NopObserver) ReportReady(CampaignReport)                      {}
