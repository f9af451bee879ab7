package buysim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adcontextprotocol/buysim/internal/adcp"
)

// ErrNoMediaBuy marks the sole fatal failure: buy creation returned no
// media buy identifier. Every other remote failure degrades to unknown
// values and the run continues.
var ErrNoMediaBuy = errors.New("media buy creation returned no media_buy_id")

// monitoringActivities label the in-flight reads, index-aligned with the
// calendar's monitoring dates.
var monitoringActivities = []string{
	"campaign launch day",
	"early performance check",
	"mid-flight review",
	"performance analysis",
}

// Sequencer runs the seven lifecycle phases in order: planning, buying,
// creative submission, pre-flight, in-flight, optimization, completion.
// Phases never repeat and never run out of order. All mutable run state
// (media buy id, approval registry, delivery series) is owned by the
// sequencer instance and its components; nothing is shared across runs.
type Sequencer struct {
	gateway Gateway
	plan    CampaignPlan
	cal     Calendar
	obs     Observer

	mediaBuyID string
	poller     *ApprovalPoller
	monitor    *DeliveryMonitor
}

// NewSequencer validates the plan and prepares a run.
func NewSequencer(gateway Gateway, plan CampaignPlan, obs Observer) (*Sequencer, error) {
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("invalid campaign plan: %w", err)
	}
	if obs == nil {
		obs = NopObserver{}
	}
	return &Sequencer{
		gateway: gateway,
		plan:    plan,
		cal:     NewCalendar(plan.FlightStart, plan.FlightEnd),
		obs:     obs,
		poller:  NewApprovalPoller(gateway),
	}, nil
}

// Run executes the full lifecycle and returns the completion report. It
// fails only on context cancellation or the fatal buy-creation condition;
// no remote call is issued after the fatal condition is detected.
func (s *Sequencer) Run(ctx context.Context) (CampaignReport, error) {
	phases := []func(context.Context) error{
		s.planning,
		s.buying,
		s.creatives,
		s.preFlight,
		s.inFlight,
		s.optimization,
	}
	for _, phase := range phases {
		if err := ctx.Err(); err != nil {
			return CampaignReport{}, err
		}
		if err := phase(ctx); err != nil {
			return CampaignReport{}, err
		}
	}
	if err := ctx.Err(); err != nil {
		return CampaignReport{}, err
	}
	return s.completion(ctx), nil
}

// planning discovers available products. Informational only: an empty
// catalog does not stop the run.
func (s *Sequencer) planning(ctx context.Context) error {
	s.obs.PhaseStarted(PhasePlanning)
	s.obs.DayAdvanced(s.cal.Planning, "beginning campaign planning")

	result := s.gateway.Invoke(ctx, adcp.ToolDiscoverProducts, adcp.DiscoverProductsInput{
		Brief: s.plan.Brief,
	})
	var response adcp.DiscoverProductsResult
	_ = result.Decode(&response)
	s.obs.ProductsDiscovered(response.Products)
	return nil
}

// buying creates the media buy and records its handle for all later phases.
func (s *Sequencer) buying(ctx context.Context) error {
	s.obs.PhaseStarted(PhaseBuying)
	s.obs.DayAdvanced(s.cal.Buy, "executing media buy")

	result := s.gateway.Invoke(ctx, adcp.ToolCreateMediaBuy, adcp.CreateMediaBuyInput{
		ProductIDs:       s.plan.ProductIDs,
		FlightStartDate:  s.plan.FlightStart.Format(dateFormat),
		FlightEndDate:    s.plan.FlightEnd.Format(dateFormat),
		TotalBudget:      s.plan.TotalBudget,
		TargetingOverlay: s.plan.Targeting,
		PONumber:         s.plan.PONumber,
	})

	id := result.Str("media_buy_id")
	if id == "" {
		return fmt.Errorf("create media buy: %w", ErrNoMediaBuy)
	}
	s.mediaBuyID = id
	s.monitor = NewDeliveryMonitor(s.gateway, id)
	return nil
}

// creatives submits the batch and polls approval across the scheduled
// checks. The run proceeds whether or not the batch converges.
func (s *Sequencer) creatives(ctx context.Context) error {
	s.obs.PhaseStarted(PhaseCreativeSubmission)
	s.obs.DayAdvanced(s.cal.CreativeSubmit, "submitting creative assets")

	statuses := s.poller.Submit(ctx, s.mediaBuyID, s.plan.Creatives)
	s.obs.CreativesChecked(statuses, s.poller.Converged())

	if !s.poller.Converged() {
		s.poller.Poll(ctx, s.cal.ApprovalChecks, func(date time.Time, statuses []adcp.CreativeStatus, converged bool) {
			s.obs.DayAdvanced(date, "checking creative approval status")
			s.obs.CreativesChecked(statuses, converged)
		})
	}
	return nil
}

// preFlight takes a single observational delivery read before launch.
func (s *Sequencer) preFlight(ctx context.Context) error {
	s.obs.PhaseStarted(PhasePreFlight)
	s.obs.DayAdvanced(s.cal.PreFlight, "pre-flight verification")
	s.obs.SnapshotTaken(s.monitor.Fetch(ctx, s.cal.PreFlight))
	return nil
}

// inFlight reads delivery on each scheduled monitoring day and publishes
// the accumulated trend.
func (s *Sequencer) inFlight(ctx context.Context) error {
	s.obs.PhaseStarted(PhaseInFlight)
	for i, date := range s.cal.Monitoring {
		activity := "performance check"
		if i < len(monitoringActivities) {
			activity = monitoringActivities[i]
		}
		s.obs.DayAdvanced(date, activity)
		s.obs.SnapshotTaken(s.monitor.Fetch(ctx, date))
	}
	s.obs.TrendReady(s.monitor.Series())
	return nil
}

// optimization performs the single mid-flight correction cycle: one read,
// one feedback send, and at most one targeting update.
func (s *Sequencer) optimization(ctx context.Context) error {
	s.obs.PhaseStarted(PhaseOptimization)
	s.obs.DayAdvanced(s.cal.Optimization, "optimization review")

	snapshot := s.monitor.Fetch(ctx, s.cal.Optimization)
	s.obs.SnapshotTaken(snapshot)

	productID := ""
	if len(s.plan.ProductIDs) > 0 {
		productID = s.plan.ProductIDs[0]
	}
	feedback, action := Decide(snapshot, productID, s.plan.Targeting)

	// Feedback is best-effort and sent regardless of the action branch.
	result := s.gateway.Invoke(ctx, adcp.ToolUpdatePerformanceIndex, adcp.UpdatePerformanceIndexInput{
		MediaBuyID:      s.mediaBuyID,
		PerformanceData: []adcp.ProductPerformance{feedback},
	})
	s.obs.FeedbackSent(feedback, result.Str("status") == adcp.StatusSuccess)

	applied := false
	if action.Kind == ActionExpandTargeting {
		update := s.gateway.Invoke(ctx, adcp.ToolUpdateMediaBuy, adcp.UpdateMediaBuyInput{
			MediaBuyID:          s.mediaBuyID,
			NewTargetingOverlay: action.Overlay,
		})
		applied = update.Str("status") == adcp.StatusSuccess
	}
	s.obs.ActionDecided(action, applied)
	return nil
}

// completion takes the terminal read and classifies delivery quality.
func (s *Sequencer) completion(ctx context.Context) CampaignReport {
	s.obs.PhaseStarted(PhaseCompletion)
	s.obs.DayAdvanced(s.cal.Completion, "campaign completed, final report")

	final := s.monitor.Fetch(ctx, s.cal.Completion)
	report := Classify(final, s.plan.TotalBudget)
	report.MediaBuyID = s.mediaBuyID
	s.obs.ReportReady(report)
	return report
}
