package buysim

import (
	"fmt"
	"io"
	"time"

	"github.com/adcontextprotocol/buysim/internal/adcp"
	"github.com/dustin/go-humanize"
)

// ConsoleObserver renders run progress as plain text. The optional delay
// paces output for human observation; it is cosmetic and has no effect on
// ordering or outcomes.
type ConsoleObserver struct {
	out   io.Writer
	delay time.Duration
	sleep func(time.Duration)
}

// NewConsoleObserver writes progress to out, pausing delay after each
// simulated day header. A zero delay disables pacing.
func NewConsoleObserver(out io.Writer, delay time.Duration) *ConsoleObserver {
	if out == nil {
		out = io.Discard
	}
	return &ConsoleObserver{out: out, delay: delay, sleep: time.Sleep}
}

func (c *ConsoleObserver) PhaseStarted(phase Phase) {
	fmt.Fprintf(c.out, "\n==== Phase: %s ====\n", phase)
}

func (c *ConsoleObserver) DayAdvanced(date time.Time, activity string) {
	fmt.Fprintf(c.out, "\n[%s] %s\n", date.Format("January 02, 2006"), activity)
	if c.delay > 0 {
		c.sleep(c.delay)
	}
}

func (c *ConsoleObserver) ProductsDiscovered(products []adcp.Product) {
	if len(products) == 0 {
		fmt.Fprintln(c.out, "no products available")
		return
	}
	fmt.Fprintf(c.out, "found %d product(s):\n", len(products))
	for _, product := range products {
		price := "variable"
		if product.IsFixedPrice {
			price = fmt.Sprintf("$%.2f CPM", product.CPM)
		}
		fmt.Fprintf(c.out, "  %-32s %-28s %-16s %s\n",
			product.ProductID, product.Name, product.DeliveryType, price)
	}
}

func (c *ConsoleObserver) CreativesChecked(statuses []adcp.CreativeStatus, converged bool) {
	for _, status := range statuses {
		marker := " "
		if status.Status == adcp.CreativeApproved {
			marker = "*"
		}
		fmt.Fprintf(c.out, "  %s %s: %s\n", marker, status.CreativeID, status.Status)
	}
	if converged {
		fmt.Fprintln(c.out, "all creatives approved")
	}
}

func (c *ConsoleObserver) SnapshotTaken(snapshot DeliverySnapshot) {
	progress := 0.0
	if snapshot.TotalDays > 0 {
		progress = float64(snapshot.DaysElapsed) / float64(snapshot.TotalDays) * 100
	}
	fmt.Fprintf(c.out, "  status: %s\n", snapshot.Status)
	fmt.Fprintf(c.out, "  day %d of %d (%.1f%% complete)\n", snapshot.DaysElapsed, snapshot.TotalDays, progress)
	fmt.Fprintf(c.out, "  spend: $%s\n", humanize.CommafWithDigits(snapshot.Spend, 2))
	fmt.Fprintf(c.out, "  impressions: %s\n", humanize.Comma(snapshot.Impressions))
	fmt.Fprintf(c.out, "  pacing: %s\n", snapshot.Pacing)
	if cpm, ok := snapshot.EffectiveCPM(); ok {
		fmt.Fprintf(c.out, "  effective CPM: $%.2f\n", cpm)
	}
}

func (c *ConsoleObserver) TrendReady(series []DeliverySnapshot) {
	fmt.Fprintln(c.out, "\nperformance trend:")
	for _, line := range TrendBars(series, 40) {
		fmt.Fprintf(c.out, "  %s\n", line)
	}
}

func (c *ConsoleObserver) FeedbackSent(feedback adcp.ProductPerformance, acknowledged bool) {
	outcome := "not acknowledged"
	if acknowledged {
		outcome = "acknowledged"
	}
	fmt.Fprintf(c.out, "performance index %.2f (confidence %.2f) for %s: %s\n",
		feedback.PerformanceIndex, feedback.ConfidenceScore, feedback.ProductID, outcome)
}

func (c *ConsoleObserver) ActionDecided(action OptimizationAction, applied bool) {
	switch action.Kind {
	case ActionExpandTargeting:
		fmt.Fprintf(c.out, "under-delivery: expanding targeting to %v (exclusions now %v)\n",
			action.Overlay.Geography, action.Overlay.ContentCategoriesExclude)
		if applied {
			fmt.Fprintln(c.out, "optimizations applied")
		} else {
			fmt.Fprintln(c.out, "failed to apply optimizations")
		}
	case ActionFlagBudget:
		fmt.Fprintln(c.out, "over-delivery: consider increasing budget")
	default:
		fmt.Fprintln(c.out, "pacing on track, no optimization needed")
	}
}

func (c *ConsoleObserver) ReportReady(report CampaignReport) {
	fmt.Fprintln(c.out, "\n---- final campaign report ----")
	fmt.Fprintf(c.out, "media buy:         %s\n", report.MediaBuyID)
	fmt.Fprintf(c.out, "status:            %s\n", report.Status)
	fmt.Fprintf(c.out, "total spend:       $%s\n", humanize.CommafWithDigits(report.Spend, 2))
	fmt.Fprintf(c.out, "total impressions: %s\n", humanize.Comma(report.Impressions))
	if report.CPMKnown {
		fmt.Fprintf(c.out, "effective CPM:     $%.2f\n", report.EffectiveCPM)
	}
	fmt.Fprintf(c.out, "budget utilization: %.1f%% (%s)\n", report.DeliveryPct, report.Tier)
}
