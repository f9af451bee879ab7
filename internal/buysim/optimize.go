package buysim

import (
	"slices"

	"github.com/adcontextprotocol/buysim/internal/adcp"
)

// Performance signal constants. The index is a fixed two-tier mapping over
// pacing and the confidence is a single fixed score; both are preserved
// exactly from the reference behavior.
const (
	perfIndexOnTrack   = 1.2
	perfIndexOffTrack  = 0.85
	feedbackConfidence = 0.92
)

// expandGeographies are the geographies added when widening an
// under-delivering buy. Fixed example deltas, not a general reach policy.
var expandGeographies = []string{"USA-TX", "USA-FL"}

// ActionKind names the optimization decision for a cycle.
type ActionKind string

const (
	ActionNone            ActionKind = "no-op"
	ActionExpandTargeting ActionKind = "expand-targeting"
	ActionFlagBudget      ActionKind = "flag-for-budget-review"
)

// OptimizationAction is the outcome of one optimization decision. Overlay
// is populated only for ActionExpandTargeting.
type OptimizationAction struct {
	Kind    ActionKind
	Overlay adcp.TargetingOverlay
}

// Decide maps a delivery snapshot to a performance feedback signal and an
// optimization action. It is pure: the remote calls that act on the
// decision are issued by the sequencer.
//
// The feedback index is 1.2 when pacing is on_track and 0.85 otherwise.
// Under-delivery widens the targeting overlay, over-delivery flags the buy
// for budget review, and every other pacing value (including unknown) is a
// no-op.
func Decide(snapshot DeliverySnapshot, productID string, current adcp.TargetingOverlay) (adcp.ProductPerformance, OptimizationAction) {
	index := perfIndexOffTrack
	if snapshot.Pacing == adcp.PacingOnTrack {
		index = perfIndexOnTrack
	}
	feedback := adcp.ProductPerformance{
		ProductID:        productID,
		PerformanceIndex: index,
		ConfidenceScore:  feedbackConfidence,
	}

	switch snapshot.Pacing {
	case adcp.PacingUnderDelivery:
		return feedback, OptimizationAction{Kind: ActionExpandTargeting, Overlay: widenOverlay(current)}
	case adcp.PacingOverDelivery:
		return feedback, OptimizationAction{Kind: ActionFlagBudget}
	default:
		return feedback, OptimizationAction{Kind: ActionNone}
	}
}

// widenOverlay adds the expansion geographies not already targeted and
// drops the last content exclusion. The input overlay is never mutated.
func widenOverlay(current adcp.TargetingOverlay) adcp.TargetingOverlay {
	next := current.Clone()
	for _, geo := range expandGeographies {
		if !slices.Contains(next.Geography, geo) {
			next.Geography = append(next.Geography, geo)
		}
	}
	if n := len(next.ContentCategoriesExclude); n > 0 {
		next.ContentCategoriesExclude = next.ContentCategoriesExclude[:n-1]
	}
	return next
}
