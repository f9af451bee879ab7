package buysim

import (
	"context"
	"time"

	"github.com/adcontextprotocol/buysim/internal/adcp"
)

// ApprovalRegistry maps each submitted creative identifier to its latest
// known review status. Keys are exactly the submitted identifiers; a poll
// that returns nothing leaves the registry unchanged.
type ApprovalRegistry map[string]string

// AllApproved reports whether every tracked creative is approved. An empty
// registry tracks nothing and is never considered converged.
func (r ApprovalRegistry) AllApproved() bool {
	if len(r) == 0 {
		return false
	}
	for _, status := range r {
		if status != adcp.CreativeApproved {
			return false
		}
	}
	return true
}

// ApprovalPoller submits a creative batch once, then polls review status
// across a bounded, pre-scheduled set of check dates. Exhausting the
// schedule without convergence is a normal outcome, not an error.
type ApprovalPoller struct {
	gateway  Gateway
	registry ApprovalRegistry
	ids      []string
}

// NewApprovalPoller creates a poller bound to a gateway.
func NewApprovalPoller(gateway Gateway) *ApprovalPoller {
	return &ApprovalPoller{
		gateway:  gateway,
		registry: ApprovalRegistry{},
	}
}

// Submit sends the batch for review and seeds the registry with one entry
// per creative. A failed submission leaves every creative pending; the
// scheduled checks will pick up the real statuses.
func (p *ApprovalPoller) Submit(ctx context.Context, mediaBuyID string, creatives []adcp.Creative) []adcp.CreativeStatus {
	for _, creative := range creatives {
		p.ids = append(p.ids, creative.CreativeID)
		p.registry[creative.CreativeID] = adcp.CreativePending
	}

	result := p.gateway.Invoke(ctx, adcp.ToolSubmitCreatives, adcp.SubmitCreativesInput{
		MediaBuyID: mediaBuyID,
		Creatives:  creatives,
	})
	var response adcp.SubmitCreativesResult
	if err := result.Decode(&response); err == nil {
		p.apply(response.Statuses)
	}
	return p.Statuses()
}

// Poll checks review status once per scheduled date, stopping early when
// every creative is approved. The visit callback, when non-nil, observes
// each completed check. Poll reports whether the batch converged.
func (p *ApprovalPoller) Poll(ctx context.Context, checks []time.Time, visit func(date time.Time, statuses []adcp.CreativeStatus, converged bool)) bool {
	for _, date := range checks {
		result := p.gateway.Invoke(ctx, adcp.ToolCheckCreativeStatus, adcp.CheckCreativeStatusInput{
			CreativeIDs: append([]string(nil), p.ids...),
		})
		var response adcp.CheckCreativeStatusResult
		if err := result.Decode(&response); err == nil {
			p.apply(response.Statuses)
		}

		converged := p.registry.AllApproved()
		if visit != nil {
			visit(date, p.Statuses(), converged)
		}
		if converged {
			return true
		}
	}
	return p.registry.AllApproved()
}

// Converged reports whether every submitted creative is approved.
func (p *ApprovalPoller) Converged() bool {
	return p.registry.AllApproved()
}

// Statuses returns the latest known status per creative in submission order.
func (p *ApprovalPoller) Statuses() []adcp.CreativeStatus {
	statuses := make([]adcp.CreativeStatus, 0, len(p.ids))
	for _, id := range p.ids {
		statuses = append(statuses, adcp.CreativeStatus{CreativeID: id, Status: p.registry[id]})
	}
	return statuses
}

// Registry exposes the latest statuses keyed by creative identifier.
func (p *ApprovalPoller) Registry() ApprovalRegistry {
	return p.registry
}

// apply folds reported statuses into the registry. Identifiers that were
// never submitted are ignored so the registry keys stay fixed.
func (p *ApprovalPoller) apply(statuses []adcp.CreativeStatus) {
	for _, status := range statuses {
		if _, tracked := p.registry[status.CreativeID]; !tracked {
			continue
		}
		if status.Status == "" {
			continue
		}
		p.registry[status.CreativeID] = status.Status
	}
}
