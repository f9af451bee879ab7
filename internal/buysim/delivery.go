package buysim

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/adcontextprotocol/buysim/internal/adcp"
	"github.com/dustin/go-humanize"
)

// DeliverySnapshot is a point-in-time delivery read for a media buy.
// Snapshots are never mutated after receipt.
type DeliverySnapshot struct {
	AsOf        time.Time
	Status      string
	Spend       float64
	Impressions int64
	DaysElapsed int
	TotalDays   int
	Pacing      string
	TotalBudget float64
}

// EffectiveCPM returns spend per thousand impressions. The second return is
// false when impressions are zero and the CPM is not computable.
func (s DeliverySnapshot) EffectiveCPM() (float64, bool) {
	if s.Impressions <= 0 {
		return 0, false
	}
	return s.Spend / float64(s.Impressions) * 1000, true
}

// DeliveryMonitor fetches delivery snapshots for one media buy and
// accumulates them into a time-ordered series. It does not deduplicate:
// every fetch appends exactly one snapshot.
type DeliveryMonitor struct {
	gateway    Gateway
	mediaBuyID string
	series     []DeliverySnapshot
}

// NewDeliveryMonitor creates a monitor for the given media buy.
func NewDeliveryMonitor(gateway Gateway, mediaBuyID string) *DeliveryMonitor {
	return &DeliveryMonitor{gateway: gateway, mediaBuyID: mediaBuyID}
}

// Fetch reads delivery as of the given simulated date and appends the
// snapshot to the series. A failed read yields a snapshot with unknown
// status and zero metrics.
func (m *DeliveryMonitor) Fetch(ctx context.Context, asOf time.Time) DeliverySnapshot {
	result := m.gateway.Invoke(ctx, adcp.ToolGetMediaBuyDelivery, adcp.GetMediaBuyDeliveryInput{
		MediaBuyID: m.mediaBuyID,
		Today:      asOf.Format(dateFormat),
	})

	var response adcp.GetMediaBuyDeliveryResult
	_ = result.Decode(&response)

	snapshot := DeliverySnapshot{
		AsOf:        asOf,
		Status:      response.Status,
		Spend:       response.Spend,
		Impressions: response.Impressions,
		DaysElapsed: response.DaysElapsed,
		TotalDays:   response.TotalDays,
		Pacing:      response.Pacing,
		TotalBudget: response.TotalBudget,
	}
	if snapshot.Status == "" {
		snapshot.Status = Unknown
	}
	if snapshot.Pacing == "" {
		snapshot.Pacing = Unknown
	}

	m.series = append(m.series, snapshot)
	return snapshot
}

// Series returns a copy of the accumulated snapshots in fetch order.
func (m *DeliveryMonitor) Series() []DeliverySnapshot {
	return append([]DeliverySnapshot(nil), m.series...)
}

// Latest returns the most recent snapshot, if any.
func (m *DeliveryMonitor) Latest() (DeliverySnapshot, bool) {
	if len(m.series) == 0 {
		return DeliverySnapshot{}, false
	}
	return m.series[len(m.series)-1], true
}

// TrendBars renders the series as one bar line per snapshot, impressions
// normalized against the series maximum. It is a pure function of the
// series and never modifies it.
func TrendBars(series []DeliverySnapshot, width int) []string {
	if width <= 0 {
		width = 40
	}

	var max int64
	for _, snapshot := range series {
		if snapshot.Impressions > max {
			max = snapshot.Impressions
		}
	}

	lines := make([]string, 0, len(series))
	for _, snapshot := range series {
		length := 0
		if max > 0 {
			length = int(snapshot.Impressions * int64(width) / max)
		}
		lines = append(lines, fmt.Sprintf("%s: %s %s imps ($%s)",
			snapshot.AsOf.Format("01/02"),
			strings.Repeat("█", length),
			humanize.Comma(snapshot.Impressions),
			humanize.CommafWithDigits(snapshot.Spend, 0),
		))
	}
	return lines
}
