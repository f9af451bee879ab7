package salesagent

import (
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/adcontextprotocol/buysim/internal/adcp"
)

// Pacing bands relative to the even-spend expectation.
const (
	pacingAheadFactor  = 1.1
	pacingBehindFactor = 0.9
)

// SimulateDelivery computes the delivery state of a buy as of the given day.
// The simulation is deterministic: daily variance comes from a generator
// seeded by the media buy ID, so repeated reads for the same day return
// identical numbers.
//
// Reporting is day-complete: a read on day N covers spend through the end of
// day N-1, clamped to the flight end. Spend never exceeds the total budget.
func SimulateDelivery(buy MediaBuy, catalog []adcp.Product, asOf time.Time) adcp.GetMediaBuyDeliveryResult {
	totalDays := int(buy.FlightEnd.Sub(buy.FlightStart).Hours() / 24)

	if !asOf.After(buy.FlightStart) {
		return adcp.GetMediaBuyDeliveryResult{
			Status:      adcp.StatusScheduled,
			Pacing:      adcp.PacingOnTrack,
			TotalDays:   totalDays,
			TotalBudget: buy.TotalBudget,
		}
	}

	reportingDate := asOf.AddDate(0, 0, -1)
	flightComplete := !reportingDate.Before(buy.FlightEnd)
	if flightComplete {
		reportingDate = buy.FlightEnd
	}
	daysElapsed := int(reportingDate.Sub(buy.FlightStart).Hours()/24) + 1

	dailyTarget := buy.TotalBudget
	if totalDays > 0 {
		dailyTarget = buy.TotalBudget / float64(totalDays)
	}

	cpms := productCPMs(buy.ProductIDs, catalog)
	rng := rand.New(rand.NewSource(seedFor(buy.MediaBuyID)))

	var spend float64
	var impressions int64
	for day := 0; day < daysElapsed; day++ {
		if spend >= buy.TotalBudget {
			break
		}
		daySpend := dailyTarget * (pacingBehindFactor + rng.Float64()*0.2)
		if spend+daySpend > buy.TotalBudget {
			daySpend = buy.TotalBudget - spend
		}
		if len(cpms) > 0 {
			perProduct := daySpend / float64(len(cpms))
			for _, cpm := range cpms {
				if cpm > 0 {
					impressions += int64(perProduct / cpm * 1000)
				}
			}
		}
		spend += daySpend
	}

	expected := dailyTarget * float64(daysElapsed)
	pacing := adcp.PacingOnTrack
	switch {
	case spend > expected*pacingAheadFactor:
		pacing = adcp.PacingOverDelivery
	case spend < expected*pacingBehindFactor:
		pacing = adcp.PacingUnderDelivery
	}

	status := adcp.StatusDelivering
	if flightComplete || spend >= buy.TotalBudget {
		status = adcp.StatusCompleted
	}

	return adcp.GetMediaBuyDeliveryResult{
		Status:      status,
		Spend:       roundCents(spend),
		Impressions: impressions,
		DaysElapsed: daysElapsed,
		TotalDays:   totalDays,
		Pacing:      pacing,
		TotalBudget: buy.TotalBudget,
	}
}

func productCPMs(productIDs []string, catalog []adcp.Product) []float64 {
	byID := make(map[string]adcp.Product, len(catalog))
	for _, product := range catalog {
		byID[product.ProductID] = product
	}
	var cpms []float64
	for _, productID := range productIDs {
		if product, ok := byID[productID]; ok {
			cpms = append(cpms, product.CPM)
		}
	}
	return cpms
}

func seedFor(mediaBuyID string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(mediaBuyID))
	return int64(h.Sum64())
}

func roundCents(value float64) float64 {
	return float64(int64(value*100+0.5)) / 100
}
