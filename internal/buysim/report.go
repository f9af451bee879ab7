package buysim

// DeliveryTier classifies how much of the budget a flight delivered.
type DeliveryTier string

const (
	TierExcellent     DeliveryTier = "excellent"
	TierGood          DeliveryTier = "good"
	TierUnderDelivery DeliveryTier = "under-delivery"
)

// Tier cut points, inclusive at the lower bound.
const (
	tierExcellentPct = 95.0
	tierGoodPct      = 80.0
)

// CampaignReport is the final classification of a completed run.
type CampaignReport struct {
	MediaBuyID   string
	Status       string
	Spend        float64
	Impressions  int64
	DeliveryPct  float64
	Tier         DeliveryTier
	EffectiveCPM float64
	CPMKnown     bool
}

// Classify derives the completion report from the terminal snapshot and the
// planned budget. A non-positive budget reads as 0% delivery rather than a
// division fault, and the CPM is marked unknown when impressions are zero.
func Classify(final DeliverySnapshot, budget float64) CampaignReport {
	pct := 0.0
	if budget > 0 {
		pct = final.Spend / budget * 100
	}

	tier := TierUnderDelivery
	switch {
	case pct >= tierExcellentPct:
		tier = TierExcellent
	case pct >= tierGoodPct:
		tier = TierGood
	}

	cpm, known := final.EffectiveCPM()
	return CampaignReport{
		Status:       final.Status,
		Spend:        final.Spend,
		Impressions:  final.Impressions,
		DeliveryPct:  pct,
		Tier:         tier,
		EffectiveCPM: cpm,
		CPMKnown:     known,
	}
}
