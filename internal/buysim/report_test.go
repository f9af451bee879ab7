package buysim

import (
	"testing"

	"github.com/adcontextprotocol/buysim/internal/adcp"
)

func TestClassifyTierBoundaries(t *testing.T) {
	cases := []struct {
		name    string
		spend   float64
		budget  float64
		wantPct float64
		want    DeliveryTier
	}{
		{"exactly 95 percent is excellent", 47500, 50000, 95.0, TierExcellent},
		{"just under 95 percent is good", 47499.99, 50000, 94.99998, TierGood},
		{"exactly 80 percent is good", 40000, 50000, 80.0, TierGood},
		{"below 80 percent under-delivers", 39999, 50000, 79.998, TierUnderDelivery},
		{"full delivery is excellent", 50000, 50000, 100.0, TierExcellent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			report := Classify(DeliverySnapshot{Spend: tc.spend}, tc.budget)
			if report.Tier != tc.want {
				t.Fatalf("want %v, got %v (pct %v)", tc.want, report.Tier, report.DeliveryPct)
			}
			if diff := report.DeliveryPct - tc.wantPct; diff > 0.0001 || diff < -0.0001 {
				t.Fatalf("want pct %v, got %v", tc.wantPct, report.DeliveryPct)
			}
		})
	}
}

func TestClassifyNonPositiveBudget(t *testing.T) {
	for _, budget := range []float64{0, -100} {
		report := Classify(DeliverySnapshot{Spend: 48000}, budget)
		if report.DeliveryPct != 0 {
			t.Fatalf("budget %v: want 0%%, got %v", budget, report.DeliveryPct)
		}
		if report.Tier != TierUnderDelivery {
			t.Fatalf("budget %v: want under-delivery, got %v", budget, report.Tier)
		}
	}
}

func TestClassifyCPMOmittedAtZeroImpressions(t *testing.T) {
	report := Classify(DeliverySnapshot{Spend: 100, Impressions: 0}, 50000)
	if report.CPMKnown {
		t.Fatal("CPM must be marked unknown at zero impressions")
	}

	withImps := Classify(DeliverySnapshot{
		Status:      adcp.StatusCompleted,
		Spend:       48000,
		Impressions: 2400000,
	}, 50000)
	if !withImps.CPMKnown || withImps.EffectiveCPM != 20.0 {
		t.Fatalf("want CPM 20.0 known, got %v known=%v", withImps.EffectiveCPM, withImps.CPMKnown)
	}
	if withImps.Status != adcp.StatusCompleted {
		t.Fatalf("want status carried through, got %q", withImps.Status)
	}
}
