package salesagent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/adcontextprotocol/buysim/internal/adcp"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenInMemory()
	if err != nil {
		t.Fatalf("open in-memory store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testBuy() MediaBuy {
	return MediaBuy{
		MediaBuyID:               "mb_test",
		Status:                   adcp.StatusScheduled,
		ProductIDs:               []string{"prod_video_guaranteed_sports"},
		FlightStart:              time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC),
		FlightEnd:                time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC),
		TotalBudget:              50000,
		PONumber:                 "PO-2025-Q3-0042",
		Geography:                []string{"USA-CA", "USA-NY"},
		ContentCategoriesExclude: []string{"controversial", "politics"},
	}
}

func TestSeedAndListProducts(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.SeedProducts(ctx, DefaultCatalog()); err != nil {
		t.Fatalf("seed products: %v", err)
	}
	// Seeding again is a no-op.
	if err := store.SeedProducts(ctx, DefaultCatalog()); err != nil {
		t.Fatalf("reseed products: %v", err)
	}

	products, err := store.ListProducts(ctx)
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(products) != len(DefaultCatalog()) {
		t.Fatalf("expected %d products, got %d", len(DefaultCatalog()), len(products))
	}
	for _, product := range products {
		if product.ProductID == "prod_video_guaranteed_sports" {
			if product.CPM != 20.0 || !product.IsFixedPrice {
				t.Fatalf("unexpected product row: %+v", product)
			}
			return
		}
	}
	t.Fatal("seeded product missing from listing")
}

func TestMediaBuyRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.CreateMediaBuy(ctx, testBuy()); err != nil {
		t.Fatalf("create media buy: %v", err)
	}

	buy, err := store.GetMediaBuy(ctx, "mb_test")
	if err != nil {
		t.Fatalf("get media buy: %v", err)
	}
	if buy.TotalBudget != 50000 || buy.PONumber != "PO-2025-Q3-0042" {
		t.Fatalf("unexpected buy: %+v", buy)
	}
	if len(buy.Geography) != 2 || buy.Geography[0] != "USA-CA" {
		t.Fatalf("unexpected geography: %v", buy.Geography)
	}
	if !buy.FlightStart.Equal(time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected flight start: %v", buy.FlightStart)
	}
}

func TestCreateMediaBuyDuplicate(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.CreateMediaBuy(ctx, testBuy()); err != nil {
		t.Fatalf("create media buy: %v", err)
	}
	if err := store.CreateMediaBuy(ctx, testBuy()); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestGetMediaBuyNotFound(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.GetMediaBuy(context.Background(), "mb_missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateMediaBuyTargeting(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.CreateMediaBuy(ctx, testBuy()); err != nil {
		t.Fatalf("create media buy: %v", err)
	}

	overlay := adcp.TargetingOverlay{
		Geography:                []string{"USA-CA", "USA-NY", "USA-TX", "USA-FL"},
		ContentCategoriesExclude: []string{"controversial"},
	}
	if err := store.UpdateMediaBuyTargeting(ctx, "mb_test", overlay); err != nil {
		t.Fatalf("update targeting: %v", err)
	}

	buy, err := store.GetMediaBuy(ctx, "mb_test")
	if err != nil {
		t.Fatalf("get media buy: %v", err)
	}
	if len(buy.Geography) != 4 || len(buy.ContentCategoriesExclude) != 1 {
		t.Fatalf("targeting not persisted: %+v", buy)
	}

	if err := store.UpdateMediaBuyTargeting(ctx, "mb_missing", overlay); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAdvanceCreativeChecksApprovesAfterThreshold(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.CreateMediaBuy(ctx, testBuy()); err != nil {
		t.Fatalf("create media buy: %v", err)
	}
	creatives := []adcp.Creative{
		{CreativeID: "cr_dog_30s", FormatID: "fmt_video_30s", ContentURI: "https://cdn.example.com/dog.xml"},
		{CreativeID: "cr_cat_30s", FormatID: "fmt_video_30s", ContentURI: "https://cdn.example.com/cat.xml"},
	}
	if err := store.AddCreatives(ctx, "mb_test", creatives); err != nil {
		t.Fatalf("add creatives: %v", err)
	}

	ids := []string{"cr_dog_30s", "cr_cat_30s"}

	statuses, err := store.AdvanceCreativeChecks(ctx, ids, 2)
	if err != nil {
		t.Fatalf("advance checks: %v", err)
	}
	for _, status := range statuses {
		if status.Status != adcp.CreativePending {
			t.Fatalf("expected pending after first check, got %q", status.Status)
		}
	}

	statuses, err = store.AdvanceCreativeChecks(ctx, ids, 2)
	if err != nil {
		t.Fatalf("advance checks: %v", err)
	}
	for _, status := range statuses {
		if status.Status != adcp.CreativeApproved {
			t.Fatalf("expected approved after second check, got %q", status.Status)
		}
	}
}

func TestAdvanceCreativeChecksSkipsUnknownIDs(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.CreateMediaBuy(ctx, testBuy()); err != nil {
		t.Fatalf("create media buy: %v", err)
	}
	if err := store.AddCreatives(ctx, "mb_test", []adcp.Creative{
		{CreativeID: "cr_dog_30s", FormatID: "fmt_video_30s", ContentURI: "https://cdn.example.com/dog.xml"},
	}); err != nil {
		t.Fatalf("add creatives: %v", err)
	}

	statuses, err := store.AdvanceCreativeChecks(ctx, []string{"cr_dog_30s", "cr_unknown"}, 1)
	if err != nil {
		t.Fatalf("advance checks: %v", err)
	}
	if len(statuses) != 1 || statuses[0].CreativeID != "cr_dog_30s" {
		t.Fatalf("expected only known creative in response, got %v", statuses)
	}
	if statuses[0].Status != adcp.CreativeApproved {
		t.Fatalf("expected approval on first check, got %q", statuses[0].Status)
	}
}

func TestRecordPerformanceFeedback(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.CreateMediaBuy(ctx, testBuy()); err != nil {
		t.Fatalf("create media buy: %v", err)
	}
	err := store.RecordPerformanceFeedback(ctx, "mb_test", []adcp.ProductPerformance{
		{ProductID: "prod_video_guaranteed_sports", PerformanceIndex: 0.85, ConfidenceScore: 0.92},
	})
	if err != nil {
		t.Fatalf("record feedback: %v", err)
	}
}
