package salesagent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adcontextprotocol/buysim/internal/adcp"
	"github.com/adcontextprotocol/buysim/internal/platform/id"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const dateFormat = "2006-01-02"

// creativeDeadlineLead is how many days before flight start creatives are due.
const creativeDeadlineLead = 2

// Service implements the seven AdCP tool handlers over the store.
type Service struct {
	store *Store

	// approveAfterChecks is how many status checks a pending creative
	// needs before it is approved.
	approveAfterChecks int

	// newID is injectable for tests.
	newID func() (string, error)
}

// NewService wires tool handlers to the store. approveAfterChecks below 1
// is treated as 1.
func NewService(store *Store, approveAfterChecks int) *Service {
	if approveAfterChecks < 1 {
		approveAfterChecks = 1
	}
	return &Service{
		store:              store,
		approveAfterChecks: approveAfterChecks,
		newID:              id.NewID,
	}
}

func (s *Service) discoverProducts(ctx context.Context, _ *mcp.CallToolRequest, _ adcp.DiscoverProductsInput) (*mcp.CallToolResult, adcp.DiscoverProductsResult, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, adcp.DiscoverProductsResult{}, fmt.Errorf("list products: %w", err)
	}
	return nil, adcp.DiscoverProductsResult{Products: products}, nil
}

func (s *Service) createMediaBuy(ctx context.Context, _ *mcp.CallToolRequest, input adcp.CreateMediaBuyInput) (*mcp.CallToolResult, adcp.CreateMediaBuyResult, error) {
	if len(input.ProductIDs) == 0 {
		return nil, adcp.CreateMediaBuyResult{}, fmt.Errorf("at least one product id is required")
	}
	if input.TotalBudget <= 0 {
		return nil, adcp.CreateMediaBuyResult{}, fmt.Errorf("total budget must be greater than zero")
	}
	flightStart, err := time.Parse(dateFormat, input.FlightStartDate)
	if err != nil {
		return nil, adcp.CreateMediaBuyResult{}, fmt.Errorf("parse flight start date: %w", err)
	}
	flightEnd, err := time.Parse(dateFormat, input.FlightEndDate)
	if err != nil {
		return nil, adcp.CreateMediaBuyResult{}, fmt.Errorf("parse flight end date: %w", err)
	}
	if flightEnd.Before(flightStart) {
		return nil, adcp.CreateMediaBuyResult{}, fmt.Errorf("flight end precedes flight start")
	}

	suffix, err := s.newID()
	if err != nil {
		return nil, adcp.CreateMediaBuyResult{}, fmt.Errorf("generate media buy id: %w", err)
	}
	mediaBuyID := "mb_" + suffix
	buy := MediaBuy{
		MediaBuyID:               mediaBuyID,
		Status:                   adcp.StatusScheduled,
		ProductIDs:               input.ProductIDs,
		FlightStart:              flightStart,
		FlightEnd:                flightEnd,
		TotalBudget:              input.TotalBudget,
		PONumber:                 input.PONumber,
		Geography:                input.TargetingOverlay.Geography,
		ContentCategoriesExclude: input.TargetingOverlay.ContentCategoriesExclude,
	}
	if err := s.store.CreateMediaBuy(ctx, buy); err != nil {
		return nil, adcp.CreateMediaBuyResult{}, fmt.Errorf("create media buy: %w", err)
	}

	deadline := flightStart.AddDate(0, 0, -creativeDeadlineLead)
	return nil, adcp.CreateMediaBuyResult{
		MediaBuyID:       mediaBuyID,
		Status:           adcp.StatusScheduled,
		CreativeDeadline: deadline.Format(dateFormat),
	}, nil
}

func (s *Service) submitCreatives(ctx context.Context, _ *mcp.CallToolRequest, input adcp.SubmitCreativesInput) (*mcp.CallToolResult, adcp.SubmitCreativesResult, error) {
	if _, err := s.store.GetMediaBuy(ctx, input.MediaBuyID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, adcp.SubmitCreativesResult{}, fmt.Errorf("media buy %s not found", input.MediaBuyID)
		}
		return nil, adcp.SubmitCreativesResult{}, fmt.Errorf("get media buy: %w", err)
	}
	if len(input.Creatives) == 0 {
		return nil, adcp.SubmitCreativesResult{}, fmt.Errorf("at least one creative is required")
	}
	if err := s.store.AddCreatives(ctx, input.MediaBuyID, input.Creatives); err != nil {
		return nil, adcp.SubmitCreativesResult{}, fmt.Errorf("add creatives: %w", err)
	}

	statuses := make([]adcp.CreativeStatus, 0, len(input.Creatives))
	for _, creative := range input.Creatives {
		statuses = append(statuses, adcp.CreativeStatus{
			CreativeID: creative.CreativeID,
			Status:     adcp.CreativePending,
		})
	}
	return nil, adcp.SubmitCreativesResult{Statuses: statuses}, nil
}

func (s *Service) checkCreativeStatus(ctx context.Context, _ *mcp.CallToolRequest, input adcp.CheckCreativeStatusInput) (*mcp.CallToolResult, adcp.CheckCreativeStatusResult, error) {
	if len(input.CreativeIDs) == 0 {
		return nil, adcp.CheckCreativeStatusResult{}, fmt.Errorf("at least one creative id is required")
	}
	statuses, err := s.store.AdvanceCreativeChecks(ctx, input.CreativeIDs, s.approveAfterChecks)
	if err != nil {
		return nil, adcp.CheckCreativeStatusResult{}, fmt.Errorf("advance creative checks: %w", err)
	}
	return nil, adcp.CheckCreativeStatusResult{Statuses: statuses}, nil
}

func (s *Service) getMediaBuyDelivery(ctx context.Context, _ *mcp.CallToolRequest, input adcp.GetMediaBuyDeliveryInput) (*mcp.CallToolResult, adcp.GetMediaBuyDeliveryResult, error) {
	buy, err := s.store.GetMediaBuy(ctx, input.MediaBuyID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, adcp.GetMediaBuyDeliveryResult{}, fmt.Errorf("media buy %s not found", input.MediaBuyID)
		}
		return nil, adcp.GetMediaBuyDeliveryResult{}, fmt.Errorf("get media buy: %w", err)
	}

	asOf := time.Now().UTC().Truncate(24 * time.Hour)
	if strings.TrimSpace(input.Today) != "" {
		asOf, err = time.Parse(dateFormat, input.Today)
		if err != nil {
			return nil, adcp.GetMediaBuyDeliveryResult{}, fmt.Errorf("parse today: %w", err)
		}
	}

	catalog, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, adcp.GetMediaBuyDeliveryResult{}, fmt.Errorf("list products: %w", err)
	}
	return nil, SimulateDelivery(buy, catalog, asOf), nil
}

func (s *Service) updatePerformanceIndex(ctx context.Context, _ *mcp.CallToolRequest, input adcp.UpdatePerformanceIndexInput) (*mcp.CallToolResult, adcp.UpdatePerformanceIndexResult, error) {
	if _, err := s.store.GetMediaBuy(ctx, input.MediaBuyID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, adcp.UpdatePerformanceIndexResult{}, fmt.Errorf("media buy %s not found", input.MediaBuyID)
		}
		return nil, adcp.UpdatePerformanceIndexResult{}, fmt.Errorf("get media buy: %w", err)
	}
	if err := s.store.RecordPerformanceFeedback(ctx, input.MediaBuyID, input.PerformanceData); err != nil {
		return nil, adcp.UpdatePerformanceIndexResult{}, fmt.Errorf("record performance feedback: %w", err)
	}
	return nil, adcp.UpdatePerformanceIndexResult{Status: adcp.StatusSuccess}, nil
}

func (s *Service) updateMediaBuy(ctx context.Context, _ *mcp.CallToolRequest, input adcp.UpdateMediaBuyInput) (*mcp.CallToolResult, adcp.UpdateMediaBuyResult, error) {
	err := s.store.UpdateMediaBuyTargeting(ctx, input.MediaBuyID, input.NewTargetingOverlay)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, adcp.UpdateMediaBuyResult{}, fmt.Errorf("media buy %s not found", input.MediaBuyID)
		}
		return nil, adcp.UpdateMediaBuyResult{}, fmt.Errorf("update media buy: %w", err)
	}
	return nil, adcp.UpdateMediaBuyResult{Status: adcp.StatusSuccess}, nil
}
