package adcp

// CreateMediaBuyInput purchases a flight against one or more products.
// Dates are ISO 8601 (YYYY-MM-DD).
type CreateMediaBuyInput struct {
	ProductIDs       []string         `json:"product_ids" jsonschema:"products included in the buy"`
	FlightStartDate  string           `json:"flight_start_date" jsonschema:"first eligible delivery date"`
	FlightEndDate    string           `json:"flight_end_date" jsonschema:"last eligible delivery date"`
	TotalBudget      float64          `json:"total_budget" jsonschema:"total budget for the flight"`
	TargetingOverlay TargetingOverlay `json:"targeting_overlay" jsonschema:"targeting applied on top of product defaults"`
	PONumber         string           `json:"po_number" jsonschema:"purchase order number for billing"`
}

// CreateMediaBuyResult acknowledges a purchase.
type CreateMediaBuyResult struct {
	MediaBuyID       string `json:"media_buy_id" jsonschema:"identifier of the created media buy"`
	Status           string `json:"status" jsonschema:"initial media buy status"`
	CreativeDeadline string `json:"creative_deadline,omitempty" jsonschema:"ISO 8601 deadline for creative submission"`
}

// UpdateMediaBuyInput replaces the targeting overlay on a live buy.
type UpdateMediaBuyInput struct {
	MediaBuyID          string           `json:"media_buy_id" jsonschema:"media buy to update"`
	NewTargetingOverlay TargetingOverlay `json:"new_targeting_overlay" jsonschema:"replacement targeting overlay"`
}

// UpdateMediaBuyResult acknowledges a media buy update.
type UpdateMediaBuyResult struct {
	Status string `json:"status" jsonschema:"\"success\" when the update was accepted"`
}
