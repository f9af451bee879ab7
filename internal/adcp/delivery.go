package adcp

// GetMediaBuyDeliveryInput reads delivery metrics as of a simulated date.
type GetMediaBuyDeliveryInput struct {
	MediaBuyID string `json:"media_buy_id" jsonschema:"media buy to read"`
	Today      string `json:"today" jsonschema:"ISO 8601 date the read is taken at"`
}

// GetMediaBuyDeliveryResult is a point-in-time delivery snapshot.
type GetMediaBuyDeliveryResult struct {
	Status      string  `json:"status" jsonschema:"media buy status (scheduled, delivering, completed)"`
	Spend       float64 `json:"spend" jsonschema:"cumulative spend"`
	Impressions int64   `json:"impressions" jsonschema:"cumulative impressions"`
	DaysElapsed int     `json:"days_elapsed" jsonschema:"flight days elapsed at the reporting date"`
	TotalDays   int     `json:"total_days" jsonschema:"total flight days"`
	Pacing      string  `json:"pacing" jsonschema:"pacing classification (on_track, under_delivery, over_delivery)"`
	TotalBudget float64 `json:"total_budget" jsonschema:"total budget for the flight"`
}
