package adcp

// ProductPerformance carries the buyer's performance signal for one product.
// A performance index of 1.0 means delivery matched expectations.
type ProductPerformance struct {
	ProductID        string  `json:"product_id" jsonschema:"product the signal applies to"`
	PerformanceIndex float64 `json:"performance_index" jsonschema:"relative performance (1.0 = expected)"`
	ConfidenceScore  float64 `json:"confidence_score" jsonschema:"signal confidence in [0,1]"`
}

// UpdatePerformanceIndexInput sends performance feedback for a media buy.
type UpdatePerformanceIndexInput struct {
	MediaBuyID      string               `json:"media_buy_id" jsonschema:"media buy the feedback applies to"`
	PerformanceData []ProductPerformance `json:"performance_data" jsonschema:"per-product performance signals"`
}

// UpdatePerformanceIndexResult acknowledges the feedback.
type UpdatePerformanceIndexResult struct {
	Status string `json:"status" jsonschema:"\"success\" when the feedback was recorded"`
}
