// Package adcp defines the wire schema for the AdCP buy-side operations.
//
// The types here are shared by the simulator's gateway and the stub sales
// agent: each operation has an Input struct (the MCP tool arguments) and a
// Result struct (the structured tool output).
package adcp

// Tool names exposed by an AdCP sales agent.
const (
	ToolDiscoverProducts       = "discover_products"
	ToolCreateMediaBuy         = "create_media_buy"
	ToolSubmitCreatives        = "submit_creatives"
	ToolCheckCreativeStatus    = "check_creative_status"
	ToolGetMediaBuyDelivery    = "get_media_buy_delivery"
	ToolUpdatePerformanceIndex = "update_performance_index"
	ToolUpdateMediaBuy         = "update_media_buy"
)

// Pacing classifications reported on delivery reads.
const (
	PacingOnTrack       = "on_track"
	PacingUnderDelivery = "under_delivery"
	PacingOverDelivery  = "over_delivery"
)

// Media buy statuses reported on delivery reads.
const (
	StatusScheduled  = "scheduled"
	StatusDelivering = "delivering"
	StatusCompleted  = "completed"
)

// Creative review statuses.
const (
	CreativePending  = "pending"
	CreativeApproved = "approved"
	CreativeRejected = "rejected"
)

// StatusSuccess is the acknowledgement value for mutating operations.
const StatusSuccess = "success"

// TargetingOverlay narrows where a media buy is eligible to deliver.
type TargetingOverlay struct {
	Geography                []string `json:"geography" jsonschema:"geography codes the buy targets"`
	ContentCategoriesExclude []string `json:"content_categories_exclude" jsonschema:"content categories excluded from delivery"`
}

// Clone returns a deep copy so callers can widen an overlay without
// mutating the original.
func (t TargetingOverlay) Clone() TargetingOverlay {
	return TargetingOverlay{
		Geography:                append([]string(nil), t.Geography...),
		ContentCategoriesExclude: append([]string(nil), t.ContentCategoriesExclude...),
	}
}
