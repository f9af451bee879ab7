package adcp

// Creative is a piece of ad content submitted for review against a media buy.
type Creative struct {
	CreativeID string `json:"creative_id" jsonschema:"creative identifier"`
	FormatID   string `json:"format_id" jsonschema:"creative format identifier"`
	ContentURI string `json:"content_uri" jsonschema:"URI of the creative content"`
}

// CreativeStatus is the review state of a single creative.
type CreativeStatus struct {
	CreativeID string `json:"creative_id" jsonschema:"creative identifier"`
	Status     string `json:"status" jsonschema:"review status (pending, approved, rejected)"`
}

// SubmitCreativesInput submits a creative batch for review.
type SubmitCreativesInput struct {
	MediaBuyID string     `json:"media_buy_id" jsonschema:"media buy the creatives run against"`
	Creatives  []Creative `json:"creatives" jsonschema:"creatives to submit"`
}

// SubmitCreativesResult reports the initial review status per creative.
type SubmitCreativesResult struct {
	Statuses []CreativeStatus `json:"statuses" jsonschema:"initial review status per creative"`
}

// CheckCreativeStatusInput polls review status for a set of creatives.
type CheckCreativeStatusInput struct {
	CreativeIDs []string `json:"creative_ids" jsonschema:"creatives to check"`
}

// CheckCreativeStatusResult reports the latest review status per creative.
type CheckCreativeStatusResult struct {
	Statuses []CreativeStatus `json:"statuses" jsonschema:"latest review status per creative"`
}
