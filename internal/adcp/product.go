package adcp

// Product is a purchasable inventory product in the sales agent's catalog.
type Product struct {
	ProductID    string  `json:"product_id" jsonschema:"product identifier"`
	Name         string  `json:"name" jsonschema:"human-readable product name"`
	DeliveryType string  `json:"delivery_type" jsonschema:"delivery type (guaranteed, non_guaranteed)"`
	CPM          float64 `json:"cpm" jsonschema:"cost per thousand impressions"`
	IsFixedPrice bool    `json:"is_fixed_price" jsonschema:"whether the CPM is fixed rather than auction-derived"`
}

// DiscoverProductsInput requests products matching a free-text brief.
type DiscoverProductsInput struct {
	Brief string `json:"brief" jsonschema:"free-text campaign brief"`
}

// DiscoverProductsResult lists the products available for the brief.
type DiscoverProductsResult struct {
	Products []Product `json:"products" jsonschema:"available products"`
}
