package salesagent

import "github.com/adcontextprotocol/buysim/internal/adcp"

// DefaultCatalog is the seed product inventory for a fresh store.
func DefaultCatalog() []adcp.Product {
	return []adcp.Product{
		{
			ProductID:    "prod_video_guaranteed_sports",
			Name:         "Guaranteed Sports Video",
			DeliveryType: "guaranteed",
			CPM:          20.0,
			IsFixedPrice: true,
		},
		{
			ProductID:    "prod_audio_streaming_drive",
			Name:         "Streaming Audio Drive Time",
			DeliveryType: "guaranteed",
			CPM:          12.0,
			IsFixedPrice: true,
		},
		{
			ProductID:    "prod_display_ros",
			Name:         "Run of Site Display",
			DeliveryType: "non_guaranteed",
			CPM:          4.5,
			IsFixedPrice: false,
		},
	}
}
