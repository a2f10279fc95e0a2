package catalog

import "github.com/r70610363/swiftcart-backend/pkg/models"

// SeedProducts returns the built-in catalog used when the store holds no
// product data yet and the upstream backend is unreachable. Callers get a
// fresh slice each time; seeded ratings and review counts are display
// values and are replaced by real aggregates once reviews arrive.
func SeedProducts() []models.Product {
	return []models.Product{
		{
			ID:            "p-1001",
			Title:         "Nova X5 Pro 5G (256 GB)",
			Category:      "Mobiles",
			Brand:         "Nova",
			Price:         24999,
			OriginalPrice: 32999,
			Description:   "6.7 inch AMOLED display, 108 MP triple camera and a 5000 mAh battery with 67 W fast charging.",
			Image:         "https://images.swiftcart.dev/products/nova-x5-pro.jpg",
			Colors:        []string{"Midnight Black", "Glacier Blue", "Sunset Gold"},
			Rating:        4.4,
			ReviewsCount:  312,
			Trending:      true,
		},
		{
			ID:            "p-1002",
			Title:         "Pixelforge Lite (128 GB)",
			Category:      "Mobiles",
			Brand:         "Pixelforge",
			Price:         13499,
			OriginalPrice: 16999,
			Description:   "Clean software, 90 Hz display and a dependable 50 MP main camera for everyday shots.",
			Image:         "https://images.swiftcart.dev/products/pixelforge-lite.jpg",
			Colors:        []string{"Charcoal", "Mint"},
			Rating:        4.1,
			ReviewsCount:  204,
		},
		{
			ID:            "p-2001",
			Title:         "AeroBook 14 Thin and Light Laptop",
			Category:      "Electronics",
			Brand:         "AeroBook",
			Price:         54990,
			OriginalPrice: 64990,
			Description:   "13th Gen Core i5, 16 GB RAM, 512 GB SSD and an all-day battery in a 1.3 kg chassis.",
			Image:         "https://images.swiftcart.dev/products/aerobook-14.jpg",
			Colors:        []string{"Silver", "Space Grey"},
			Rating:        4.5,
			ReviewsCount:  158,
			Trending:      true,
		},
		{
			ID:            "p-2002",
			Title:         "PulseBeat ANC Wireless Headphones",
			Category:      "Electronics",
			Brand:         "PulseBeat",
			Price:         4299,
			OriginalPrice: 7999,
			Description:   "Hybrid active noise cancellation, 40 hour playback and multipoint pairing.",
			Image:         "https://images.swiftcart.dev/products/pulsebeat-anc.jpg",
			Colors:        []string{"Black", "Ivory"},
			Rating:        4.2,
			ReviewsCount:  441,
		},
		{
			ID:            "p-2003",
			Title:         "VoltEdge 20000 mAh Power Bank",
			Category:      "Electronics",
			Brand:         "VoltEdge",
			Price:         1599,
			OriginalPrice: 2499,
			Description:   "22.5 W two-way fast charging with dual USB output and a metal unibody shell.",
			Image:         "https://images.swiftcart.dev/products/voltedge-20k.jpg",
			Rating:        4.3,
			ReviewsCount:  523,
		},
		{
			ID:            "p-3001",
			Title:         "Urban Stride Men's Running Shoes",
			Category:      "Fashion",
			Brand:         "Urban Stride",
			Price:         2199,
			OriginalPrice: 3999,
			Description:   "Breathable knit upper with a responsive foam midsole, built for daily runs.",
			Image:         "https://images.swiftcart.dev/products/urban-stride-run.jpg",
			Colors:        []string{"Navy", "Grey", "Triple White"},
			Rating:        4.0,
			ReviewsCount:  276,
		},
		{
			ID:            "p-3002",
			Title:         "Loom & Co Cotton Casual Shirt",
			Category:      "Fashion",
			Brand:         "Loom & Co",
			Price:         899,
			OriginalPrice: 1799,
			Description:   "Slim fit full-sleeve shirt in premium combed cotton with a soft brushed finish.",
			Image:         "https://images.swiftcart.dev/products/loom-shirt.jpg",
			Colors:        []string{"Olive", "White", "Sky Blue"},
			Rating:        4.1,
			ReviewsCount:  189,
			Trending:      true,
		},
		{
			ID:            "p-4001",
			Title:         "HearthHome Ceramic Dinner Set (24 pc)",
			Category:      "Home",
			Brand:         "HearthHome",
			Price:         2799,
			OriginalPrice: 4499,
			Description:   "Microwave-safe stoneware set with a hand-glazed matte finish for six place settings.",
			Image:         "https://images.swiftcart.dev/products/hearthhome-dinner.jpg",
			Rating:        4.4,
			ReviewsCount:  97,
		},
		{
			ID:            "p-4002",
			Title:         "DriftCloud Memory Foam Pillow (Set of 2)",
			Category:      "Home",
			Brand:         "DriftCloud",
			Price:         1299,
			OriginalPrice: 2299,
			Description:   "Contoured memory foam with a removable bamboo-fibre cover, medium-firm support.",
			Image:         "https://images.swiftcart.dev/products/driftcloud-pillow.jpg",
			Colors:        []string{"White", "Grey"},
			Rating:        4.2,
			ReviewsCount:  134,
		},
		{
			ID:            "p-5001",
			Title:         "FrostLine 253 L Frost-Free Refrigerator",
			Category:      "Appliances",
			Brand:         "FrostLine",
			Price:         23990,
			OriginalPrice: 28990,
			Description:   "Double-door convertible refrigerator with an inverter compressor and 3-star rating.",
			Image:         "https://images.swiftcart.dev/products/frostline-253.jpg",
			Colors:        []string{"Steel", "Wine Red"},
			Rating:        4.3,
			ReviewsCount:  88,
		},
		{
			ID:            "p-6001",
			Title:         "Velour Glow Vitamin C Face Serum",
			Category:      "Beauty",
			Brand:         "Velour",
			Price:         549,
			OriginalPrice: 999,
			Description:   "10 percent vitamin C with hyaluronic acid for brighter, even-toned skin.",
			Image:         "https://images.swiftcart.dev/products/velour-serum.jpg",
			Rating:        4.0,
			ReviewsCount:  362,
		},
		{
			ID:            "p-6002",
			Title:         "Velour Matte Lipstick Trio",
			Category:      "Beauty",
			Brand:         "Velour",
			Price:         699,
			OriginalPrice: 1299,
			Description:   "Long-wear matte lipsticks in three everyday shades with a non-drying formula.",
			Image:         "https://images.swiftcart.dev/products/velour-lipstick.jpg",
			Colors:        []string{"Rosewood", "Brick", "Mauve"},
			Rating:        4.1,
			ReviewsCount:  251,
			Trending:      true,
		},
	}
}
