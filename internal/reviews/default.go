package reviews

// Default returns the built-in product page used when no reviews file is configured.
func Default() Catalog {
	return Catalog{
		Product: "Classic Cotton Shirt",
		Batch: []string{
			"The shirt looks great, but I had to return it. I'm usually a Large, but this ran really small.",
			"Warning: runs small! I'd recommend sizing up at least one size.",
			"Love the color! Fabric is a bit thin. Sizing is way off, definitely runs small.",
			"Perfect fit and great quality. Not sure what others are talking about.",
			"Had to send it back, it was too tight. Order a size up.",
		},
		Examples: []Example{
			{
				ID:    "good",
				Label: "Detailed review",
				Text:  "I've been using this for about two weeks now. It was easy to assemble, taking me about 15 minutes with the included tool. The material feels sturdy and has held up well to daily use. Specifically, I love the side pocket feature, which is perfect for my remote control.",
			},
			{
				ID:    "fake",
				Label: "Generic review",
				Text:  "Wow. This product is amazing. I love it very much. Best purchase ever. Highly recommend to everyone. Five stars.",
			},
		},
	}
}
