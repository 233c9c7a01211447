package domain

import "time"

// Product is a catalog entry. Image fields carry URLs served from
// /public/uploads; upload handling itself lives outside this service.
type Product struct {
	ID              string
	Name            string
	Description     string
	RichDescription string
	Image           string
	Images          []string
	Brand           string
	Price           float64
	CategoryID      string
	CountInStock    int
	Rating          float64
	NumReviews      int
	IsFeatured      bool
	CreatedAt       time.Time
}
