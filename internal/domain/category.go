package domain

// Category groups products for browsing.
type Category struct {
	ID    string
	Name  string
	Icon  string
	Color string
}
