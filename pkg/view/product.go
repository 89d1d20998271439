package view

// ProductRow is a single row on the seller dashboard product list.
type ProductRow struct {
	ID       string
	Name     string
	Slug     string
	Price    string
	ImageURL string
	Sold     bool
	SoldAt   string // formatted, empty while available
}

type ProductForm struct {
	Name        string
	Description string
	Price       string // major units as typed, e.g. "12.50"
	Currency    string
	ImageURL    string
}

// StatusConfirm backs the confirmation prompt for a pending status toggle.
type StatusConfirm struct {
	ProductID   string
	ProductName string
	WillBeSold  bool
	Prompt      string // "mark as sold" vs "make available"
}
