package view

type OrderRow struct {
	ID        string
	Buyer     string
	Status    string
	ItemCount int
	Total     string
	CreatedAt string
}

type OrderItemRow struct {
	ProductName string
	Quantity    int
	LineTotal   string
}
