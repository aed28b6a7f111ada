package domain

// CartItem is one line of the cart, uniquely keyed by ProductID.
// Name and UnitPrice are snapshots taken when the item was added,
// they are not re-synced from the catalog.
type CartItem struct {
	ProductID string
	Name      string
	UnitPrice Money
	ImageURL  string

	// Quantity is always >= 1: an item dropping to zero is removed,
	// never stored as zero.
	Quantity int
}

type Cart struct {
	Items []CartItem
}

// TotalItems is the sum of all line quantities.
func (c Cart) TotalItems() int {
	var total int
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the sum of quantity times unit price over all lines.
func (c Cart) TotalPrice() Money {
	total := Zero(DefaultCurrency)
	if len(c.Items) > 0 {
		total.Currency = c.Items[0].UnitPrice.Currency
	}

	for _, item := range c.Items {
		total = total.Add(item.UnitPrice.Mul(int64(item.Quantity)))
	}

	return total
}
