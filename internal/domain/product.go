package domain

type Product struct {
	ID          string
	Name        string
	Description string
	Category    string
	Price       Money
	ImageURL    string
	Stock       int
}

// ProductFilter narrows catalog listings. Zero values mean "no constraint"
// except Page and Limit which are always sent.
type ProductFilter struct {
	Category string
	MinPrice int
	MaxPrice int
	Page     int
	Limit    int
}

func DefaultProductFilter() ProductFilter {
	return ProductFilter{
		MaxPrice: 10000,
		Page:     1,
		Limit:    10,
	}
}

type Pagination struct {
	Total int
	Page  int
	Limit int
	Pages int
}

// ProductPage is one page of a filtered catalog listing.
type ProductPage struct {
	Products   []Product
	Pagination Pagination
}
