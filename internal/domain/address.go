package domain

// Address is a shipping address owned by the signed-in user.
type Address struct {
	ID      string
	Street  string
	City    string
	State   string
	ZipCode string
}
