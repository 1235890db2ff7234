package domain

import "github.com/shopspring/decimal"

// User is the signed-in shopper. Wishlist and Orders are carried for the persisted
// record shape only; the wishlist container is the source of truth for favorites.
type User struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Wishlist []string `json:"wishlist"`
	Orders   []Order  `json:"orders"`
}

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
)

type Order struct {
	ID              string          `json:"id"`
	Date            string          `json:"date"`
	Items           []CartItem      `json:"items"`
	Status          OrderStatus     `json:"status"`
	Total           decimal.Decimal `json:"total"`
	ShippingAddress Address         `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
}

type Address struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
}
