package model

// CartItem is the storefront's view of a cart line, joined with the product
// name and price.
type CartItem struct {
	ID           int64   `json:"id"`
	ProductID    int64   `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductPrice float64 `json:"product_price"`
	Quantity     int     `json:"quantity"`
	Discount     float64 `json:"discount"`
}

// CartEntry is a raw row of GET /api/cart
type CartEntry struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Discount  float64 `json:"discount"`
}

// Order represents an entry of GET /api/orders
type Order struct {
	ID          int64       `json:"id"`
	CreatedAt   string      `json:"created_at"`
	TotalAmount float64     `json:"total_amount"`
	Items       []OrderItem `json:"items"`
}

type OrderItem struct {
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// OrderRequest is the checkout payload sent to POST /api/orders
type OrderRequest struct {
	PaymentMethod string             `json:"paymentMethod"`
	AddressID     int64              `json:"addressId"`
	Items         []OrderRequestItem `json:"items"`
	User          OrderContact       `json:"user"`
}

type OrderRequestItem struct {
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	Discount  float64 `json:"discount"`
}

type OrderContact struct {
	FullName     string `json:"fullName"`
	MobileNumber string `json:"mobileNumber"`
	Email        string `json:"email"`
}

// OrderConfirmation is what the confirmation email shows for a placed order.
type OrderConfirmation struct {
	FullName      string
	PaymentMethod string
	Total         string
	Lines         []ConfirmationLine
	Address       Address
}

type ConfirmationLine struct {
	Name     string
	Quantity int
	Price    string
}
