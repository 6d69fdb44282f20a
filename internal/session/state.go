package session

import "time"

// Slice identifies an independently persisted subset of session state.
type Slice string

const (
	SliceUser     Slice = "user"
	SliceCart     Slice = "cart"
	SliceWishlist Slice = "wishlist"
	SliceOrders   Slice = "orders"
)

// Identity carries the authenticated shopper's display fields.
type Identity struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// Product is an opaque catalog record; the session never interprets it
// beyond its ID.
type Product struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"original_price,omitempty"`
	Emoji         string  `json:"emoji,omitempty"`
}

// CartLine is a product in the cart with its quantity. Qty is always >= 1;
// a line whose quantity drops to zero is removed, never stored.
type CartLine struct {
	Product
	Qty int `json:"qty"`
}

// OrderItem is a product snapshot captured at checkout.
type OrderItem struct {
	Product
	Qty   int     `json:"qty"`
	Price float64 `json:"price"`
}

type Order struct {
	ID     string      `json:"id"`
	Date   time.Time   `json:"date"`
	Items  []OrderItem `json:"items"`
	Status string      `json:"status"`
	Total  float64     `json:"total"`
}

type ToastKind string

const (
	ToastInfo    ToastKind = "info"
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// Toast is a transient notification; never persisted.
type Toast struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Kind      ToastKind `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// State is the full session aggregate. Transitions replace it wholesale;
// live State values are never mutated in place.
type State struct {
	User     *Identity  `json:"user"`
	Cart     []CartLine `json:"cart"`
	Wishlist []Product  `json:"wishlist"`
	Orders   []Order    `json:"orders"`
	Toasts   []Toast    `json:"toasts"`
}

// Clone returns a deep copy safe to hand to subscribers.
func (s State) Clone() State {
	out := State{
		Cart:     append([]CartLine(nil), s.Cart...),
		Wishlist: append([]Product(nil), s.Wishlist...),
		Orders:   make([]Order, len(s.Orders)),
		Toasts:   append([]Toast(nil), s.Toasts...),
	}
	if s.User != nil {
		user := *s.User
		out.User = &user
	}
	for i, o := range s.Orders {
		o.Items = append([]OrderItem(nil), o.Items...)
		out.Orders[i] = o
	}
	return out
}

// CartCount returns the total quantity across all cart lines.
func (s State) CartCount() int {
	count := 0
	for _, line := range s.Cart {
		count += line.Qty
	}
	return count
}

// CartTotal returns the price sum across all cart lines.
func (s State) CartTotal() float64 {
	total := 0.0
	for _, line := range s.Cart {
		total += line.Price * float64(line.Qty)
	}
	return total
}

// InWishlist reports whether the product id is wishlisted.
func (s State) InWishlist(productID string) bool {
	for _, p := range s.Wishlist {
		if p.ID == productID {
			return true
		}
	}
	return false
}
