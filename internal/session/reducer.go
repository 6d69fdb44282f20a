package session

// Reduce applies action to state and returns the next state together with
// the slices whose persisted copy is now stale. It is a total function:
// it performs no I/O, never fails, and returns the input state with no
// changed slices for any action it does not recognize.
func Reduce(state State, action Action) (State, []Slice) {
	switch a := action.(type) {
	case Login:
		identity := a.Identity
		next := state
		next.User = &identity
		return next, []Slice{SliceUser}

	case Logout:
		next := state
		next.User = nil
		return next, []Slice{SliceUser}

	case AddToCart:
		cart := make([]CartLine, 0, len(state.Cart)+1)
		merged := false
		for _, line := range state.Cart {
			if line.ID == a.Product.ID {
				line.Qty++
				merged = true
			}
			cart = append(cart, line)
		}
		if !merged {
			cart = append(cart, CartLine{Product: a.Product, Qty: 1})
		}
		next := state
		next.Cart = cart
		return next, []Slice{SliceCart}

	case RemoveFromCart:
		next := state
		next.Cart = removeLine(state.Cart, a.ProductID)
		return next, []Slice{SliceCart}

	case UpdateQty:
		found := false
		cart := make([]CartLine, 0, len(state.Cart))
		for _, line := range state.Cart {
			if line.ID == a.ProductID {
				found = true
				line.Qty += a.Delta
				if line.Qty <= 0 {
					continue
				}
			}
			cart = append(cart, line)
		}
		if !found {
			return state, nil
		}
		next := state
		next.Cart = cart
		return next, []Slice{SliceCart}

	case ClearCart:
		next := state
		next.Cart = []CartLine{}
		return next, []Slice{SliceCart}

	case ToggleWishlist:
		next := state
		if state.InWishlist(a.Product.ID) {
			wishlist := make([]Product, 0, len(state.Wishlist))
			for _, p := range state.Wishlist {
				if p.ID != a.Product.ID {
					wishlist = append(wishlist, p)
				}
			}
			next.Wishlist = wishlist
		} else {
			next.Wishlist = append(append([]Product(nil), state.Wishlist...), a.Product)
		}
		return next, []Slice{SliceWishlist}

	case PlaceOrder:
		// Newest-first orders and an emptied cart in one transition.
		orders := make([]Order, 0, len(state.Orders)+1)
		orders = append(orders, a.Order)
		orders = append(orders, state.Orders...)
		next := state
		next.Orders = orders
		next.Cart = []CartLine{}
		return next, []Slice{SliceOrders, SliceCart}

	case AddToast:
		next := state
		next.Toasts = append(append([]Toast(nil), state.Toasts...), a.Toast)
		return next, nil

	case RemoveToast:
		toasts := make([]Toast, 0, len(state.Toasts))
		for _, t := range state.Toasts {
			if t.ID != a.ID {
				toasts = append(toasts, t)
			}
		}
		next := state
		next.Toasts = toasts
		return next, nil

	default:
		return state, nil
	}
}

func removeLine(cart []CartLine, productID string) []CartLine {
	out := make([]CartLine, 0, len(cart))
	for _, line := range cart {
		if line.ID != productID {
			out = append(out, line)
		}
	}
	return out
}
