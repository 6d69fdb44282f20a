package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	mug    = Product{ID: "p1", Name: "Mug", Price: 9.99, Emoji: "☕"}
	tee    = Product{ID: "p2", Name: "Tee", Price: 19.99, Emoji: "👕"}
	socks  = Product{ID: "p3", Name: "Socks", Price: 4.99}
	shoppr = Identity{ID: "u1", Name: "Asha", Email: "asha@example.com"}
)

func emptyState() State {
	return State{
		Cart:     []CartLine{},
		Wishlist: []Product{},
		Orders:   []Order{},
		Toasts:   []Toast{},
	}
}

func TestLoginLogout(t *testing.T) {
	state, changed := Reduce(emptyState(), Login{Identity: shoppr})
	require.NotNil(t, state.User)
	assert.Equal(t, "Asha", state.User.Name)
	assert.Equal(t, []Slice{SliceUser}, changed)

	state, changed = Reduce(state, Logout{})
	assert.Nil(t, state.User)
	assert.Equal(t, []Slice{SliceUser}, changed)
}

func TestLoginLeavesOtherSlicesAlone(t *testing.T) {
	initial := emptyState()
	initial.Cart = []CartLine{{Product: mug, Qty: 2}}
	initial.Wishlist = []Product{tee}

	state, _ := Reduce(initial, Login{Identity: shoppr})
	assert.Equal(t, initial.Cart, state.Cart)
	assert.Equal(t, initial.Wishlist, state.Wishlist)
}

func TestAddToCartMergesSameProduct(t *testing.T) {
	state, _ := Reduce(emptyState(), AddToCart{Product: mug})
	state, changed := Reduce(state, AddToCart{Product: mug})

	require.Len(t, state.Cart, 1)
	assert.Equal(t, 2, state.Cart[0].Qty)
	assert.Equal(t, []Slice{SliceCart}, changed)
}

func TestAddToCartAppendsNewLineAtEnd(t *testing.T) {
	state, _ := Reduce(emptyState(), AddToCart{Product: mug})
	state, _ = Reduce(state, AddToCart{Product: tee})

	require.Len(t, state.Cart, 2)
	assert.Equal(t, "p1", state.Cart[0].ID)
	assert.Equal(t, "p2", state.Cart[1].ID)
}

func TestUpdateQtyDropsLineAtZero(t *testing.T) {
	state, _ := Reduce(emptyState(), AddToCart{Product: mug})
	state, _ = Reduce(state, AddToCart{Product: mug})

	state, _ = Reduce(state, UpdateQty{ProductID: "p1", Delta: -2})
	assert.Empty(t, state.Cart)
}

func TestUpdateQtyUnknownIDIsNoOp(t *testing.T) {
	initial, _ := Reduce(emptyState(), AddToCart{Product: mug})

	state, changed := Reduce(initial, UpdateQty{ProductID: "nope", Delta: 1})
	assert.Equal(t, initial.Cart, state.Cart)
	assert.Empty(t, changed)
}

func TestRemoveFromCart(t *testing.T) {
	state, _ := Reduce(emptyState(), AddToCart{Product: mug})
	state, _ = Reduce(state, AddToCart{Product: tee})

	state, _ = Reduce(state, RemoveFromCart{ProductID: "p1"})
	require.Len(t, state.Cart, 1)
	assert.Equal(t, "p2", state.Cart[0].ID)

	state, _ = Reduce(state, RemoveFromCart{ProductID: "absent"})
	assert.Len(t, state.Cart, 1)
}

func TestClearCart(t *testing.T) {
	state, _ := Reduce(emptyState(), AddToCart{Product: mug})
	state, changed := Reduce(state, ClearCart{})

	assert.Empty(t, state.Cart)
	assert.Equal(t, []Slice{SliceCart}, changed)
}

func TestToggleWishlistIsIdempotentUnderDoubleToggle(t *testing.T) {
	initial := emptyState()
	initial.Wishlist = []Product{socks}

	state, _ := Reduce(initial, ToggleWishlist{Product: tee})
	assert.True(t, state.InWishlist("p2"))

	state, _ = Reduce(state, ToggleWishlist{Product: tee})
	assert.False(t, state.InWishlist("p2"))
	assert.Equal(t, initial.Wishlist, state.Wishlist)
}

func TestPlaceOrderIsAtomic(t *testing.T) {
	state, _ := Reduce(emptyState(), AddToCart{Product: mug})
	state, _ = Reduce(state, AddToCart{Product: tee})

	older := Order{ID: "o0", Status: "delivered"}
	state.Orders = []Order{older}

	order := Order{ID: "o1", Status: "confirmed", Total: 29.98}
	next, changed := Reduce(state, PlaceOrder{Order: order})

	// Both effects land in the one returned state.
	require.Len(t, next.Orders, 2)
	assert.Equal(t, "o1", next.Orders[0].ID)
	assert.Equal(t, "o0", next.Orders[1].ID)
	assert.Empty(t, next.Cart)
	assert.ElementsMatch(t, []Slice{SliceOrders, SliceCart}, changed)
}

func TestToastActionsReportNoPersistedSlices(t *testing.T) {
	toast := Toast{ID: "t1", Message: "hi", Kind: ToastInfo}
	state, changed := Reduce(emptyState(), AddToast{Toast: toast})
	require.Len(t, state.Toasts, 1)
	assert.Empty(t, changed)

	state, changed = Reduce(state, RemoveToast{ID: "t1"})
	assert.Empty(t, state.Toasts)
	assert.Empty(t, changed)
}

func TestRemoveToastUnknownIDIsNoOp(t *testing.T) {
	state, _ := Reduce(emptyState(), AddToast{Toast: Toast{ID: "t1"}})
	state, _ = Reduce(state, RemoveToast{ID: "t1"})
	state, _ = Reduce(state, RemoveToast{ID: "t1"})
	assert.Empty(t, state.Toasts)
}

type unrecognized struct{}

func (unrecognized) isAction() {}

func TestUnrecognizedActionIsNoOp(t *testing.T) {
	initial, _ := Reduce(emptyState(), AddToCart{Product: mug})

	state, changed := Reduce(initial, unrecognized{})
	assert.Equal(t, initial, state)
	assert.Empty(t, changed)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	initial := emptyState()
	initial.Cart = []CartLine{{Product: mug, Qty: 1}}

	next, _ := Reduce(initial, AddToCart{Product: mug})
	assert.Equal(t, 1, initial.Cart[0].Qty)
	assert.Equal(t, 2, next.Cart[0].Qty)
}
