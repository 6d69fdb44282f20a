package session

// Action is a state transition request handled by Reduce. Implementations
// are plain payload structs; anything Reduce does not recognize leaves the
// state untouched.
type Action interface {
	isAction()
}

type Login struct {
	Identity Identity
}

type Logout struct{}

type AddToCart struct {
	Product Product
}

type RemoveFromCart struct {
	ProductID string
}

type UpdateQty struct {
	ProductID string
	Delta     int
}

type ClearCart struct{}

type ToggleWishlist struct {
	Product Product
}

type PlaceOrder struct {
	Order Order
}

type AddToast struct {
	Toast Toast
}

type RemoveToast struct {
	ID string
}

func (Login) isAction()          {}
func (Logout) isAction()         {}
func (AddToCart) isAction()      {}
func (RemoveFromCart) isAction() {}
func (UpdateQty) isAction()      {}
func (ClearCart) isAction()      {}
func (ToggleWishlist) isAction() {}
func (PlaceOrder) isAction()     {}
func (AddToast) isAction()       {}
func (RemoveToast) isAction()    {}
