package session

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultToastTTL is how long a toast stays visible before auto-removal.
const DefaultToastTTL = 3500 * time.Millisecond

// Config carries Engine construction options.
type Config struct {
	// Store receives the persisted copy of each state slice. Defaults to
	// an in-memory store.
	Store Store
	// ToastTTL overrides the toast display duration.
	ToastTTL time.Duration
}

// Engine is the session facade: the single entry point through which the
// UI mutates and observes session state. Transitions are applied strictly
// one at a time; the in-memory state is authoritative and persistence is
// best-effort.
type Engine struct {
	mu     sync.Mutex
	state  State
	store  Store
	timers map[string]*time.Timer
	subs   []func(State)
	ttl    time.Duration
	closed bool
}

// New builds an Engine, rehydrating each slice from cfg.Store. Absent or
// unparseable slices fall back to their typed defaults.
func New(cfg Config) *Engine {
	store := cfg.Store
	if store == nil {
		store = NewMemoryStore()
	}
	ttl := cfg.ToastTTL
	if ttl <= 0 {
		ttl = DefaultToastTTL
	}

	e := &Engine{
		store:  store,
		timers: map[string]*time.Timer{},
		ttl:    ttl,
		state: State{
			Cart:     []CartLine{},
			Wishlist: []Product{},
			Orders:   []Order{},
			Toasts:   []Toast{},
		},
	}

	var user *Identity
	if store.Read(string(SliceUser), &user) && user != nil {
		e.state.User = user
	}
	store.Read(string(SliceCart), &e.state.Cart)
	store.Read(string(SliceWishlist), &e.state.Wishlist)
	store.Read(string(SliceOrders), &e.state.Orders)

	return e
}

// Subscribe registers fn to receive a snapshot after every applied action.
func (e *Engine) Subscribe(fn func(State)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subs = append(e.subs, fn)
}

// Snapshot returns a deep copy of the current state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// Close cancels pending toast timers and stops accepting actions. Slice
// writes happen synchronously on dispatch, so there is nothing to flush.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	for id, timer := range e.timers {
		timer.Stop()
		delete(e.timers, id)
	}
}

func (e *Engine) Login(identity Identity) {
	e.dispatch(Login{Identity: identity})
}

func (e *Engine) Logout() {
	e.dispatch(Logout{})
}

func (e *Engine) AddToCart(p Product) {
	e.dispatch(AddToCart{Product: p})
}

func (e *Engine) RemoveFromCart(productID string) {
	e.dispatch(RemoveFromCart{ProductID: productID})
}

func (e *Engine) UpdateQty(productID string, delta int) {
	e.dispatch(UpdateQty{ProductID: productID, Delta: delta})
}

func (e *Engine) ClearCart() {
	e.dispatch(ClearCart{})
}

func (e *Engine) ToggleWishlist(p Product) {
	e.dispatch(ToggleWishlist{Product: p})
}

// PlaceOrder records the order newest-first and empties the cart in one
// transition. Zero-value id, date, status and total are filled in, the
// total from the item lines.
func (e *Engine) PlaceOrder(o Order) Order {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Date.IsZero() {
		o.Date = time.Now()
	}
	if o.Status == "" {
		o.Status = "confirmed"
	}
	if o.Total == 0 {
		for _, item := range o.Items {
			o.Total += item.Price * float64(item.Qty)
		}
	}
	e.dispatch(PlaceOrder{Order: o})
	return o
}

// Notify shows a toast and schedules its removal after the display
// duration. The returned id can be passed to DismissToast.
func (e *Engine) Notify(message string, kind ToastKind) string {
	toast := Toast{
		ID:        uuid.NewString(),
		Message:   message,
		Kind:      kind,
		CreatedAt: time.Now(),
	}
	e.dispatch(AddToast{Toast: toast})

	e.mu.Lock()
	if !e.closed {
		id := toast.ID
		e.timers[id] = time.AfterFunc(e.ttl, func() { e.expireToast(id) })
	}
	e.mu.Unlock()

	return toast.ID
}

// DismissToast removes a toast early, cancelling its expiry timer. Unknown
// ids are a no-op, so a dismiss racing the timer is harmless.
func (e *Engine) DismissToast(id string) {
	e.mu.Lock()
	if timer, ok := e.timers[id]; ok {
		timer.Stop()
		delete(e.timers, id)
	}
	e.mu.Unlock()

	e.dispatch(RemoveToast{ID: id})
}

func (e *Engine) expireToast(id string) {
	e.mu.Lock()
	delete(e.timers, id)
	e.mu.Unlock()

	e.dispatch(RemoveToast{ID: id})
}

func (e *Engine) dispatch(action Action) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}

	next, changed := Reduce(e.state, action)
	e.state = next
	persistErr := e.persist(next, changed)
	subs := append([]func(State){}, e.subs...)
	e.mu.Unlock()

	// Each subscriber gets its own detached copy.
	for _, fn := range subs {
		fn(next.Clone())
	}

	// The in-memory transition already happened; a failed write only
	// costs durability, so surface it and move on.
	if persistErr != nil {
		log.Printf("session: persist failed: %v", persistErr)
		e.Notify("Could not save your session", ToastError)
	}
}

func (e *Engine) persist(state State, changed []Slice) error {
	var firstErr error
	for _, slice := range changed {
		var err error
		switch slice {
		case SliceUser:
			if state.User == nil {
				err = e.store.Delete(string(SliceUser))
			} else {
				err = e.store.Write(string(SliceUser), state.User)
			}
		case SliceCart:
			err = e.store.Write(string(SliceCart), state.Cart)
		case SliceWishlist:
			err = e.store.Write(string(SliceWishlist), state.Wishlist)
		case SliceOrders:
			err = e.store.Write(string(SliceOrders), state.Orders)
		}
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
