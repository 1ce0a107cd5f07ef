// Package cart holds the in-memory shopping carts. A cart is scratch state:
// checkout re-validates everything against the catalog, so nothing here is
// authoritative and nothing is persisted.
package cart

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart-level errors surfaced to the usecase layer.
var (
	// ErrSellerMismatch is returned when an item from a different seller is
	// added to a non-empty cart. An order covers exactly one seller.
	ErrSellerMismatch = errors.New("cart holds items from a different seller")
	// ErrItemNotFound is returned when mutating an item the cart does not hold.
	ErrItemNotFound = errors.New("item not in cart")
	// ErrInvalidQuantity is returned for zero or negative quantities on add.
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// Item is one cart line. UnitPrice is display-only; checkout re-reads the
// current product price.
type Item struct {
	ProductID uuid.UUID
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Cart is the per-user state. SellerID pins the single-seller invariant from
// the first item onward.
type Cart struct {
	SellerID  uuid.UUID
	Items     []Item
	UpdatedAt time.Time
}

// Empty reports whether the cart holds no items.
func (c *Cart) Empty() bool {
	return len(c.Items) == 0
}

// Total returns the display subtotal across all lines.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return total
}

// Store keeps one cart per user, guarded by a single mutex. Mutations are
// reducer-style: each action validates, applies, and returns a snapshot copy.
type Store struct {
	mu    sync.Mutex
	carts map[uuid.UUID]*Cart
}

// NewStore creates an empty cart store.
func NewStore() *Store {
	return &Store{carts: make(map[uuid.UUID]*Cart)}
}

// Get returns a snapshot of the user's cart. A user without a cart gets an
// empty one.
func (s *Store) Get(userID uuid.UUID) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	return snapshot(s.carts[userID])
}

// AddItem appends an item or bumps the quantity of an existing line.
// Adding across sellers fails with ErrSellerMismatch; the caller must clear
// the cart first.
func (s *Store) AddItem(userID, sellerID uuid.UUID, item Item) (*Cart, error) {
	if item.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.carts[userID]
	if cart == nil || cart.Empty() {
		cart = &Cart{SellerID: sellerID}
		s.carts[userID] = cart
	} else if cart.SellerID != sellerID {
		return nil, ErrSellerMismatch
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == item.ProductID {
			cart.Items[i].Quantity += item.Quantity
			cart.Items[i].UnitPrice = item.UnitPrice
			merged = true

			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, item)
	}
	cart.UpdatedAt = time.Now()

	return snapshot(cart), nil
}

// SetQuantity replaces the quantity of an existing line.
// A quantity of zero or less removes the line.
func (s *Store) SetQuantity(userID, productID uuid.UUID, quantity int) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.carts[userID]
	if cart == nil {
		return nil, ErrItemNotFound
	}

	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			if quantity <= 0 {
				cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			} else {
				cart.Items[i].Quantity = quantity
			}
			cart.UpdatedAt = time.Now()

			return snapshot(cart), nil
		}
	}

	return nil, ErrItemNotFound
}

// RemoveItem drops one line from the cart.
func (s *Store) RemoveItem(userID, productID uuid.UUID) (*Cart, error) {
	return s.SetQuantity(userID, productID, 0)
}

// Clear drops the user's cart entirely.
func (s *Store) Clear(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, userID)
}

func snapshot(cart *Cart) *Cart {
	if cart == nil {
		return &Cart{}
	}

	items := make([]Item, len(cart.Items))
	copy(items, cart.Items)

	return &Cart{
		SellerID:  cart.SellerID,
		Items:     items,
		UpdatedAt: cart.UpdatedAt,
	}
}
