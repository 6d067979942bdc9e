package order

import (
	"hospital-meals/internal/catalog"
)

// Session is the single in-memory order state for one browsing session.
// It owns the cart, per-line delivery dates, the active delivery date and
// hospital, the referral code, and the loyalty accumulator. All state is
// lost on restart.
//
// Session is not safe for concurrent use; Service serializes access.
type Session struct {
	cat *catalog.Catalog

	cart          map[string]int
	itemDates     map[string]string
	dateOverrides map[string]bool

	globalDate   string
	hospital     string
	referralCode string

	loyaltyPoints int

	// ordersByDate keeps a cart snapshot per delivery date so switching
	// back to a previously edited date restores its selections
	ordersByDate map[string]map[string]int
}

// NewSession creates an empty session with the given defaults
func NewSession(cat *catalog.Catalog, defaultDate, defaultHospital string) *Session {
	return &Session{
		cat:           cat,
		cart:          make(map[string]int),
		itemDates:     make(map[string]string),
		dateOverrides: make(map[string]bool),
		globalDate:    defaultDate,
		hospital:      defaultHospital,
		ordersByDate:  make(map[string]map[string]int),
	}
}

// SetQuantity sets the quantity of a cart line. Negative quantities are
// clamped to 0, which is equivalent to removal. Unknown item ids are
// accepted as opaque keys; they never contribute to totals. The first
// time a line turns positive its delivery date is seeded with the
// session date.
func (s *Session) SetQuantity(itemID string, quantity int) {
	if quantity < 0 {
		quantity = 0
	}
	s.cart[itemID] = quantity

	if quantity > 0 {
		if _, ok := s.itemDates[itemID]; !ok {
			s.itemDates[itemID] = s.globalDate
		}
	}
}

// SetGlobalDate switches the delivery date being edited. The current
// cart is saved under the old date, the new date's saved cart (if any)
// replaces it, and lines without an explicit per-line date are
// re-stamped with the new date. Lines whose date was set through
// SetItemDate keep it.
func (s *Session) SetGlobalDate(newDate string) {
	if newDate == s.globalDate {
		return
	}

	if len(s.cart) > 0 {
		s.ordersByDate[s.globalDate] = copyCart(s.cart)
	}

	s.globalDate = newDate

	if saved, ok := s.ordersByDate[newDate]; ok {
		s.cart = copyCart(saved)
	} else {
		s.cart = make(map[string]int)
	}

	for itemID, quantity := range s.cart {
		if quantity > 0 && !s.dateOverrides[itemID] {
			s.itemDates[itemID] = newDate
		}
	}
}

// SetItemDate schedules a single line for its own delivery date,
// independent of the session date
func (s *Session) SetItemDate(itemID, date string) {
	s.itemDates[itemID] = date
	s.dateOverrides[itemID] = true
}

// SetHospital changes the delivery location
func (s *Session) SetHospital(hospital string) {
	s.hospital = hospital
}

// SetReferralCode stores the code verbatim; matching against the valid
// code happens case-insensitively at pricing time
func (s *Session) SetReferralCode(code string) {
	s.referralCode = code
}

// ClearCart empties the cart and all per-line dates. Loyalty points and
// saved date snapshots survive.
func (s *Session) ClearCart() {
	s.cart = make(map[string]int)
	s.itemDates = make(map[string]string)
	s.dateOverrides = make(map[string]bool)
}

// PlaceOrder awards loyalty points for the discounted subtotal, saves
// the cart snapshot under the session date, and clears the cart. An
// empty cart is tolerated and earns 0 points. Guarding against
// double-submission is the caller's job.
func (s *Session) PlaceOrder() int {
	totals := s.Totals()

	earned := int(totals.Subtotal.IntPart())
	s.loyaltyPoints += earned

	s.ordersByDate[s.globalDate] = copyCart(s.cart)

	s.ClearCart()
	return earned
}

// Totals recomputes the derived amounts from the current cart and
// referral code
func (s *Session) Totals() Totals {
	return computeTotals(s.cat, s.cart, s.referralCode)
}

// Cart returns a copy of the cart mapping, zero-quantity lines included
func (s *Session) Cart() map[string]int {
	return copyCart(s.cart)
}

// ItemDate returns the delivery date for a line, falling back to the
// session date when none was recorded
func (s *Session) ItemDate(itemID string) string {
	if date, ok := s.itemDates[itemID]; ok {
		return date
	}
	return s.globalDate
}

// GlobalDate returns the session delivery date
func (s *Session) GlobalDate() string {
	return s.globalDate
}

// Hospital returns the selected delivery location
func (s *Session) Hospital() string {
	return s.hospital
}

// ReferralCode returns the stored referral code verbatim
func (s *Session) ReferralCode() string {
	return s.referralCode
}

// LoyaltyPoints returns the accumulated loyalty balance
func (s *Session) LoyaltyPoints() int {
	return s.loyaltyPoints
}

// OrdersByDate returns a copy of the saved cart snapshots keyed by date
func (s *Session) OrdersByDate() map[string]map[string]int {
	out := make(map[string]map[string]int, len(s.ordersByDate))
	for date, cart := range s.ordersByDate {
		out[date] = copyCart(cart)
	}
	return out
}

func copyCart(cart map[string]int) map[string]int {
	out := make(map[string]int, len(cart))
	for itemID, quantity := range cart {
		out[itemID] = quantity
	}
	return out
}
