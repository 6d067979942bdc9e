package order

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"hospital-meals/internal/catalog"
	"hospital-meals/internal/logger"
	"hospital-meals/internal/models"
)

// ErrEmptyCart is returned when checkout is attempted on an empty cart.
// The guard lives here, not in the session: the engine itself tolerates
// placing an empty order.
var ErrEmptyCart = errors.New("cart is empty")

// Service wraps the single session behind a mutex so the concurrent
// HTTP server can safely drive what is logically a single-actor state
type Service struct {
	mu      sync.Mutex
	session *Session
	cat     *catalog.Catalog
	logger  *logger.Logger

	orderCounter  int
	lastOrderDate string
}

// NewService creates the session with the catalog preloaded, the
// default hospital selected and tomorrow as the delivery date
func NewService(cat *catalog.Catalog, log *logger.Logger) *Service {
	return &Service{
		session: NewSession(cat, catalog.DefaultDeliveryDate(time.Now()), catalog.DefaultHospital),
		cat:     cat,
		logger:  log,
	}
}

// Catalog returns the menu
func (s *Service) Catalog() []catalog.MenuItem {
	return s.cat.Items()
}

// MenuItem looks up a single menu item
func (s *Service) MenuItem(itemID string) (catalog.MenuItem, bool) {
	return s.cat.Get(itemID)
}

// UpdateQuantity sets a cart line's quantity and returns the refreshed cart view
func (s *Service) UpdateQuantity(itemID string, quantity int, requestID string) models.CartResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.SetQuantity(itemID, quantity)

	s.logger.Debug("cart_updated", "Cart line updated", requestID, map[string]interface{}{
		"item_id":  itemID,
		"quantity": quantity,
	})

	return s.cartView()
}

// SetItemDate schedules one line for its own delivery date
func (s *Service) SetItemDate(itemID, date, requestID string) models.CartResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.SetItemDate(itemID, date)

	s.logger.Debug("item_date_set", "Line delivery date overridden", requestID, map[string]interface{}{
		"item_id": itemID,
		"date":    date,
	})

	return s.cartView()
}

// SetGlobalDate switches the delivery date being edited
func (s *Service) SetGlobalDate(date, requestID string) models.CartResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.session.GlobalDate()
	s.session.SetGlobalDate(date)

	s.logger.Debug("date_changed", "Session delivery date changed", requestID, map[string]interface{}{
		"previous_date": previous,
		"date":          date,
	})

	return s.cartView()
}

// SetHospital changes the delivery location
func (s *Service) SetHospital(hospital, requestID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.SetHospital(hospital)

	s.logger.Debug("hospital_changed", "Delivery hospital changed", requestID, map[string]interface{}{
		"hospital": hospital,
	})
}

// SetReferralCode stores the code and reports whether it earns a discount
func (s *Service) SetReferralCode(code, requestID string) models.ReferralCodeResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.SetReferralCode(code)
	valid := strings.ToUpper(code) == catalog.ValidReferralCode

	s.logger.Debug("referral_code_set", "Referral code stored", requestID, map[string]interface{}{
		"valid": valid,
	})

	return models.ReferralCodeResponse{Code: code, Valid: valid}
}

// ClearCart empties the cart
func (s *Service) ClearCart(requestID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.ClearCart()
	s.logger.Debug("cart_cleared", "Cart cleared", requestID, nil)
}

// PlaceOrder checks out the current cart. The empty-cart rejection is
// the caller-level guard from the UI contract.
func (s *Service) PlaceOrder(requestID string) (*models.PlaceOrderResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	totals := s.session.Totals()
	if totals.TotalQuantity == 0 {
		return nil, ErrEmptyCart
	}

	resp := &models.PlaceOrderResponse{
		OrderNumber:  s.generateOrderNumber(),
		Status:       "scheduled",
		DeliveryDate: s.session.GlobalDate(),
		Hospital:     s.session.Hospital(),
		Subtotal:     totals.Subtotal,
		SavedAmount:  totals.SavedAmount,
	}

	resp.PointsEarned = s.session.PlaceOrder()
	resp.LoyaltyPoints = s.session.LoyaltyPoints()

	s.logger.Info("order_placed", "Order placed", requestID, map[string]interface{}{
		"order_number":  resp.OrderNumber,
		"delivery_date": resp.DeliveryDate,
		"hospital":      resp.Hospital,
		"subtotal":      resp.Subtotal.String(),
		"points_earned": resp.PointsEarned,
	})

	return resp, nil
}

// CartView returns the current cart joined with menu data and totals
func (s *Service) CartView() models.CartResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartView()
}

// SessionView returns the session-level state
func (s *Service) SessionView() models.SessionResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.SessionResponse{
		DeliveryDate:  s.session.GlobalDate(),
		Hospital:      s.session.Hospital(),
		ReferralCode:  s.session.ReferralCode(),
		LoyaltyPoints: s.session.LoyaltyPoints(),
	}
}

// OrdersByDate returns the saved cart snapshots keyed by delivery date
func (s *Service) OrdersByDate() map[string]map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.OrdersByDate()
}

// Hospital returns the selected delivery location
func (s *Service) Hospital() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Hospital()
}

// LoyaltyPoints returns the accumulated loyalty balance
func (s *Service) LoyaltyPoints() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.LoyaltyPoints()
}

// cartView assembles the cart response; callers must hold the lock.
// Lines follow menu order so the view is stable between requests.
func (s *Service) cartView() models.CartResponse {
	cart := s.session.Cart()
	totals := s.session.Totals()

	var lines []models.CartLine
	for _, item := range s.cat.Items() {
		quantity := cart[item.ID]
		if quantity <= 0 {
			continue
		}
		lines = append(lines, models.CartLine{
			ItemID:       item.ID,
			Name:         item.Name,
			Quantity:     quantity,
			UnitPrice:    item.Price,
			LineTotal:    item.Price.Mul(decimalFromInt(quantity)),
			DeliveryDate: s.session.ItemDate(item.ID),
		})
	}

	return models.CartResponse{
		Items:         lines,
		TotalQuantity: totals.TotalQuantity,
		BaseTotal:     totals.BaseTotal,
		SavedAmount:   totals.SavedAmount,
		Subtotal:      totals.Subtotal,
		DeliveryDate:  s.session.GlobalDate(),
		Hospital:      s.session.Hospital(),
	}
}

// generateOrderNumber produces ORD_YYYYMMDD_NNN with a per-day counter.
// The counter restarts with the process, like the rest of the session.
func (s *Service) generateOrderNumber() string {
	today := time.Now().UTC().Format("20060102")
	if today != s.lastOrderDate {
		s.orderCounter = 0
	}

	s.orderCounter++
	s.lastOrderDate = today
	return fmt.Sprintf("ORD_%s_%03d", today, s.orderCounter)
}
