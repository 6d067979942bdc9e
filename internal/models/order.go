package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"hospital-meals/internal/catalog"
)

// UpdateQuantityRequest sets the quantity of a cart line
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// SetDateRequest changes the session delivery date or a single line's date
type SetDateRequest struct {
	Date string `json:"date"`
}

// SetHospitalRequest changes the delivery location
type SetHospitalRequest struct {
	Hospital string `json:"hospital"`
}

// SetReferralCodeRequest stores a referral code on the session
type SetReferralCodeRequest struct {
	Code string `json:"code"`
}

// ReferralCodeResponse echoes the stored code and whether it earns a discount
type ReferralCodeResponse struct {
	Code  string `json:"code"`
	Valid bool   `json:"valid"`
}

// CartLine is one positive-quantity cart entry joined with its menu item
type CartLine struct {
	ItemID       string          `json:"item_id"`
	Name         string          `json:"name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	LineTotal    decimal.Decimal `json:"line_total"`
	DeliveryDate string          `json:"delivery_date"`
}

// CartResponse is the full cart view with derived totals
type CartResponse struct {
	Items         []CartLine      `json:"items"`
	TotalQuantity int             `json:"total_quantity"`
	BaseTotal     decimal.Decimal `json:"base_total"`
	SavedAmount   decimal.Decimal `json:"saved_amount"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	DeliveryDate  string          `json:"delivery_date"`
	Hospital      string          `json:"hospital"`
}

// SessionResponse is the session-level state exposed to the UI
type SessionResponse struct {
	DeliveryDate  string `json:"delivery_date"`
	Hospital      string `json:"hospital"`
	ReferralCode  string `json:"referral_code"`
	LoyaltyPoints int    `json:"loyalty_points"`
}

// PlaceOrderResponse confirms a checkout
type PlaceOrderResponse struct {
	OrderNumber   string          `json:"order_number"`
	Status        string          `json:"status"`
	DeliveryDate  string          `json:"delivery_date"`
	Hospital      string          `json:"hospital"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	SavedAmount   decimal.Decimal `json:"saved_amount"`
	PointsEarned  int             `json:"points_earned"`
	LoyaltyPoints int             `json:"loyalty_points"`
}

// ScheduledOrder summarizes one date's saved cart snapshot
type ScheduledOrder struct {
	Date          string `json:"date"`
	Hospital      string `json:"hospital"`
	LineCount     int    `json:"line_count"`
	TotalQuantity int    `json:"total_quantity"`
}

// LoyaltyResponse reports the accumulated loyalty balance
type LoyaltyResponse struct {
	LoyaltyPoints int `json:"loyalty_points"`
}

// Validate rejects negative quantities before they reach the engine
func (req *UpdateQuantityRequest) Validate() error {
	if req.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative")
	}
	return nil
}

// Validate checks the date is well formed and not in the past.
// The engine itself accepts any date; rejecting past dates is the
// caller's responsibility.
func (req *SetDateRequest) Validate(now time.Time) error {
	parsed, err := time.Parse(catalog.DateFormat, req.Date)
	if err != nil {
		return fmt.Errorf("date must be in YYYY-MM-DD format")
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if parsed.Before(today) {
		return fmt.Errorf("delivery date must not be in the past")
	}
	return nil
}

// Validate checks the hospital is one of the fixed delivery locations
func (req *SetHospitalRequest) Validate() error {
	if req.Hospital == "" {
		return fmt.Errorf("hospital is required")
	}
	if !catalog.IsValidHospital(req.Hospital) {
		return fmt.Errorf("unknown hospital: %s", req.Hospital)
	}
	return nil
}
