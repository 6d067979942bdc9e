package schedule

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"hospital-meals/internal/catalog"
	"hospital-meals/internal/logger"
	"hospital-meals/internal/models"
)

// Service answers read-only questions about scheduled deliveries and
// the loyalty balance
type Service struct {
	session SessionView
	cat     *catalog.Catalog
	logger  *logger.Logger
}

// NewService creates a new schedule service
func NewService(session SessionView, cat *catalog.Catalog, log *logger.Logger) *Service {
	return &Service{
		session: session,
		cat:     cat,
		logger:  log,
	}
}

// ScheduledOrders lists the saved cart snapshots, one summary per
// delivery date, sorted by date. Dates whose snapshot holds no
// positive-quantity line are skipped.
func (s *Service) ScheduledOrders() []models.ScheduledOrder {
	byDate := s.session.OrdersByDate()
	hospital := s.session.Hospital()

	orders := make([]models.ScheduledOrder, 0, len(byDate))
	for date, cart := range byDate {
		lineCount, totalQuantity := countLines(cart)
		if lineCount == 0 {
			continue
		}
		orders = append(orders, models.ScheduledOrder{
			Date:          date,
			Hospital:      hospital,
			LineCount:     lineCount,
			TotalQuantity: totalQuantity,
		})
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].Date < orders[j].Date
	})
	return orders
}

// ScheduledOrderDetail returns the line items saved for one date
func (s *Service) ScheduledOrderDetail(date, requestID string) ([]models.CartLine, error) {
	cart, ok := s.session.OrdersByDate()[date]
	if !ok {
		return nil, fmt.Errorf("no order scheduled for %s", date)
	}

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
			LineTotal:    item.Price.Mul(decimal.NewFromInt(int64(quantity))),
			DeliveryDate: date,
		})
	}

	s.logger.Debug("schedule_queried", "Scheduled order detail served", requestID, map[string]interface{}{
		"date":  date,
		"lines": len(lines),
	})

	return lines, nil
}

// Loyalty reports the accumulated loyalty balance
func (s *Service) Loyalty() models.LoyaltyResponse {
	return models.LoyaltyResponse{LoyaltyPoints: s.session.LoyaltyPoints()}
}

func countLines(cart map[string]int) (lineCount, totalQuantity int) {
	for _, quantity := range cart {
		if quantity > 0 {
			lineCount++
			totalQuantity += quantity
		}
	}
	return lineCount, totalQuantity
}
