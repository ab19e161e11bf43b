package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xelth-com/eckrecongo/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CompleteResult reports what a session completion committed
type CompleteResult struct {
	Session      *models.Session `json:"session"`
	StockUpdates int             `json:"stockUpdates"` // StockItem rows created or adjusted
	Unresolved   int             `json:"unresolved"`   // Items skipped for lack of a product mapping
	ShipmentID   *uint           `json:"shipmentId,omitempty"`
}

// CompleteSession finalizes a session exactly once.
//
// Receiving: every item with a mapped product and non-zero scanned
// quantity increments (or creates) its StockItem. Shipping: the scanned
// quantities are decremented from stock and recorded as a Shipment.
// All effects and the terminal status write happen in one transaction;
// on any failure nothing is applied and the session keeps its prior
// state. A second call finds the terminal status and gets a Conflict.
func (s *Service) CompleteSession(ctx context.Context, sessionID uint, completedBy string) (*CompleteResult, error) {
	result := &CompleteResult{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		session, err := lockSession(tx, sessionID)
		if err != nil {
			return err
		}
		if session.Status.IsTerminal() {
			return fmt.Errorf("session %d: %w", sessionID, ErrSessionFinalized)
		}

		var items []models.SessionItem
		if err := tx.Where("session_id = ?", sessionID).Order("id").Find(&items).Error; err != nil {
			return err
		}

		switch session.Kind {
		case models.SessionKindShipping:
			return s.commitShipping(tx, session, items, completedBy, result)
		default:
			return s.commitReceiving(tx, session, items, completedBy, result)
		}
	})
	if err != nil {
		return nil, err
	}

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	result.Session = session

	s.signal("session", sessionID, "completed")
	s.signal("stock", session.WarehouseID, "updated")
	return result, nil
}

// commitReceiving upserts warehouse stock for every resolvable item
func (s *Service) commitReceiving(tx *gorm.DB, session *models.Session, items []models.SessionItem, completedBy string, result *CompleteResult) error {
	for _, item := range items {
		if item.ProductID == nil {
			// Intentionally excluded from the stock effect, not an error
			result.Unresolved++
			continue
		}
		if item.ScannedQuantity == 0 {
			continue
		}
		if err := adjustStock(tx, *item.ProductID, session.WarehouseID, item.ScannedQuantity); err != nil {
			return err
		}
		result.StockUpdates++
	}

	return finalizeSession(tx, session, models.SessionStatusCompleted, completedBy)
}

// commitShipping decrements stock and records the shipment
func (s *Service) commitShipping(tx *gorm.DB, session *models.Session, items []models.SessionItem, completedBy string, result *CompleteResult) error {
	var qualifying []models.SessionItem
	for _, item := range items {
		if item.ProductID == nil {
			result.Unresolved++
			continue
		}
		if item.ScannedQuantity == 0 {
			continue
		}
		qualifying = append(qualifying, item)
	}
	if len(qualifying) == 0 {
		// Checked before any write, so failure is a clean no-op
		return fmt.Errorf("session %d: %w", session.ID, ErrNothingToShip)
	}

	shipment := models.Shipment{
		WarehouseID: session.WarehouseID,
		SessionID:   &session.ID,
		Status:      models.ShipmentStatusShipped,
	}
	now := time.Now()
	shipment.ShippedAt = &now
	if err := tx.Create(&shipment).Error; err != nil {
		return fmt.Errorf("failed to record shipment: %w", err)
	}

	for _, item := range qualifying {
		if err := adjustStock(tx, *item.ProductID, session.WarehouseID, -item.ScannedQuantity); err != nil {
			return err
		}
		line := models.ShipmentLine{
			ShipmentID: shipment.ID,
			ProductID:  *item.ProductID,
			Quantity:   item.ScannedQuantity,
		}
		if err := tx.Create(&line).Error; err != nil {
			return fmt.Errorf("failed to record shipment line: %w", err)
		}
		result.StockUpdates++
	}

	result.ShipmentID = &shipment.ID
	return finalizeSession(tx, session, models.SessionStatusShipped, completedBy)
}

// adjustStock applies a signed quantity change to the (product, warehouse)
// stock record, creating it on first contact. The row is locked so that
// two commits touching the same product serialize.
func adjustStock(tx *gorm.DB, productID, warehouseID uint, delta int) error {
	var stock models.StockItem
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		First(&stock).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		stock = models.StockItem{
			ProductID:   productID,
			WarehouseID: warehouseID,
			Quantity:    delta,
			MinQuantity: 0,
		}
		if err := tx.Create(&stock).Error; err != nil {
			return fmt.Errorf("failed to create stock item: %w", err)
		}
		return nil
	}
	if err != nil {
		return err
	}

	return tx.Model(&stock).Update("quantity", gorm.Expr("quantity + ?", delta)).Error
}

// finalizeSession writes the terminal status and completion stamp
func finalizeSession(tx *gorm.DB, session *models.Session, status models.SessionStatus, completedBy string) error {
	now := time.Now()
	return tx.Model(session).Updates(map[string]interface{}{
		"status":       status,
		"completed_at": &now,
		"completed_by": completedBy,
	}).Error
}
