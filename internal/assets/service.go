package assets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xelth-com/eckrecongo/internal/models"
	"github.com/xelth-com/eckrecongo/internal/notify"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service errors, mapped to 404/409 by handlers
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid process status transition")
)

// Service drives the asset lifecycle AVAILABLE -> RESERVED -> IN_TRANSIT
// -> DELIVERED -> INSTALLED (and DECOMMISSIONED via explicit write-off).
// Every transition appends an AssetHistory record in the same transaction
// as the status and location writes, so a location change is never
// observable without its matching status change.
type Service struct {
	db  *gorm.DB
	hub *notify.Hub
}

// NewService creates an asset lifecycle service
func NewService(db *gorm.DB, hub *notify.Hub) *Service {
	return &Service{db: db, hub: hub}
}

// CreateShipment opens a draft shipment from a warehouse, optionally
// destined for a store
func (s *Service) CreateShipment(ctx context.Context, warehouseID uint, storeID *uint) (*models.Shipment, error) {
	shipment := models.Shipment{
		WarehouseID: warehouseID,
		StoreID:     storeID,
		Status:      models.ShipmentStatusDraft,
	}
	if err := s.db.WithContext(ctx).Create(&shipment).Error; err != nil {
		return nil, fmt.Errorf("failed to create shipment: %w", err)
	}
	s.signal("shipment", shipment.ID, "created")
	return &shipment, nil
}

// AddAssetToShipment reserves an available asset for a shipment
func (s *Service) AddAssetToShipment(ctx context.Context, shipmentID, assetID uint) (*models.Asset, error) {
	var asset models.Asset
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		shipment, err := lockShipment(tx, shipmentID)
		if err != nil {
			return err
		}
		if shipment.Status == models.ShipmentStatusShipped {
			return fmt.Errorf("shipment %d already shipped: %w", shipmentID, ErrInvalidTransition)
		}

		if err := lockAsset(tx, assetID, &asset); err != nil {
			return err
		}
		if !asset.ProcessStatus.CanTransitionTo(models.ProcessStatusReserved) {
			return transitionErr(&asset, models.ProcessStatusReserved)
		}

		updates := map[string]interface{}{
			"process_status": models.ProcessStatusReserved,
			"shipment_id":    shipmentID,
		}
		if err := tx.Model(&asset).Updates(updates).Error; err != nil {
			return err
		}
		return appendHistory(tx, &asset, "reserved")
	})
	if err != nil {
		return nil, err
	}

	s.signal("asset", assetID, "updated")
	return &asset, nil
}

// MarkShipmentShipped moves the shipment to SHIPPED and every contained
// asset RESERVED -> IN_TRANSIT in one batch, then opens the pending
// delivery if a destination store is set
func (s *Service) MarkShipmentShipped(ctx context.Context, shipmentID uint) (*models.Shipment, error) {
	var shipment *models.Shipment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		shipment, err = lockShipment(tx, shipmentID)
		if err != nil {
			return err
		}
		if shipment.Status == models.ShipmentStatusShipped {
			return fmt.Errorf("shipment %d already shipped: %w", shipmentID, ErrInvalidTransition)
		}

		var shipmentAssets []models.Asset
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("shipment_id = ?", shipmentID).Find(&shipmentAssets).Error; err != nil {
			return err
		}

		for i := range shipmentAssets {
			asset := &shipmentAssets[i]
			if !asset.ProcessStatus.CanTransitionTo(models.ProcessStatusInTransit) {
				return transitionErr(asset, models.ProcessStatusInTransit)
			}
		}

		// One batch update for the whole shipment
		if len(shipmentAssets) > 0 {
			if err := tx.Model(&models.Asset{}).
				Where("shipment_id = ?", shipmentID).
				Update("process_status", models.ProcessStatusInTransit).Error; err != nil {
				return err
			}
			for i := range shipmentAssets {
				if err := appendHistory(tx, &shipmentAssets[i], "shipped"); err != nil {
					return err
				}
			}
		}

		now := time.Now()
		if err := tx.Model(shipment).Updates(map[string]interface{}{
			"status":     models.ShipmentStatusShipped,
			"shipped_at": &now,
		}).Error; err != nil {
			return err
		}

		if shipment.StoreID != nil {
			delivery := models.Delivery{
				ShipmentID: shipment.ID,
				StoreID:    *shipment.StoreID,
				Status:     models.DeliveryStatusPending,
			}
			if err := tx.Create(&delivery).Error; err != nil {
				return fmt.Errorf("failed to open delivery: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.signal("shipment", shipmentID, "shipped")
	return shipment, nil
}

// MarkDeliveryDelivered confirms arrival at the store. Asset status
// (IN_TRANSIT -> DELIVERED), the location reassignment from warehouse to
// store and the delivery's own status are applied together.
func (s *Service) MarkDeliveryDelivered(ctx context.Context, deliveryID uint, deliveredBy string) (*models.Delivery, error) {
	var delivery models.Delivery
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&delivery, deliveryID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("delivery %d: %w", deliveryID, ErrNotFound)
		}
		if err != nil {
			return err
		}
		if delivery.Status == models.DeliveryStatusDelivered {
			return fmt.Errorf("delivery %d already delivered: %w", deliveryID, ErrInvalidTransition)
		}

		var deliveryAssets []models.Asset
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("shipment_id = ?", delivery.ShipmentID).Find(&deliveryAssets).Error; err != nil {
			return err
		}

		for i := range deliveryAssets {
			asset := &deliveryAssets[i]
			if !asset.ProcessStatus.CanTransitionTo(models.ProcessStatusDelivered) {
				return transitionErr(asset, models.ProcessStatusDelivered)
			}

			// Status and location move together: warehouse and bin
			// references are cleared in the same write
			updates := map[string]interface{}{
				"process_status": models.ProcessStatusDelivered,
				"warehouse_id":   nil,
				"bin_code":       "",
				"store_id":       delivery.StoreID,
			}
			if err := tx.Model(asset).Updates(updates).Error; err != nil {
				return err
			}
			asset.StoreID = &delivery.StoreID
			asset.WarehouseID = nil
			if err := appendHistory(tx, asset, "delivered"); err != nil {
				return err
			}
		}

		now := time.Now()
		return tx.Model(&delivery).Updates(map[string]interface{}{
			"status":       models.DeliveryStatusDelivered,
			"delivered_at": &now,
			"delivered_by": deliveredBy,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	s.signal("delivery", deliveryID, "delivered")
	return &delivery, nil
}

// ConfirmInstalled records on-site installation of a delivered asset
func (s *Service) ConfirmInstalled(ctx context.Context, assetID uint) (*models.Asset, error) {
	return s.transitionAsset(ctx, assetID, models.ProcessStatusInstalled, "installed")
}

// WriteOff decommissions an asset. Terminal; reachable from any state.
func (s *Service) WriteOff(ctx context.Context, assetID uint) (*models.Asset, error) {
	return s.transitionAsset(ctx, assetID, models.ProcessStatusDecommissioned, "written_off")
}

// transitionAsset applies a single-asset transition with its audit record
func (s *Service) transitionAsset(ctx context.Context, assetID uint, next models.ProcessStatus, action string) (*models.Asset, error) {
	var asset models.Asset
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockAsset(tx, assetID, &asset); err != nil {
			return err
		}
		if !asset.ProcessStatus.CanTransitionTo(next) {
			return transitionErr(&asset, next)
		}
		if err := tx.Model(&asset).Update("process_status", next).Error; err != nil {
			return err
		}
		return appendHistory(tx, &asset, action)
	})
	if err != nil {
		return nil, err
	}

	s.signal("asset", assetID, "updated")
	return &asset, nil
}

func lockShipment(tx *gorm.DB, shipmentID uint) (*models.Shipment, error) {
	var shipment models.Shipment
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&shipment, shipmentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("shipment %d: %w", shipmentID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &shipment, nil
}

func lockAsset(tx *gorm.DB, assetID uint, asset *models.Asset) error {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(asset, assetID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("asset %d: %w", assetID, ErrNotFound)
	}
	return err
}

func transitionErr(asset *models.Asset, next models.ProcessStatus) error {
	return fmt.Errorf("asset %s: %s -> %s: %w",
		asset.SerialNumber, asset.ProcessStatus, next, ErrInvalidTransition)
}

// appendHistory writes the immutable audit record for a transition
func appendHistory(tx *gorm.DB, asset *models.Asset, action string) error {
	entry := models.AssetHistory{
		AssetID:  asset.ID,
		Action:   action,
		Location: locationOf(asset),
	}
	return tx.Create(&entry).Error
}

// locationOf renders the asset's current location for the audit trail
func locationOf(asset *models.Asset) string {
	switch {
	case asset.WarehouseID != nil:
		return fmt.Sprintf("warehouse:%d", *asset.WarehouseID)
	case asset.StoreID != nil:
		return fmt.Sprintf("store:%d", *asset.StoreID)
	default:
		return ""
	}
}

// signal broadcasts a refetch hint; best-effort
func (s *Service) signal(entity string, id uint, event string) {
	if s.hub != nil {
		s.hub.Broadcast(entity, id, event)
	}
}
