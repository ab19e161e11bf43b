package models

import (
	"time"

	"gorm.io/gorm"
)

// ProcessStatus defines an asset's position in its physical lifecycle
type ProcessStatus string

const (
	ProcessStatusAvailable      ProcessStatus = "AVAILABLE"      // In warehouse stock
	ProcessStatusReserved       ProcessStatus = "RESERVED"       // Added to a shipment
	ProcessStatusInTransit      ProcessStatus = "IN_TRANSIT"     // Shipment marked shipped
	ProcessStatusDelivered      ProcessStatus = "DELIVERED"      // Arrived at store
	ProcessStatusInstalled      ProcessStatus = "INSTALLED"      // Installation confirmed on site
	ProcessStatusDecommissioned ProcessStatus = "DECOMMISSIONED" // Written off (terminal)
)

// processTransitions is the directed lifecycle graph. Transitions are
// monotonic; there is no path back out of DECOMMISSIONED.
var processTransitions = map[ProcessStatus][]ProcessStatus{
	ProcessStatusAvailable: {ProcessStatusReserved, ProcessStatusDecommissioned},
	ProcessStatusReserved:  {ProcessStatusInTransit, ProcessStatusDecommissioned},
	ProcessStatusInTransit: {ProcessStatusDelivered, ProcessStatusDecommissioned},
	ProcessStatusDelivered: {ProcessStatusInstalled, ProcessStatusDecommissioned},
	ProcessStatusInstalled: {ProcessStatusDecommissioned},
}

// CanTransitionTo reports whether the lifecycle graph permits moving to next
func (s ProcessStatus) CanTransitionTo(next ProcessStatus) bool {
	for _, allowed := range processTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Asset is a serialized, individually tracked unit of equipment.
// It has exactly one current location: WarehouseID xor StoreID.
type Asset struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	SerialNumber  string        `gorm:"uniqueIndex;not null" json:"serialNumber"`
	ProductID     uint          `gorm:"not null;index" json:"productId"`
	Condition     string        `gorm:"default:'new'" json:"condition"` // new | used | damaged
	ProcessStatus ProcessStatus `gorm:"default:AVAILABLE;index" json:"processStatus"`
	WarehouseID   *uint         `gorm:"index" json:"warehouseId,omitempty"`
	StoreID       *uint         `gorm:"index" json:"storeId,omitempty"`
	BinCode       string        `json:"binCode,omitempty"` // Rack/bin reference inside the warehouse
	ShipmentID    *uint         `gorm:"index" json:"shipmentId,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Product   *Product       `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Warehouse *Warehouse     `gorm:"foreignKey:WarehouseID" json:"warehouse,omitempty"`
	Store     *Store         `gorm:"foreignKey:StoreID" json:"store,omitempty"`
	History   []AssetHistory `gorm:"foreignKey:AssetID" json:"history,omitempty"`
}

// TableName specifies the table name for Asset model
func (Asset) TableName() string {
	return "assets"
}

// AssetHistory is an append-only audit record of an asset lifecycle step.
// Rows are never updated or deleted.
type AssetHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AssetID   uint      `gorm:"not null;index" json:"assetId"`
	Action    string    `gorm:"not null" json:"action"` // reserved, shipped, delivered, installed, written_off
	Location  string    `json:"location,omitempty"`     // Human-readable location at the time of the action
	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for AssetHistory model
func (AssetHistory) TableName() string {
	return "asset_history"
}
