package models

import (
	"time"

	"gorm.io/gorm"
)

// ShipmentStatus defines possible shipment statuses
type ShipmentStatus string

const (
	ShipmentStatusDraft   ShipmentStatus = "DRAFT"   // Being assembled
	ShipmentStatusPicking ShipmentStatus = "PICKING" // Assets being pulled from bins
	ShipmentStatusPacked  ShipmentStatus = "PACKED"  // Ready to leave
	ShipmentStatusShipped ShipmentStatus = "SHIPPED" // Left the warehouse (terminal)
)

// Shipment groups assets and/or bulk quantities moving out of a warehouse.
// Marking it shipped drives every contained asset RESERVED -> IN_TRANSIT
// in one batch update.
type Shipment struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Number      string         `gorm:"uniqueIndex;not null" json:"number"`
	WarehouseID uint           `gorm:"not null;index" json:"warehouseId"`
	StoreID     *uint          `gorm:"index" json:"storeId,omitempty"`
	SessionID   *uint          `gorm:"index" json:"sessionId,omitempty"` // Shipping session that committed this shipment
	Status      ShipmentStatus `gorm:"default:DRAFT;index" json:"status"`
	ShippedAt   *time.Time     `json:"shippedAt,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Warehouse *Warehouse     `gorm:"foreignKey:WarehouseID" json:"warehouse,omitempty"`
	Store     *Store         `gorm:"foreignKey:StoreID" json:"store,omitempty"`
	Assets    []Asset        `gorm:"foreignKey:ShipmentID" json:"assets,omitempty"`
	Lines     []ShipmentLine `gorm:"foreignKey:ShipmentID" json:"lines,omitempty"`
}

// TableName specifies the table name for Shipment model
func (Shipment) TableName() string {
	return "shipments"
}

// BeforeCreate generates a shipment number before creating
func (s *Shipment) BeforeCreate(tx *gorm.DB) error {
	if s.Number == "" {
		s.Number = generateNumber("OUT")
	}
	return nil
}

// ShipmentLine records a bulk quantity committed out of stock by a
// shipping session (consumables, as opposed to serialized assets)
type ShipmentLine struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ShipmentID uint      `gorm:"not null;index" json:"shipmentId"`
	ProductID  uint      `gorm:"not null;index" json:"productId"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	CreatedAt  time.Time `json:"createdAt"`

	// Relations
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName specifies the table name for ShipmentLine model
func (ShipmentLine) TableName() string {
	return "shipment_lines"
}

// DeliveryStatus defines possible delivery statuses
type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "PENDING"   // In transit to the store
	DeliveryStatusDelivered DeliveryStatus = "DELIVERED" // Confirmed at the store (terminal)
)

// Delivery tracks the arrival of a shipment at a store. Marking it
// delivered drives contained assets IN_TRANSIT -> DELIVERED and relocates
// them to the store atomically with the delivery's own status write.
type Delivery struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ShipmentID  uint           `gorm:"uniqueIndex;not null" json:"shipmentId"`
	StoreID     uint           `gorm:"not null;index" json:"storeId"`
	Status      DeliveryStatus `gorm:"default:PENDING;index" json:"status"`
	DeliveredAt *time.Time     `json:"deliveredAt,omitempty"`
	DeliveredBy string         `json:"deliveredBy,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`

	// Relations
	Shipment *Shipment `gorm:"foreignKey:ShipmentID" json:"shipment,omitempty"`
	Store    *Store    `gorm:"foreignKey:StoreID" json:"store,omitempty"`
}

// TableName specifies the table name for Delivery model
func (Delivery) TableName() string {
	return "deliveries"
}
