package models

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a catalog product (consumables and serialized equipment)
type Product struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	SKU         string         `gorm:"unique;not null" json:"sku"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description,omitempty"`
	Category    string         `json:"category,omitempty"`
	Barcode     string         `gorm:"index" json:"barcode,omitempty"`
	IsSerial    bool           `gorm:"default:false" json:"isSerial"` // Tracked per unit as Assets
	IsActive    bool           `gorm:"default:true" json:"isActive"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for Product model
func (Product) TableName() string {
	return "products"
}

// Warehouse represents a warehouse in the system
type Warehouse struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null;unique" json:"name"`
	Location  string         `json:"location,omitempty"`
	IsActive  bool           `gorm:"default:true" json:"isActive"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for Warehouse model
func (Warehouse) TableName() string {
	return "warehouses"
}

// Store represents a retail store receiving deliveries
type Store struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null;unique" json:"name"`
	Address   string         `json:"address,omitempty"`
	IsActive  bool           `gorm:"default:true" json:"isActive"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for Store model
func (Store) TableName() string {
	return "stores"
}

// StockItem is the per-warehouse, per-product quantity record.
// Quantity is only incremented by a completed receiving session or
// decremented by a committed shipment, never by in-progress state.
type StockItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProductID   uint      `gorm:"not null;uniqueIndex:idx_stock_product_warehouse" json:"productId"`
	WarehouseID uint      `gorm:"not null;uniqueIndex:idx_stock_product_warehouse" json:"warehouseId"`
	Quantity    int       `gorm:"default:0" json:"quantity"`
	Reserved    int       `gorm:"default:0" json:"reserved"`
	MinQuantity int       `gorm:"default:0" json:"minQuantity"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Relations
	Product   *Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Warehouse *Warehouse `gorm:"foreignKey:WarehouseID" json:"warehouse,omitempty"`
}

// TableName specifies the table name for StockItem model
func (StockItem) TableName() string {
	return "stock_items"
}
