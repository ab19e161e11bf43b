package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SessionStatus defines the canonical lifecycle status of a session.
// All comparisons and transitions operate on this type, never on raw strings.
type SessionStatus string

const (
	SessionStatusDraft      SessionStatus = "DRAFT"       // Created, no scans yet
	SessionStatusInProgress SessionStatus = "IN_PROGRESS" // At least one scan recorded
	SessionStatusCompleted  SessionStatus = "COMPLETED"   // Receiving committed to stock (terminal)
	SessionStatusShipped    SessionStatus = "SHIPPED"     // Shipping committed (terminal)
)

// IsTerminal reports whether the status permits no further mutation
func (s SessionStatus) IsTerminal() bool {
	return s == SessionStatusCompleted || s == SessionStatusShipped
}

// SessionKind defines the physical direction of a session
type SessionKind string

const (
	SessionKindReceiving SessionKind = "RECEIVING" // Goods arriving into a warehouse
	SessionKindShipping  SessionKind = "SHIPPING"  // Goods picked and leaving a warehouse
)

// SessionSource defines how the expected item list was produced
type SessionSource string

const (
	SessionSourceManual SessionSource = "MANUAL" // Entered by hand
	SessionSourceFile   SessionSource = "FILE"   // Derived from an uploaded invoice/packing list
)

// Session represents one physical receiving or shipping operation
type Session struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Number      string         `gorm:"uniqueIndex;not null" json:"number"`
	WarehouseID uint           `gorm:"not null;index" json:"warehouseId"`
	Counterpart string         `gorm:"index" json:"counterpart"` // Supplier name or destination
	Kind        SessionKind    `gorm:"not null;index" json:"kind"`
	Source      SessionSource  `gorm:"default:MANUAL" json:"source"`
	Status      SessionStatus  `gorm:"default:DRAFT;index" json:"status"`
	Metadata    datatypes.JSON `json:"metadata"` // Source file name, free-form import info
	CompletedAt *time.Time     `json:"completedAt,omitempty"`
	CompletedBy string         `json:"completedBy,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Warehouse *Warehouse    `gorm:"foreignKey:WarehouseID" json:"warehouse,omitempty"`
	Items     []SessionItem `gorm:"foreignKey:SessionID" json:"items,omitempty"`
}

// TableName specifies the table name for Session model
func (Session) TableName() string {
	return "sessions"
}

// BeforeCreate generates a session number before creating
func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.Number == "" {
		prefix := "RCV"
		if s.Kind == SessionKindShipping {
			prefix = "SHP"
		}
		s.Number = generateNumber(prefix)
	}
	return nil
}

// SessionItem is one expected line within a session. ExpectedQuantity is
// fixed at creation; ScannedQuantity is derived from the scan ledger and
// never written directly by callers.
type SessionItem struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	SessionID        uint   `gorm:"not null;index" json:"sessionId"`
	Name             string `gorm:"not null" json:"name"`
	SKU              string `gorm:"index" json:"sku,omitempty"`
	ProductID        *uint  `gorm:"index" json:"productId,omitempty"` // nil while unmapped to the catalog
	ExpectedQuantity int    `gorm:"not null" json:"expectedQuantity"`
	ScannedQuantity  int    `gorm:"default:0" json:"scannedQuantity"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Product *Product    `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Scans   []ScanEvent `gorm:"foreignKey:ItemID" json:"scans,omitempty"`
}

// TableName specifies the table name for SessionItem model
func (SessionItem) TableName() string {
	return "session_items"
}

// ScanEvent is one immutable ledger entry against a session item.
// Invariant: item.ScannedQuantity == SUM(delta) over its surviving events.
type ScanEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ItemID    uint      `gorm:"not null;index" json:"itemId"`
	Delta     int       `gorm:"not null" json:"delta"` // Signed; negative entries are corrections
	IsManual  bool      `gorm:"default:false" json:"isManual"`
	Code      string    `json:"code,omitempty"` // Raw scanned barcode, if any
	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for ScanEvent model
func (ScanEvent) TableName() string {
	return "scan_events"
}
