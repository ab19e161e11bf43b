package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/xelth-com/eckrecongo/internal/models"
	"github.com/xelth-com/eckrecongo/internal/notify"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service owns the reconciliation engine: session lifecycle, the scan
// ledger and the stock commit transaction. All quantity aggregation is a
// recompute over the ledger, never an incremental counter update.
type Service struct {
	db  *gorm.DB
	hub *notify.Hub
}

// NewService creates a reconciliation service. hub may be nil (tests,
// batch tools); notifications are best-effort either way.
func NewService(db *gorm.DB, hub *notify.Hub) *Service {
	return &Service{db: db, hub: hub}
}

// NewSessionItem is one expected line in a session creation request,
// the normalized shape produced by the invoice parser or manual entry
type NewSessionItem struct {
	Name             string `json:"name"`
	SKU              string `json:"sku,omitempty"`
	ExpectedQuantity int    `json:"expectedQuantity"`
	ProductID        *uint  `json:"productId,omitempty"`
}

// CreateSessionInput carries everything needed to open a session
type CreateSessionInput struct {
	WarehouseID uint                 `json:"warehouseId"`
	Kind        models.SessionKind   `json:"kind"`
	Source      models.SessionSource `json:"source,omitempty"`
	Counterpart string               `json:"counterpart,omitempty"`
	Items       []NewSessionItem     `json:"items"`
	Metadata    datatypes.JSON       `json:"metadata,omitempty"`
}

// CreateSession opens a new draft session with its expected items
func (s *Service) CreateSession(ctx context.Context, in CreateSessionInput) (*models.Session, error) {
	if in.Kind != models.SessionKindReceiving && in.Kind != models.SessionKindShipping {
		return nil, fmt.Errorf("unknown session kind %q", in.Kind)
	}
	if in.Source == "" {
		in.Source = models.SessionSourceManual
	}

	session := models.Session{
		WarehouseID: in.WarehouseID,
		Counterpart: in.Counterpart,
		Kind:        in.Kind,
		Source:      in.Source,
		Status:      models.SessionStatusDraft,
		Metadata:    in.Metadata,
	}
	for _, item := range in.Items {
		session.Items = append(session.Items, models.SessionItem{
			Name:             item.Name,
			SKU:              item.SKU,
			ExpectedQuantity: item.ExpectedQuantity,
			ProductID:        item.ProductID,
		})
	}

	if err := s.db.WithContext(ctx).Create(&session).Error; err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.signal("session", session.ID, "created")
	return s.GetSession(ctx, session.ID)
}

// GetSession loads a session with items and their scan ledger
func (s *Service) GetSession(ctx context.Context, sessionID uint) (*models.Session, error) {
	var session models.Session
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("session_items.id") }).
		Preload("Items.Scans", func(db *gorm.DB) *gorm.DB { return db.Order("scan_events.id") }).
		First(&session, sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("session %d: %w", sessionID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return &session, nil
}

// ListSessions returns sessions, optionally filtered by kind, newest first
func (s *Service) ListSessions(ctx context.Context, kind models.SessionKind) ([]models.Session, error) {
	q := s.db.WithContext(ctx).Preload("Items").Order("created_at DESC")
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	var sessions []models.Session
	if err := q.Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

// RecordScan appends one ledger entry for an item and recomputes the
// item's scanned quantity from the ledger. The first scan moves a draft
// session to IN_PROGRESS. Delta may be negative (correction); no range
// validation is imposed at ledger level.
func (s *Service) RecordScan(ctx context.Context, sessionID, itemID uint, delta int, isManual bool, code string) (*models.Session, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		session, err := lockSession(tx, sessionID)
		if err != nil {
			return err
		}
		if session.Status.IsTerminal() {
			return fmt.Errorf("session %d: %w", sessionID, ErrSessionFinalized)
		}

		var item models.SessionItem
		err = tx.Where("id = ? AND session_id = ?", itemID, sessionID).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("item %d in session %d: %w", itemID, sessionID, ErrNotFound)
		}
		if err != nil {
			return err
		}

		event := models.ScanEvent{
			ItemID:   item.ID,
			Delta:    delta,
			IsManual: isManual,
			Code:     code,
		}
		if err := tx.Create(&event).Error; err != nil {
			return fmt.Errorf("failed to record scan: %w", err)
		}

		if err := recomputeScanned(tx, item.ID); err != nil {
			return err
		}

		if session.Status == models.SessionStatusDraft {
			if err := tx.Model(session).Update("status", models.SessionStatusInProgress).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.signal("session", sessionID, "updated")
	return s.GetSession(ctx, sessionID)
}

// RemoveScan deletes one ledger entry and recomputes the item's scanned
// quantity as the sum of the remaining entries
func (s *Service) RemoveScan(ctx context.Context, sessionID, itemID, scanID uint) (*models.Session, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		session, err := lockSession(tx, sessionID)
		if err != nil {
			return err
		}
		if session.Status.IsTerminal() {
			return fmt.Errorf("session %d: %w", sessionID, ErrSessionFinalized)
		}

		var item models.SessionItem
		err = tx.Where("id = ? AND session_id = ?", itemID, sessionID).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("item %d in session %d: %w", itemID, sessionID, ErrNotFound)
		}
		if err != nil {
			return err
		}

		res := tx.Where("id = ? AND item_id = ?", scanID, itemID).Delete(&models.ScanEvent{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("scan %d on item %d: %w", scanID, itemID, ErrNotFound)
		}

		return recomputeScanned(tx, item.ID)
	})
	if err != nil {
		return nil, err
	}

	s.signal("session", sessionID, "updated")
	return s.GetSession(ctx, sessionID)
}

// DeleteSession removes a session with all its items and scan events.
// Finalized sessions are protected: their stock/asset effects are already
// committed and must not be silently discarded.
func (s *Service) DeleteSession(ctx context.Context, sessionID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		session, err := lockSession(tx, sessionID)
		if err != nil {
			return err
		}
		if session.Status.IsTerminal() {
			return fmt.Errorf("session %d: %w", sessionID, ErrSessionFinalized)
		}

		var itemIDs []uint
		if err := tx.Model(&models.SessionItem{}).Where("session_id = ?", sessionID).Pluck("id", &itemIDs).Error; err != nil {
			return err
		}
		if len(itemIDs) > 0 {
			if err := tx.Where("item_id IN ?", itemIDs).Delete(&models.ScanEvent{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("session_id = ?", sessionID).Delete(&models.SessionItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(session).Error
	})
	if err != nil {
		return err
	}

	s.signal("session", sessionID, "deleted")
	return nil
}

// lockSession loads the session row under FOR UPDATE so that concurrent
// completions, scans and deletes serialize on it
func lockSession(tx *gorm.DB, sessionID uint) (*models.Session, error) {
	var session models.Session
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&session, sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("session %d: %w", sessionID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// recomputeScanned derives an item's scanned quantity as the sum over its
// surviving ledger entries, inside the caller's transaction. Trusting a
// cached counter would drift after partial failures; the ledger is the
// only source of truth.
func recomputeScanned(tx *gorm.DB, itemID uint) error {
	var total int
	err := tx.Model(&models.ScanEvent{}).
		Where("item_id = ?", itemID).
		Select("COALESCE(SUM(delta), 0)").
		Scan(&total).Error
	if err != nil {
		return fmt.Errorf("failed to aggregate scans: %w", err)
	}
	return tx.Model(&models.SessionItem{}).Where("id = ?", itemID).
		Update("scanned_quantity", total).Error
}

// signal broadcasts a refetch hint; never blocks, never fails the mutation
func (s *Service) signal(entity string, id uint, event string) {
	if s.hub != nil {
		s.hub.Broadcast(entity, id, event)
	}
}
