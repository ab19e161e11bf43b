package reconcile

import (
	"testing"

	"github.com/xelth-com/eckrecongo/internal/models"
)

func sessionWith(status models.SessionStatus, items ...models.SessionItem) *models.Session {
	return &models.Session{Status: status, Items: items}
}

func TestComputeFlags_NoDiscrepancy(t *testing.T) {
	session := sessionWith(models.SessionStatusInProgress,
		models.SessionItem{ExpectedQuantity: 10, ScannedQuantity: 10},
	)

	flags := ComputeFlags(session)
	if flags.HasExcess {
		t.Error("Exact count should not flag excess")
	}
	if flags.HasShortage {
		t.Error("Exact count should not flag shortage")
	}
}

func TestComputeFlags_ExcessWhileInProgress(t *testing.T) {
	// Over-scanning is visible immediately, before completion
	session := sessionWith(models.SessionStatusInProgress,
		models.SessionItem{ExpectedQuantity: 10, ScannedQuantity: 13},
	)

	flags := ComputeFlags(session)
	if !flags.HasExcess {
		t.Error("Scanned > expected should flag excess while in progress")
	}
	if flags.HasShortage {
		t.Error("Shortage must never be flagged while in progress")
	}
}

func TestComputeFlags_NoShortageWhileInProgress(t *testing.T) {
	// An item below its expected count is not done yet, not short
	session := sessionWith(models.SessionStatusInProgress,
		models.SessionItem{ExpectedQuantity: 10, ScannedQuantity: 6},
	)

	flags := ComputeFlags(session)
	if flags.HasShortage {
		t.Error("Shortage must never be flagged while in progress")
	}
	if flags.HasExcess {
		t.Error("Undercount should not flag excess")
	}
}

func TestComputeFlags_ShortageAtCompletion(t *testing.T) {
	session := sessionWith(models.SessionStatusCompleted,
		models.SessionItem{ExpectedQuantity: 10, ScannedQuantity: 6},
	)

	flags := ComputeFlags(session)
	if !flags.HasShortage {
		t.Error("Scanned < expected should flag shortage once completed")
	}
	if flags.HasExcess {
		t.Error("Undercount should not flag excess")
	}
}

func TestComputeFlags_ShippedCountsAsFinalized(t *testing.T) {
	session := sessionWith(models.SessionStatusShipped,
		models.SessionItem{ExpectedQuantity: 5, ScannedQuantity: 3},
	)

	if flags := ComputeFlags(session); !flags.HasShortage {
		t.Error("SHIPPED is terminal; shortage should be flagged")
	}
}

func TestComputeFlags_MixedItems(t *testing.T) {
	session := sessionWith(models.SessionStatusCompleted,
		models.SessionItem{ExpectedQuantity: 10, ScannedQuantity: 10},
		models.SessionItem{ExpectedQuantity: 10, ScannedQuantity: 12},
		models.SessionItem{ExpectedQuantity: 10, ScannedQuantity: 7},
	)

	flags := ComputeFlags(session)
	if !flags.HasExcess || !flags.HasShortage {
		t.Errorf("Expected both flags set, got %+v", flags)
	}
}

func TestComputeFlags_DraftEmptySession(t *testing.T) {
	session := sessionWith(models.SessionStatusDraft)

	flags := ComputeFlags(session)
	if flags.HasExcess || flags.HasShortage {
		t.Errorf("Empty draft session should have no flags, got %+v", flags)
	}
}
