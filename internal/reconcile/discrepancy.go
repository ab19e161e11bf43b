package reconcile

import (
	"github.com/xelth-com/eckrecongo/internal/models"
)

// Flags are the session-level discrepancy labels shown to operators
type Flags struct {
	HasExcess   bool `json:"hasExcess"`
	HasShortage bool `json:"hasShortage"`
}

// ComputeFlags classifies scanned vs expected quantities for a session.
//
// Excess is flagged at any lifecycle stage. Shortage is only defined once
// the session is finalized: while scanning is still going on, an item
// below its expected count is simply not done yet, not short.
func ComputeFlags(session *models.Session) Flags {
	var flags Flags
	finalized := session.Status.IsTerminal()

	for _, item := range session.Items {
		if item.ScannedQuantity > item.ExpectedQuantity {
			flags.HasExcess = true
		}
		if finalized && item.ScannedQuantity < item.ExpectedQuantity {
			flags.HasShortage = true
		}
	}
	return flags
}
