package models

import "testing"

func TestProcessStatusTransitions(t *testing.T) {
	allowed := []struct {
		from, to ProcessStatus
	}{
		{ProcessStatusAvailable, ProcessStatusReserved},
		{ProcessStatusReserved, ProcessStatusInTransit},
		{ProcessStatusInTransit, ProcessStatusDelivered},
		{ProcessStatusDelivered, ProcessStatusInstalled},
		{ProcessStatusAvailable, ProcessStatusDecommissioned},
		{ProcessStatusInstalled, ProcessStatusDecommissioned},
	}
	for _, tc := range allowed {
		if !tc.from.CanTransitionTo(tc.to) {
			t.Errorf("%s -> %s should be allowed", tc.from, tc.to)
		}
	}

	forbidden := []struct {
		from, to ProcessStatus
	}{
		{ProcessStatusAvailable, ProcessStatusInTransit}, // No skipping
		{ProcessStatusAvailable, ProcessStatusDelivered},
		{ProcessStatusReserved, ProcessStatusAvailable}, // No regression
		{ProcessStatusDelivered, ProcessStatusInTransit},
		{ProcessStatusInstalled, ProcessStatusAvailable},
		{ProcessStatusDecommissioned, ProcessStatusAvailable}, // Terminal
		{ProcessStatusDecommissioned, ProcessStatusReserved},
	}
	for _, tc := range forbidden {
		if tc.from.CanTransitionTo(tc.to) {
			t.Errorf("%s -> %s should be forbidden", tc.from, tc.to)
		}
	}
}

func TestSessionStatusIsTerminal(t *testing.T) {
	if SessionStatusDraft.IsTerminal() {
		t.Error("DRAFT should not be terminal")
	}
	if SessionStatusInProgress.IsTerminal() {
		t.Error("IN_PROGRESS should not be terminal")
	}
	if !SessionStatusCompleted.IsTerminal() {
		t.Error("COMPLETED should be terminal")
	}
	if !SessionStatusShipped.IsTerminal() {
		t.Error("SHIPPED should be terminal")
	}
}
