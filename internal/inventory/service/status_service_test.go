package service

import (
	"testing"

	"github.com/ngocnhu100/keycloak-poc/internal/inventory/entity"
)

func TestTransitionAllowed(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{entity.LotStatusQuarantine, entity.LotStatusApproved, true},
		{entity.LotStatusQuarantine, entity.LotStatusRejected, true},
		{entity.LotStatusApproved, entity.LotStatusInUse, true},
		{entity.LotStatusInUse, entity.LotStatusDepleted, true},
		// Note-only updates keep the current status.
		{entity.LotStatusQuarantine, entity.LotStatusQuarantine, true},
		{entity.LotStatusRejected, entity.LotStatusRejected, true},
		// Forbidden edges.
		{entity.LotStatusQuarantine, entity.LotStatusInUse, false},
		{entity.LotStatusQuarantine, entity.LotStatusDepleted, false},
		{entity.LotStatusApproved, entity.LotStatusQuarantine, false},
		{entity.LotStatusApproved, entity.LotStatusRejected, false},
		{entity.LotStatusApproved, entity.LotStatusDepleted, false},
		{entity.LotStatusInUse, entity.LotStatusApproved, false},
		// Terminal states.
		{entity.LotStatusRejected, entity.LotStatusApproved, false},
		{entity.LotStatusRejected, entity.LotStatusQuarantine, false},
		{entity.LotStatusDepleted, entity.LotStatusInUse, false},
		{entity.LotStatusDepleted, entity.LotStatusApproved, false},
	}
	for _, tc := range cases {
		if got := TransitionAllowed(tc.from, tc.to); got != tc.want {
			t.Errorf("TransitionAllowed(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestRolesForTransition(t *testing.T) {
	roles := RolesForTransition(entity.LotStatusQuarantine, entity.LotStatusApproved)
	if len(roles) != 1 || roles[0] != RoleQualityControl {
		t.Errorf("Quarantine->Approved roles = %v, want [%s]", roles, RoleQualityControl)
	}

	roles = RolesForTransition(entity.LotStatusApproved, entity.LotStatusInUse)
	if len(roles) != 2 {
		t.Errorf("Approved->In Use roles = %v, want production and inventory_manager", roles)
	}

	if RolesForTransition(entity.LotStatusRejected, entity.LotStatusApproved) != nil {
		t.Error("Expected no roles for a forbidden transition")
	}
}

func TestActorHasRole(t *testing.T) {
	qc := Actor{ID: "u1", Roles: []string{RoleQualityControl}}
	if !qc.HasRole(RoleQualityControl) {
		t.Error("Expected quality_control actor to hold its own role")
	}
	if qc.HasRole(RoleProduction, RoleInventoryManager) {
		t.Error("Expected quality_control actor to fail a production check")
	}

	admin := Actor{ID: "u2", Roles: []string{RoleAdmin}}
	if !admin.HasRole(RoleQualityControl) {
		t.Error("Expected admin to pass every role check")
	}

	viewer := Actor{ID: "u3", Roles: []string{RoleViewer}}
	if viewer.HasRole(RolesForTransition(entity.LotStatusQuarantine, entity.LotStatusApproved)...) {
		t.Error("Expected viewer to fail the QC transition check")
	}
}
