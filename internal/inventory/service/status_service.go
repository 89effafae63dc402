package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ngocnhu100/keycloak-poc/internal/inventory/entity"
	"github.com/ngocnhu100/keycloak-poc/internal/inventory/repository"
	"go.uber.org/zap"
)

// Roles recognized by the authorization gate.
const (
	RoleAdmin            = "admin"
	RoleInventoryManager = "inventory_manager"
	RoleQualityControl   = "quality_control"
	RoleProduction       = "production"
	RoleViewer           = "viewer"
)

type transitionKey struct {
	from string
	to   string
}

// allowedTransitions is the lot status graph. Quarantine exits through QC
// review; Rejected and Depleted are terminal. Absent keys are forbidden.
var allowedTransitions = map[transitionKey][]string{
	{entity.LotStatusQuarantine, entity.LotStatusApproved}: {RoleQualityControl},
	{entity.LotStatusQuarantine, entity.LotStatusRejected}: {RoleQualityControl},
	{entity.LotStatusApproved, entity.LotStatusInUse}:      {RoleProduction, RoleInventoryManager},
	{entity.LotStatusInUse, entity.LotStatusDepleted}:      {RoleProduction, RoleInventoryManager},
}

// noteRoles may annotate a lot in place without changing its status.
var noteRoles = []string{RoleInventoryManager, RoleQualityControl, RoleProduction}

// TransitionAllowed reports whether the status graph permits from -> to.
// A same-status "transition" is a note-only update and is always permitted
// by the graph.
func TransitionAllowed(from, to string) bool {
	if from == to {
		return true
	}
	_, ok := allowedTransitions[transitionKey{from, to}]
	return ok
}

// RolesForTransition returns the roles empowered for from -> to, not
// counting the implicit admin override.
func RolesForTransition(from, to string) []string {
	if from == to {
		return noteRoles
	}
	return allowedTransitions[transitionKey{from, to}]
}

// StatusService governs lot status changes.
type StatusService struct {
	lots   *repository.LotRepository
	logger *zap.Logger
}

func NewStatusService(lots *repository.LotRepository, logger *zap.Logger) *StatusService {
	return &StatusService{lots: lots, logger: logger}
}

// TransitionRequest is the payload for a status change.
type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// Transition moves a lot to a new status after validating the target value,
// the status graph and the actor's capability set. Notes, when present, are
// stored alongside the status. No ledger entry is written for a pure status
// change.
func (s *StatusService) Transition(ctx context.Context, lotNumber string, req TransitionRequest, actor Actor) (*entity.InventoryLot, error) {
	if !entity.ValidLotStatus(req.Status) {
		return nil, fmt.Errorf("%w: %q is not one of %v", ErrInvalidStatus, req.Status, entity.LotStatuses)
	}

	lot, err := s.lots.FindByNumber(ctx, lotNumber)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrLotNotFound, lotNumber)
		}
		return nil, err
	}

	if !TransitionAllowed(lot.LotStatus, req.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, lot.LotStatus, req.Status)
	}
	if !actor.HasRole(RolesForTransition(lot.LotStatus, req.Status)...) {
		return nil, fmt.Errorf("%w: %s -> %s requires %v", ErrForbidden,
			lot.LotStatus, req.Status, RolesForTransition(lot.LotStatus, req.Status))
	}

	if err := s.lots.UpdateStatus(ctx, lotNumber, req.Status, req.Notes); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrLotNotFound, lotNumber)
		}
		return nil, fmt.Errorf("update lot status: %w", err)
	}

	s.logger.Info("Lot status changed",
		zap.String("lot_number", lotNumber),
		zap.String("from", lot.LotStatus),
		zap.String("to", req.Status),
		zap.String("performed_by", actor.ID),
	)
	return s.lots.FindByNumber(ctx, lotNumber)
}
