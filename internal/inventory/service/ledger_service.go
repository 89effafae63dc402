package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/ngocnhu100/keycloak-poc/internal/inventory/entity"
	"github.com/ngocnhu100/keycloak-poc/internal/inventory/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// lotNumberAttempts bounds suffix re-rolls when a generated lot number
// collides with an existing row.
const lotNumberAttempts = 5

// Catalog resolves material ids for the ledger. Satisfied by MaterialService.
type Catalog interface {
	Lookup(ctx context.Context, materialID string) (*entity.Material, error)
}

// LedgerService creates lots with their paired Receipt entry and records
// subsequent quantity-affecting transactions. It is the only writer of lot
// quantities.
type LedgerService struct {
	lots    *repository.LotRepository
	txns    *repository.TransactionRepository
	catalog Catalog
	logger  *zap.Logger
}

func NewLedgerService(lots *repository.LotRepository, txns *repository.TransactionRepository, catalog Catalog, logger *zap.Logger) *LedgerService {
	return &LedgerService{lots: lots, txns: txns, catalog: catalog, logger: logger}
}

// ReceiveRequest is the payload for creating a lot (receiving).
type ReceiveRequest struct {
	MaterialID       string          `json:"material_id" binding:"required,max=20"`
	QuantityReceived decimal.Decimal `json:"quantity_received"`
	ExpiryDate       string          `json:"expiry_date" binding:"required"`
	Supplier         string          `json:"supplier" binding:"max=100"`
	ManufacturerLot  string          `json:"manufacturer_lot" binding:"max=50"`
	StorageLocation  string          `json:"storage_location" binding:"max=50"`
	Notes            string          `json:"notes"`
}

// Receive validates the request, resolves the material and atomically
// persists the new lot (status Quarantine, available = received) together
// with its Receipt ledger entry. On a lot-number collision the whole unit
// of work is retried with a fresh suffix.
func (s *LedgerService) Receive(ctx context.Context, req ReceiveRequest, actor Actor) (*entity.InventoryLot, error) {
	if actor.ID == "" {
		return nil, fmt.Errorf("%w: missing actor identity", ErrValidation)
	}
	if !req.QuantityReceived.IsPositive() {
		return nil, fmt.Errorf("%w: quantity_received must be positive", ErrValidation)
	}
	expiry, err := parseDate(req.ExpiryDate)
	if err != nil {
		return nil, fmt.Errorf("%w: expiry_date must be an ISO date", ErrValidation)
	}

	if _, err := s.catalog.Lookup(ctx, req.MaterialID); err != nil {
		return nil, err
	}

	now := time.Now()
	var lotNumber string
	for attempt := 0; attempt < lotNumberAttempts; attempt++ {
		lotNumber = newLotNumber(now)
		lot := &entity.InventoryLot{
			LotNumber:         lotNumber,
			MaterialID:        req.MaterialID,
			QuantityReceived:  req.QuantityReceived,
			QuantityAvailable: req.QuantityReceived,
			LotStatus:         entity.LotStatusQuarantine,
			Supplier:          req.Supplier,
			ManufacturerLot:   req.ManufacturerLot,
			ExpiryDate:        expiry,
			ReceivedDate:      now,
			StorageLocation:   req.StorageLocation,
			Notes:             req.Notes,
			CreatedBy:         actor.Username,
		}
		receipt := &entity.InventoryTransaction{
			TransactionType: entity.TxTypeReceipt,
			Quantity:        req.QuantityReceived,
			PerformedBy:     actor.ID,
			Reason:          "Lot received",
		}

		err = s.lots.CreateWithReceipt(ctx, lot, receipt)
		if err == nil {
			s.logger.Info("Lot received",
				zap.String("lot_number", lotNumber),
				zap.String("material_id", req.MaterialID),
				zap.String("quantity", req.QuantityReceived.String()),
				zap.String("performed_by", actor.ID),
			)
			return s.lots.FindByNumber(ctx, lotNumber)
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			s.logger.Warn("Lot number collision, retrying", zap.String("lot_number", lotNumber))
			continue
		}
		return nil, fmt.Errorf("create lot: %w", err)
	}
	return nil, fmt.Errorf("create lot: exhausted %d attempts for a unique lot number", lotNumberAttempts)
}

// TransactionRequest is the payload for recording a ledger entry against an
// existing lot. Quantity is the magnitude for Dispense/Return/Waste and the
// signed delta for Adjust.
type TransactionRequest struct {
	TransactionType   string          `json:"transaction_type" binding:"required"`
	Quantity          decimal.Decimal `json:"quantity"`
	Reason            string          `json:"reason" binding:"max=200"`
	ReferenceDocument string          `json:"reference_document" binding:"max=50"`
}

// RecordTransaction appends a Dispense/Adjust/Return/Waste entry and moves
// quantity_available accordingly, atomically with the append. The resulting
// availability must stay within [0, quantity_received]; requests that would
// leave that range are rejected before anything is written.
func (s *LedgerService) RecordTransaction(ctx context.Context, lotNumber string, req TransactionRequest, actor Actor) (*entity.InventoryTransaction, error) {
	if actor.ID == "" {
		return nil, fmt.Errorf("%w: missing actor identity", ErrValidation)
	}
	if !entity.ValidTransactionType(req.TransactionType) {
		return nil, fmt.Errorf("%w: unknown transaction_type %q", ErrValidation, req.TransactionType)
	}

	var effect decimal.Decimal
	switch req.TransactionType {
	case entity.TxTypeReceipt:
		// Receipts exist only as the paired first entry minted by Receive.
		return nil, fmt.Errorf("%w: Receipt entries are created with the lot", ErrValidation)
	case entity.TxTypeDispense, entity.TxTypeWaste:
		if !req.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
		}
		effect = req.Quantity.Neg()
	case entity.TxTypeReturn:
		if !req.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
		}
		effect = req.Quantity
	case entity.TxTypeAdjust:
		if req.Quantity.IsZero() {
			return nil, fmt.Errorf("%w: adjustment quantity must be non-zero", ErrValidation)
		}
		effect = req.Quantity
	}

	txn, err := s.lots.AppendTransaction(ctx, lotNumber, func(lot *entity.InventoryLot) (*entity.InventoryTransaction, error) {
		next := lot.QuantityAvailable.Add(effect)
		if next.IsNegative() {
			return nil, fmt.Errorf("%w: available %s, requested %s", ErrInsufficientQuantity,
				lot.QuantityAvailable.String(), effect.Abs().String())
		}
		if next.GreaterThan(lot.QuantityReceived) {
			return nil, fmt.Errorf("%w: availability cannot exceed received quantity %s",
				ErrValidation, lot.QuantityReceived.String())
		}
		lot.QuantityAvailable = next
		return &entity.InventoryTransaction{
			TransactionType:   req.TransactionType,
			Quantity:          effect,
			PerformedBy:       actor.ID,
			Reason:            req.Reason,
			ReferenceDocument: req.ReferenceDocument,
		}, nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrLotNotFound, lotNumber)
		}
		return nil, err
	}

	s.logger.Info("Transaction recorded",
		zap.String("lot_number", lotNumber),
		zap.String("type", req.TransactionType),
		zap.String("quantity", effect.String()),
		zap.String("performed_by", actor.ID),
	)
	return txn, nil
}

// LookupLot returns one lot with its material preloaded.
func (s *LedgerService) LookupLot(ctx context.Context, lotNumber string) (*entity.InventoryLot, error) {
	lot, err := s.lots.FindByNumber(ctx, lotNumber)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrLotNotFound, lotNumber)
		}
		return nil, err
	}
	return lot, nil
}

// ListLots returns lots newest first, optionally filtered by status and
// material.
func (s *LedgerService) ListLots(ctx context.Context, params repository.LotListParams) ([]entity.InventoryLot, error) {
	if params.Status != "" && !entity.ValidLotStatus(params.Status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, params.Status)
	}
	return s.lots.List(ctx, params)
}

// ListTransactions returns a lot's ledger entries in insertion order.
func (s *LedgerService) ListTransactions(ctx context.Context, lotNumber string) ([]entity.InventoryTransaction, error) {
	if _, err := s.LookupLot(ctx, lotNumber); err != nil {
		return nil, err
	}
	return s.txns.ListByLot(ctx, lotNumber)
}

// newLotNumber mints LOT-YYYYMMDD-NNNN. The four-digit suffix can collide;
// uniqueness is guaranteed by the primary key plus retry in Receive.
func newLotNumber(now time.Time) string {
	return fmt.Sprintf("LOT-%s-%04d", now.Format("20060102"), 1000+rand.Intn(9000))
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
