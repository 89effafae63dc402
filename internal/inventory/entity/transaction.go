package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType values. Receipt is minted only together with its lot;
// the other four arrive through the transaction endpoint.
const (
	TxTypeReceipt  = "Receipt"
	TxTypeDispense = "Dispense"
	TxTypeAdjust   = "Adjust"
	TxTypeReturn   = "Return"
	TxTypeWaste    = "Waste"
)

// TransactionTypes lists the five recognized ledger entry types.
var TransactionTypes = []string{
	TxTypeReceipt,
	TxTypeDispense,
	TxTypeAdjust,
	TxTypeReturn,
	TxTypeWaste,
}

// ValidTransactionType reports whether t is one of the recognized types.
func ValidTransactionType(t string) bool {
	for _, v := range TransactionTypes {
		if v == t {
			return true
		}
	}
	return false
}

// InventoryTransaction is an immutable ledger entry recording a
// quantity-affecting event against a lot. Quantity carries the signed
// effect on availability: inbound positive, outbound negative.
type InventoryTransaction struct {
	TransactionID     int64           `json:"transaction_id" gorm:"primaryKey;autoIncrement"`
	LotNumber         string          `json:"lot_number" gorm:"size:20;not null;index"`
	TransactionType   string          `json:"transaction_type" gorm:"size:20;not null"`
	Quantity          decimal.Decimal `json:"quantity" gorm:"type:decimal(10,3);not null"`
	TransactionDate   time.Time       `json:"transaction_date" gorm:"autoCreateTime"`
	PerformedBy       string          `json:"performed_by" gorm:"size:36;not null"`
	Reason            string          `json:"reason,omitempty" gorm:"size:200"`
	ReferenceDocument string          `json:"reference_document,omitempty" gorm:"size:50"`
}

func (InventoryTransaction) TableName() string {
	return "inventory_transactions"
}
