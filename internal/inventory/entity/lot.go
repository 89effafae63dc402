package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LotStatus values
const (
	LotStatusQuarantine = "Quarantine"
	LotStatusApproved   = "Approved"
	LotStatusRejected   = "Rejected"
	LotStatusInUse      = "In Use"
	LotStatusDepleted   = "Depleted"
)

// LotStatuses lists the five recognized lot statuses.
var LotStatuses = []string{
	LotStatusQuarantine,
	LotStatusApproved,
	LotStatusRejected,
	LotStatusInUse,
	LotStatusDepleted,
}

// ValidLotStatus reports whether s is one of the recognized statuses.
func ValidLotStatus(s string) bool {
	for _, v := range LotStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// InventoryLot is a single physical receipt of one material. Quantities are
// mutated only through the ledger service; quantity_available always stays
// within [0, quantity_received].
type InventoryLot struct {
	LotNumber         string          `json:"lot_number" gorm:"primaryKey;size:20"`
	MaterialID        string          `json:"material_id" gorm:"size:20;not null;index"`
	QuantityReceived  decimal.Decimal `json:"quantity_received" gorm:"type:decimal(10,3);not null"`
	QuantityAvailable decimal.Decimal `json:"quantity_available" gorm:"type:decimal(10,3);not null"`
	LotStatus         string          `json:"lot_status" gorm:"size:20;not null;default:Quarantine;index"`
	Supplier          string          `json:"supplier,omitempty" gorm:"size:100"`
	ManufacturerLot   string          `json:"manufacturer_lot,omitempty" gorm:"size:50"`
	ExpiryDate        time.Time       `json:"expiry_date" gorm:"type:date;not null"`
	ReceivedDate      time.Time       `json:"received_date" gorm:"autoCreateTime;index"`
	StorageLocation   string          `json:"storage_location,omitempty" gorm:"size:50"`
	Notes             string          `json:"notes,omitempty" gorm:"type:text"`
	CreatedBy         string          `json:"created_by,omitempty" gorm:"size:50"`
	ModifiedDate      time.Time       `json:"modified_date" gorm:"autoUpdateTime"`

	Material *Material `json:"material,omitempty" gorm:"foreignKey:MaterialID;references:MaterialID"`
}

func (InventoryLot) TableName() string {
	return "inventory_lots"
}
