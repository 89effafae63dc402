package entity

import (
	"time"
)

// MaterialType values accepted for receivable materials
const (
	MaterialTypeAPI               = "API"
	MaterialTypeExcipient         = "Excipient"
	MaterialTypeDietarySupplement = "Dietary Supplement"
	MaterialTypeContainer         = "Container"
	MaterialTypeClosure           = "Closure"
	MaterialTypeProcessChemical   = "Process Chemical"
	MaterialTypeTestingMaterial   = "Testing Material"
)

// MaterialTypes lists every recognized material type.
var MaterialTypes = []string{
	MaterialTypeAPI,
	MaterialTypeExcipient,
	MaterialTypeDietarySupplement,
	MaterialTypeContainer,
	MaterialTypeClosure,
	MaterialTypeProcessChemical,
	MaterialTypeTestingMaterial,
}

// Material is a receivable catalog item. Reference data: created by the
// catalog-management process, never updated or deleted by this service.
type Material struct {
	MaterialID            string    `json:"material_id" gorm:"primaryKey;size:20"`
	PartNumber            string    `json:"part_number" gorm:"size:20;not null;uniqueIndex"`
	MaterialName          string    `json:"material_name" gorm:"size:100;not null"`
	MaterialType          string    `json:"material_type" gorm:"size:50;not null"`
	StorageConditions     string    `json:"storage_conditions,omitempty" gorm:"size:100"`
	SpecificationDocument string    `json:"specification_document,omitempty" gorm:"size:50"`
	CreatedDate           time.Time `json:"created_date" gorm:"autoCreateTime"`
	ModifiedDate          time.Time `json:"modified_date" gorm:"autoUpdateTime"`
}

func (Material) TableName() string {
	return "materials"
}

// ValidMaterialType reports whether t is one of the recognized types.
func ValidMaterialType(t string) bool {
	for _, v := range MaterialTypes {
		if v == t {
			return true
		}
	}
	return false
}
