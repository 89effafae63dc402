package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ngocnhu100/keycloak-poc/internal/inventory/repository"
	"github.com/ngocnhu100/keycloak-poc/internal/inventory/service"
	"github.com/xuri/excelize/v2"
)

type LotHandler struct {
	ledger *service.LedgerService
	status *service.StatusService
}

func NewLotHandler(ledger *service.LedgerService, status *service.StatusService) *LotHandler {
	return &LotHandler{ledger: ledger, status: status}
}

// List GET /api/inventory/lots
func (h *LotHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	params := repository.LotListParams{
		Status:     c.Query("status"),
		MaterialID: c.Query("material_id"),
		Limit:      limit,
	}
	lots, err := h.ledger.ListLots(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"count":   len(lots),
		"data":    lots,
	})
}

// Get GET /api/inventory/lots/:lotNumber
func (h *LotHandler) Get(c *gin.Context) {
	lot, err := h.ledger.LookupLot(c.Request.Context(), c.Param("lotNumber"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": lot})
}

// Create POST /api/inventory/lots
func (h *LotHandler) Create(c *gin.Context) {
	var req service.ReceiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 40001, "error": "ValidationError", "message": err.Error()})
		return
	}
	lot, err := h.ledger.Receive(c.Request.Context(), req, actorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "Inventory lot created successfully",
		"data":    lot,
	})
}

// RecordTransaction POST /api/inventory/lots/:lotNumber/transactions
func (h *LotHandler) RecordTransaction(c *gin.Context) {
	var req service.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 40001, "error": "ValidationError", "message": err.Error()})
		return
	}
	txn, err := h.ledger.RecordTransaction(c.Request.Context(), c.Param("lotNumber"), req, actorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "Transaction recorded successfully",
		"data":    txn,
	})
}

// Transactions GET /api/inventory/lots/:lotNumber/transactions
func (h *LotHandler) Transactions(c *gin.Context) {
	txns, err := h.ledger.ListTransactions(c.Request.Context(), c.Param("lotNumber"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"count":   len(txns),
		"data":    txns,
	})
}

// UpdateStatus PATCH /api/inventory/lots/:lotNumber/status
func (h *LotHandler) UpdateStatus(c *gin.Context) {
	var req service.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 40001, "error": "ValidationError", "message": err.Error()})
		return
	}
	lot, err := h.status.Transition(c.Request.Context(), c.Param("lotNumber"), req, actorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "Lot status updated successfully",
		"data":    lot,
	})
}

// exportLimit caps the xlsx export row count.
const exportLimit = 1000

// Export GET /api/inventory/lots/export
func (h *LotHandler) Export(c *gin.Context) {
	params := repository.LotListParams{
		Status:     c.Query("status"),
		MaterialID: c.Query("material_id"),
		Limit:      exportLimit,
	}
	lots, err := h.ledger.ListLots(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Lots"
	f.SetSheetName("Sheet1", sheet)

	headers := []interface{}{
		"Lot Number", "Material ID", "Material Name", "Part Number",
		"Quantity Received", "Quantity Available", "Status",
		"Supplier", "Manufacturer Lot", "Expiry Date", "Received Date",
		"Storage Location", "Created By",
	}
	_ = f.SetSheetRow(sheet, "A1", &headers)

	for i, lot := range lots {
		materialName, partNumber := "", ""
		if lot.Material != nil {
			materialName = lot.Material.MaterialName
			partNumber = lot.Material.PartNumber
		}
		row := []interface{}{
			lot.LotNumber, lot.MaterialID, materialName, partNumber,
			lot.QuantityReceived.String(), lot.QuantityAvailable.String(), lot.LotStatus,
			lot.Supplier, lot.ManufacturerLot,
			lot.ExpiryDate.Format("2006-01-02"), lot.ReceivedDate.Format(time.RFC3339),
			lot.StorageLocation, lot.CreatedBy,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		_ = f.SetSheetRow(sheet, cell, &row)
	}

	filename := fmt.Sprintf("inventory_lots_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	if err := f.Write(c.Writer); err != nil {
		respondError(c, err)
	}
}
