package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/parlor-billing/middlewares"
	"github.com/yeremiapane/parlor-billing/services"
	"github.com/yeremiapane/parlor-billing/utils"
)

type TableSessionController struct {
	Sessions *services.SessionService
}

func NewTableSessionController(sessions *services.SessionService) *TableSessionController {
	return &TableSessionController{Sessions: sessions}
}

// GetActiveTables -> floor overview. A failed read is logged and answered
// with an empty list so the dashboard keeps rendering.
func (tc *TableSessionController) GetActiveTables(c *gin.Context) {
	tables, err := tc.Sessions.ListActiveTables(c.Request.Context(), middlewares.TenantID(c))
	if err != nil {
		utils.ErrorLogger.Printf("Failed to list active tables: %v", err)
		utils.RespondJSON(c, http.StatusOK, "List of tables", []services.TableOverview{})
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// StartSession -> occupy a table
func (tc *TableSessionController) StartSession(c *gin.Context) {
	var req struct {
		TableID         uint `json:"table_id" binding:"required"`
		BillingMethodID uint `json:"billing_method_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	sessionID, err := tc.Sessions.StartSession(c.Request.Context(), middlewares.TenantID(c), req.TableID, req.BillingMethodID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Session started", gin.H{"session_id": sessionID})
}

// AddProduct -> record a consumption on an active session
func (tc *TableSessionController) AddProduct(c *gin.Context) {
	var req struct {
		TableSessionID uint `json:"table_session_id" binding:"required"`
		ProductID      uint `json:"product_id" binding:"required"`
		Quantity       int  `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	consumptionID, err := tc.Sessions.AddConsumption(c.Request.Context(), middlewares.TenantID(c), req.TableSessionID, req.ProductID, req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Product added", gin.H{"consumption_id": consumptionID})
}

// EndSession -> checkout and bill
func (tc *TableSessionController) EndSession(c *gin.Context) {
	sessionID, ok := paramID(c, "session_id")
	if !ok {
		return
	}

	bill, err := tc.Sessions.EndSession(c.Request.Context(), middlewares.TenantID(c), sessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Session ended", bill)
}

func (tc *TableSessionController) GetSession(c *gin.Context) {
	sessionID, ok := paramID(c, "session_id")
	if !ok {
		return
	}

	detail, err := tc.Sessions.GetSession(c.Request.Context(), middlewares.TenantID(c), sessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Session detail", detail)
}
