package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/parlor-billing/middlewares"
	"github.com/yeremiapane/parlor-billing/services"
	"github.com/yeremiapane/parlor-billing/utils"
)

type BillingMethodController struct {
	Catalogue *services.CatalogueService
}

func NewBillingMethodController(catalogue *services.CatalogueService) *BillingMethodController {
	return &BillingMethodController{Catalogue: catalogue}
}

func (bc *BillingMethodController) GetAllBillingMethods(c *gin.Context) {
	methods, err := bc.Catalogue.ListBillingMethods(c.Request.Context(), middlewares.TenantID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of billing methods", methods)
}

func (bc *BillingMethodController) CreateBillingMethod(c *gin.Context) {
	var req services.BillingMethodInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	method, err := bc.Catalogue.CreateBillingMethod(c.Request.Context(), middlewares.TenantID(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Billing method created", method)
}

func (bc *BillingMethodController) UpdateBillingMethod(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req services.BillingMethodInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	method, err := bc.Catalogue.UpdateBillingMethod(c.Request.Context(), middlewares.TenantID(c), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Billing method updated", method)
}

func (bc *BillingMethodController) DeleteBillingMethod(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := bc.Catalogue.DeleteBillingMethod(c.Request.Context(), middlewares.TenantID(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Billing method deleted", nil)
}
