package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/parlor-billing/middlewares"
	"github.com/yeremiapane/parlor-billing/services"
	"github.com/yeremiapane/parlor-billing/utils"
)

type TableController struct {
	Catalogue *services.CatalogueService
}

func NewTableController(catalogue *services.CatalogueService) *TableController {
	return &TableController{Catalogue: catalogue}
}

// CreateTable -> add an idle table
func (tc *TableController) CreateTable(c *gin.Context) {
	var req services.TableInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	table, err := tc.Catalogue.CreateTable(c.Request.Context(), middlewares.TenantID(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

func (tc *TableController) GetAllTables(c *gin.Context) {
	tables, err := tc.Catalogue.ListTables(c.Request.Context(), middlewares.TenantID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}
