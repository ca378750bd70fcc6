package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/parlor-billing/middlewares"
	"github.com/yeremiapane/parlor-billing/services"
	"github.com/yeremiapane/parlor-billing/utils"
)

type ProductController struct {
	Catalogue *services.CatalogueService
}

func NewProductController(catalogue *services.CatalogueService) *ProductController {
	return &ProductController{Catalogue: catalogue}
}

func (pc *ProductController) GetAllProducts(c *gin.Context) {
	products, err := pc.Catalogue.ListProducts(c.Request.Context(), middlewares.TenantID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of products", products)
}

func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req services.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := pc.Catalogue.CreateProduct(c.Request.Context(), middlewares.TenantID(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Product created", product)
}
