package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tomdewit/bartab-app/models"
	"github.com/tomdewit/bartab-app/services"
	"github.com/tomdewit/bartab-app/utils"
)

type ProductController struct {
	Products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{Products: products}
}

type productRequest struct {
	Name       string          `json:"name" binding:"required"`
	Brand      string          `json:"brand"`
	Size       float64         `json:"size"`
	Price      decimal.Decimal `json:"price"`
	Type       string          `json:"type"`
	Favorite   bool            `json:"favorite"`
	CategoryID string          `json:"category_id" binding:"required,uuid"`
}

func (pr productRequest) spec() models.ProductSpec {
	categoryID, _ := uuid.Parse(pr.CategoryID)
	return models.ProductSpec{
		Name:       pr.Name,
		Brand:      pr.Brand,
		Size:       pr.Size,
		Price:      pr.Price,
		Type:       pr.Type,
		Favorite:   pr.Favorite,
		CategoryID: categoryID,
	}
}

// GetAllProducts lists a bar's products with optional ?type= and
// ?category_id= filters.
func (pc *ProductController) GetAllProducts(c *gin.Context) {
	barID, err := parseID(c, "bar_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	var categoryID *uuid.UUID
	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		categoryID = &id
	}
	products, err := pc.Products.GetProducts(barID, c.Query("type"), categoryID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of products", products)
}

// CreateProduct adds a product to the bar's catalog.
func (pc *ProductController) CreateProduct(c *gin.Context) {
	barID, err := parseID(c, "bar_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	var body productRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	product, err := pc.Products.CreateProduct(barID, body.spec())
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Product created", product)
}

// GetProductByID returns one product of a bar.
func (pc *ProductController) GetProductByID(c *gin.Context) {
	barID, err := parseID(c, "bar_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	productID, err := parseID(c, "product_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	product, err := pc.Products.GetProduct(barID, productID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product detail", product)
}

// UpdateProduct overwrites a product's fields; identity stays stable.
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	barID, err := parseID(c, "bar_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	productID, err := parseID(c, "product_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	var body productRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	product, err := pc.Products.UpdateProduct(barID, productID, body.spec())
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product updated", product)
}

// DeleteProduct removes a product from the catalog.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	barID, err := parseID(c, "bar_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	productID, err := parseID(c, "product_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	if err := pc.Products.DeleteProduct(barID, productID); err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product deleted", gin.H{"product_id": productID})
}
