package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tomdewit/bartab-app/services"
	"github.com/tomdewit/bartab-app/utils"
)

type CategoryController struct {
	Categories *services.CategoryService
}

func NewCategoryController(categories *services.CategoryService) *CategoryController {
	return &CategoryController{Categories: categories}
}

// GetAllCategories lists a bar's categories, the sentinel included.
func (cc *CategoryController) GetAllCategories(c *gin.Context) {
	barID, err := parseID(c, "bar_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	categories, err := cc.Categories.GetCategories(barID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of categories", categories)
}

// CreateCategory adds a category; names are unique per bar.
func (cc *CategoryController) CreateCategory(c *gin.Context) {
	barID, err := parseID(c, "bar_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	var body struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	category, err := cc.Categories.CreateCategory(barID, body.Name)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Category created", category)
}

// GetCategoryByID returns one category of a bar.
func (cc *CategoryController) GetCategoryByID(c *gin.Context) {
	barID, err := parseID(c, "bar_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	categoryID, err := parseID(c, "cat_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	category, err := cc.Categories.GetCategory(barID, categoryID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category detail", category)
}

// UpdateCategory renames a category.
func (cc *CategoryController) UpdateCategory(c *gin.Context) {
	barID, err := parseID(c, "bar_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	categoryID, err := parseID(c, "cat_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	var body struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	category, err := cc.Categories.UpdateCategory(barID, categoryID, body.Name)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category updated", category)
}

// DeleteCategory removes a category; its products move to Uncategorized.
func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	barID, err := parseID(c, "bar_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	categoryID, err := parseID(c, "cat_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	if err := cc.Categories.DeleteCategory(barID, categoryID); err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category deleted", gin.H{"category_id": categoryID})
}
