package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tomdewit/bartab-app/models"
	"github.com/tomdewit/bartab-app/services"
	"github.com/tomdewit/bartab-app/utils"
)

type BarController struct {
	Bars *services.BarService
}

func NewBarController(bars *services.BarService) *BarController {
	return &BarController{Bars: bars}
}

// parseID reads a uuid path parameter, failing with InvalidArgument on junk.
func parseID(c *gin.Context, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s %q: %w", param, c.Param(param), models.ErrInvalidArgument)
	}
	return id, nil
}

// parseUUID reads a uuid from a request body field.
func parseUUID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q: %w", raw, models.ErrInvalidArgument)
	}
	return id, nil
}

// GetMyBars lists the bars owned by the authenticated user.
func (bc *BarController) GetMyBars(c *gin.Context) {
	ownerID := c.MustGet("userID").(uuid.UUID)
	bars, err := bc.Bars.GetBarsOwnedBy(ownerID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of bars", bars)
}

// CreateBar creates a bar owned by the authenticated user.
func (bc *BarController) CreateBar(c *gin.Context) {
	ownerID := c.MustGet("userID").(uuid.UUID)

	var body struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	bar, err := bc.Bars.CreateBar(body.Name, ownerID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.InfoLogger.Printf("Bar %s created by user %s", bar.ID, ownerID)
	utils.RespondJSON(c, http.StatusCreated, "Bar created", bar)
}

// GetBar returns the full bar aggregate.
func (bc *BarController) GetBar(c *gin.Context) {
	barID, err := parseID(c, "bar_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	bar, err := bc.Bars.GetBar(barID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Bar detail", bar)
}

// UpdateBar renames the bar.
func (bc *BarController) UpdateBar(c *gin.Context) {
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
	bar, err := bc.Bars.UpdateBar(barID, body.Name)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Bar updated", bar)
}

// DeleteBar removes the bar and everything it owns.
func (bc *BarController) DeleteBar(c *gin.Context) {
	barID, err := parseID(c, "bar_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	if err := bc.Bars.DeleteBar(barID); err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Bar deleted", gin.H{"bar_id": barID})
}
