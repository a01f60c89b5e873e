package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tomdewit/bartab-app/services"
	"github.com/tomdewit/bartab-app/utils"
)

type PersonController struct {
	People *services.PersonService
}

func NewPersonController(people *services.PersonService) *PersonController {
	return &PersonController{People: people}
}

// GetCustomers lists a bar's customers.
func (pc *PersonController) GetCustomers(c *gin.Context) {
	barID, err := parseID(c, "bar_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	people, err := pc.People.GetCustomers(barID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of customers", people)
}

// CreateCustomer adds a customer to a bar; names are unique per bar.
func (pc *PersonController) CreateCustomer(c *gin.Context) {
	barID, err := parseID(c, "bar_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	var body struct {
		Name        string `json:"name" binding:"required"`
		PhoneNumber string `json:"phone_number"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	person, err := pc.People.CreateCustomer(barID, body.Name, body.PhoneNumber)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Customer created", person)
}

// GetCustomer returns one customer of a bar.
func (pc *PersonController) GetCustomer(c *gin.Context) {
	barID, err := parseID(c, "bar_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	personID, err := parseID(c, "person_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	person, err := pc.People.GetCustomer(barID, personID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer detail", person)
}

// UpdateCustomer changes a customer's name and/or phone number.
func (pc *PersonController) UpdateCustomer(c *gin.Context) {
	barID, err := parseID(c, "bar_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	personID, err := parseID(c, "person_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	var body struct {
		Name        string `json:"name" binding:"required"`
		PhoneNumber string `json:"phone_number"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	person, err := pc.People.UpdateCustomer(barID, personID, body.Name, body.PhoneNumber)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer updated", person)
}

// LinkUser attaches a registered user account to a customer.
func (pc *PersonController) LinkUser(c *gin.Context) {
	barID, err := parseID(c, "bar_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	personID, err := parseID(c, "person_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	var body struct {
		UserID string `json:"user_id" binding:"required,uuid"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	userID, _ := uuid.Parse(body.UserID)
	person, err := pc.People.LinkUser(barID, personID, userID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer linked to user", person)
}

// DeleteCustomer removes a customer from the bar.
func (pc *PersonController) DeleteCustomer(c *gin.Context) {
	barID, err := parseID(c, "bar_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	personID, err := parseID(c, "person_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	if err := pc.People.DeleteCustomer(barID, personID); err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer deleted", gin.H{"person_id": personID})
}
