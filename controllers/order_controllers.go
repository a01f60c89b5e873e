package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tomdewit/bartab-app/services"
	"github.com/tomdewit/bartab-app/utils"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// GetOrders lists a bill's line items.
func (oc *OrderController) GetOrders(c *gin.Context) {
	barID, err := parseID(c, "bar_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	sessionID, err := parseID(c, "session_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	billID, err := parseID(c, "bill_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	orders, err := oc.Orders.GetOrders(barID, sessionID, billID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// AddOrder appends a product purchase to the bill.
func (oc *OrderController) AddOrder(c *gin.Context) {
	barID, err := parseID(c, "bar_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	sessionID, err := parseID(c, "session_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	billID, err := parseID(c, "bill_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	var body struct {
		ProductID string `json:"product_id" binding:"required,uuid"`
		Quantity  int    `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	productID, err := parseUUID(body.ProductID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	bill, err := oc.Orders.AddOrderToBill(barID, sessionID, billID, productID, body.Quantity)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order added", viewOf(bill))
}

// GetOrderByID returns one line item of a bill.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	barID, err := parseID(c, "bar_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	sessionID, err := parseID(c, "session_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	billID, err := parseID(c, "bill_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	orderID, err := parseID(c, "order_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	order, err := oc.Orders.GetOrder(barID, sessionID, billID, orderID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// DeleteOrder removes a single line item.
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	barID, err := parseID(c, "bar_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	sessionID, err := parseID(c, "session_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	billID, err := parseID(c, "bill_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	orderID, err := parseID(c, "order_id")
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	if err := oc.Orders.DeleteOrder(barID, sessionID, billID, orderID); err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"order_id": orderID})
}
