package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tomdewit/bartab-app/models"
	"github.com/tomdewit/bartab-app/services"
	"github.com/tomdewit/bartab-app/utils"
)

type BillController struct {
	Bills *services.BillService
}

func NewBillController(bills *services.BillService) *BillController {
	return &BillController{Bills: bills}
}

// billView augments a bill with its derived total for API responses.
type billView struct {
	models.Bill
	TotalPrice string `json:"total_price"`
}

func viewOf(bill *models.Bill) billView {
	return billView{Bill: *bill, TotalPrice: bill.TotalPrice().StringFixed(2)}
}

// GetBills lists a session's bills.
func (blc *BillController) GetBills(c *gin.Context) {
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
	bills, err := blc.Bills.GetBills(barID, sessionID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	views := make([]billView, 0, len(bills))
	for i := range bills {
		views = append(views, viewOf(&bills[i]))
	}
	utils.RespondJSON(c, http.StatusOK, "List of bills", views)
}

// AddCustomer opens a tab for a customer in the session. A duplicate add
// answers 409 but still carries the existing bill id, so retried requests
// can recover the tab they already opened.
func (blc *BillController) AddCustomer(c *gin.Context) {
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
	var body struct {
		PersonID string `json:"person_id" binding:"required,uuid"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	personID, err := parseUUID(body.PersonID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	bill, err := blc.Bills.AddCustomerToSession(barID, sessionID, personID)
	if err != nil {
		if errors.Is(err, models.ErrDuplicate) && bill != nil {
			utils.RespondJSON(c, http.StatusConflict, "Customer already has a bill in this session", gin.H{
				"bill_id": bill.ID,
			})
			return
		}
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Bill created", viewOf(bill))
}

// GetBillByID returns one bill with its orders and derived total.
func (blc *BillController) GetBillByID(c *gin.Context) {
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
	bill, err := blc.Bills.GetBill(barID, sessionID, billID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Bill detail", viewOf(bill))
}

// GetCustomerBills lists every bill a customer holds across sessions.
func (blc *BillController) GetCustomerBills(c *gin.Context) {
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
	bills, err := blc.Bills.GetBillsOfCustomer(barID, personID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	views := make([]billView, 0, len(bills))
	for i := range bills {
		views = append(views, viewOf(&bills[i]))
	}
	utils.RespondJSON(c, http.StatusOK, "Bills of customer", views)
}

// PayBill settles the bill; retrying is a safe no-op.
func (blc *BillController) PayBill(c *gin.Context) {
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
	bill, err := blc.Bills.PayBill(barID, sessionID, billID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.InfoLogger.Printf("Bill %s paid (%s)", billID, utils.FormatCurrency(bill.TotalPrice()))
	utils.RespondJSON(c, http.StatusOK, "Bill paid", viewOf(bill))
}

// GetReceipt renders a printable receipt for the bill.
func (blc *BillController) GetReceipt(c *gin.Context) {
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
	bill, err := blc.Bills.GetBill(barID, sessionID, billID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	type receiptLine struct {
		Product  string `json:"product"`
		Quantity int    `json:"quantity"`
		Subtotal string `json:"subtotal"`
	}
	lines := make([]receiptLine, 0, len(bill.Orders))
	for i := range bill.Orders {
		order := &bill.Orders[i]
		lines = append(lines, receiptLine{
			Product:  order.Product.Name,
			Quantity: order.Quantity,
			Subtotal: utils.FormatCurrency(order.LinePrice()),
		})
	}
	utils.RespondJSON(c, http.StatusOK, "Bill receipt", gin.H{
		"customer": bill.Person.Name,
		"lines":    lines,
		"total":    utils.FormatCurrency(bill.TotalPrice()),
		"paid":     bill.Paid,
	})
}

// DeleteBill removes a bill with its orders from the session.
func (blc *BillController) DeleteBill(c *gin.Context) {
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
	if err := blc.Bills.DeleteBill(barID, sessionID, billID); err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Bill deleted", gin.H{"bill_id": billID})
}
