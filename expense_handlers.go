package main

import (
	"net/http"
	"strconv"
	"time"

	"farmledger/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type expenseForm struct {
	FarmID      uint   `form:"farm_id" json:"farm_id"`
	Amount      string `form:"amount" json:"amount" binding:"required"`
	ExpenseType string `form:"expense_type" json:"expense_type" binding:"required"`
	ExpenseDate string `form:"expense_date" json:"expense_date" binding:"required"` // YYYY-MM-DD
	Description string `form:"description" json:"description"`
}

// parseExpenseForm validates the money, category and date fields shared by
// add and edit.
func parseExpenseForm(req expenseForm) (decimal.Decimal, time.Time, string, bool) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return decimal.Zero, time.Time{}, "amount must be a decimal number", false
	}
	if amount.IsNegative() {
		return decimal.Zero, time.Time{}, "amount must be non-negative", false
	}
	if !validExpenseType(req.ExpenseType) {
		return decimal.Zero, time.Time{}, "unknown expense_type", false
	}
	date, err := time.Parse("2006-01-02", req.ExpenseDate)
	if err != nil {
		return decimal.Zero, time.Time{}, "expense_date must be YYYY-MM-DD", false
	}
	return amount, date, "", true
}

// listExpensesHandler lists the acting farmer's expenses (admin sees all).
func listExpensesHandler(c *gin.Context) {
	role, _ := c.Get("role")
	farmer, ok := getFarmerFromContext(c)
	if !ok && role != "administrator" {
		c.Redirect(http.StatusSeeOther, "/register")
		return
	}
	var expenses []models.Expense
	q := db.Model(&models.Expense{})
	if role != "administrator" {
		q = q.Where("farmer_id = ?", farmer.ID)
	}
	if err := q.Order("id").Find(&expenses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, expenses)
}

func viewExpenseHandler(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var expense models.Expense
	if err := db.First(&expense, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
		return
	}
	c.JSON(http.StatusOK, expense)
}

func addExpenseFormHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"form": expenseForm{}})
}

// addExpenseHandler records an expense for the acting farmer, optionally
// attributed to one of their farms.
func addExpenseHandler(c *gin.Context) {
	farmer, ok := getFarmerFromContext(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/register")
		return
	}
	var req expenseForm
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount, date, msg, ok := parseExpenseForm(req)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	expense := models.Expense{FarmerID: farmer.ID, Amount: amount, ExpenseType: req.ExpenseType, ExpenseDate: date, Description: req.Description}
	if req.FarmID != 0 {
		farm, err := ownedFarm(farmer, req.FarmID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		fid := farm.ID
		expense.FarmID = &fid
	}
	if err := db.Create(&expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.Redirect(http.StatusSeeOther, "/expenses")
}

func editExpenseFormHandler(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var expense models.Expense
	if err := db.First(&expense, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
		return
	}
	form := expenseForm{
		Amount:      expense.Amount.StringFixed(2),
		ExpenseType: expense.ExpenseType,
		ExpenseDate: expense.ExpenseDate.Format("2006-01-02"),
		Description: expense.Description,
	}
	if expense.FarmID != nil {
		form.FarmID = *expense.FarmID
	}
	c.JSON(http.StatusOK, gin.H{"form": form, "expense": expense})
}

// editExpenseHandler replaces the expense's mutable fields. Budget fields
// are only touched through the budget form.
func editExpenseHandler(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var expense models.Expense
	if err := db.First(&expense, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
		return
	}
	farmer, okFarmer := getFarmerFromContext(c)
	var req expenseForm
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount, date, msg, ok := parseExpenseForm(req)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	expense.Amount = amount
	expense.ExpenseType = req.ExpenseType
	expense.ExpenseDate = date
	expense.Description = req.Description
	expense.FarmID = nil
	if req.FarmID != 0 {
		if !okFarmer {
			c.JSON(http.StatusBadRequest, gin.H{"error": "farm_id requires a farmer profile"})
			return
		}
		farm, err := ownedFarm(farmer, req.FarmID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		fid := farm.ID
		expense.FarmID = &fid
	}
	if err := db.Save(&expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.Redirect(http.StatusSeeOther, "/expenses")
}

func deleteExpenseConfirmHandler(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var expense models.Expense
	if err := db.First(&expense, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"confirm": "delete expense?", "expense": expense})
}

func deleteExpenseHandler(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var expense models.Expense
	if err := db.First(&expense, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
		return
	}
	if err := db.Delete(&expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.Redirect(http.StatusSeeOther, "/expenses")
}
