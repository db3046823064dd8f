package main

import (
	"net/http"
	"strconv"
	"time"

	"farmledger/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// expenseSummaryHandler aggregates all expenses by type: per-type totals, an
// overall total, a zero-safe arithmetic mean and each type's percentage
// share of the total.
func expenseSummaryHandler(c *gin.Context) {
	var expenses []models.Expense
	if err := db.Order("id").Find(&expenses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	var types []string
	byType := map[string]decimal.Decimal{}
	total := decimal.Zero
	for _, e := range expenses {
		if _, seen := byType[e.ExpenseType]; !seen {
			types = append(types, e.ExpenseType)
		}
		byType[e.ExpenseType] = byType[e.ExpenseType].Add(e.Amount)
		total = total.Add(e.Amount)
	}

	average := decimal.Zero
	if len(expenses) > 0 {
		average = total.Div(decimal.NewFromInt(int64(len(expenses)))).Round(2)
	}

	typeTotals := make([]string, 0, len(types))
	distribution := make([]float64, 0, len(types))
	for _, t := range types {
		amt := byType[t]
		typeTotals = append(typeTotals, amt.StringFixed(2))
		pct := decimal.Zero
		if total.IsPositive() {
			pct = amt.Div(total).Mul(decimal.NewFromInt(100)).Round(2)
		}
		distribution = append(distribution, pct.InexactFloat64())
	}

	c.JSON(http.StatusOK, gin.H{
		"total_expenses":       total.StringFixed(2),
		"average_expenses":     average.StringFixed(2),
		"expense_types":        types,
		"expenses_by_type":     typeTotals,
		"expense_distribution": distribution,
	})
}

// detailedReportsHandler returns expenses matching zero or more optional
// filters: expense_type, farm_id and an inclusive date range.
func detailedReportsHandler(c *gin.Context) {
	q := db.Model(&models.Expense{})
	if t := c.Query("expense_type"); t != "" {
		q = q.Where("expense_type = ?", t)
	}
	if f := c.Query("farm_id"); f != "" {
		fid, err := strconv.Atoi(f)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "farm_id must be numeric"})
			return
		}
		q = q.Where("farm_id = ?", fid)
	}
	if s := c.Query("start_date"); s != "" {
		start, err := time.Parse("2006-01-02", s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
			return
		}
		q = q.Where("expense_date >= ?", start)
	}
	if e := c.Query("end_date"); e != "" {
		end, err := time.Parse("2006-01-02", e)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
			return
		}
		q = q.Where("expense_date <= ?", end)
	}
	var expenses []models.Expense
	if err := q.Find(&expenses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"expenses": expenses})
}

// financialReportsHandler returns every expense alongside the overall total.
func financialReportsHandler(c *gin.Context) {
	var expenses []models.Expense
	if err := db.Order("id").Find(&expenses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	c.JSON(http.StatusOK, gin.H{"total_expenses": total.StringFixed(2), "expenses": expenses})
}

type budgetForm struct {
	BudgetAmount string `form:"budget_amount" json:"budget_amount" binding:"required"`
	BudgetNote   string `form:"budget_note" json:"budget_note"`
}

func setBudgetFormHandler(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var expense models.Expense
	if err := db.First(&expense, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
		return
	}
	form := budgetForm{BudgetNote: expense.BudgetNote}
	if expense.BudgetAmount != nil {
		form.BudgetAmount = expense.BudgetAmount.StringFixed(2)
	}
	c.JSON(http.StatusOK, gin.H{"form": form, "expense": expense})
}

// setBudgetHandler binds the budget form to one expense. Lookup follows the
// same fetch-or-404 contract as every other entity lookup.
func setBudgetHandler(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var expense models.Expense
	if err := db.First(&expense, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
		return
	}
	var req budgetForm
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount, err := decimal.NewFromString(req.BudgetAmount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "budget_amount must be a decimal number"})
		return
	}
	if amount.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "budget_amount must be non-negative"})
		return
	}
	expense.BudgetAmount = &amount
	expense.BudgetNote = req.BudgetNote
	if err := db.Save(&expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.Redirect(http.StatusSeeOther, "/expenses")
}
