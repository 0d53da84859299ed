package handlers

import (
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"

	"fintrack-go-be/analytics"
	"fintrack-go-be/models"
)

// DashboardStats compares the current calendar month against the previous
// one. Balance is all-time income minus all-time expenses; its previous
// value is the balance as it stood before this month's activity.
func (h *Handler) DashboardStats(c *fiber.Ctx) error {
	claims := h.claims(c)
	now := h.now()

	curStart, curEnd := analytics.CalendarMonth(now)
	prevStart := curStart.AddDate(0, -1, 0)

	curIncome, err := h.sumAmount(&models.Income{}, claims.UserID, curStart, curEnd)
	if err != nil {
		return h.serverError(c, err, "dashboard stats: current income failed")
	}
	curExpense, err := h.sumAmount(&models.Expense{}, claims.UserID, curStart, curEnd)
	if err != nil {
		return h.serverError(c, err, "dashboard stats: current expenses failed")
	}
	prevIncome, err := h.sumAmount(&models.Income{}, claims.UserID, prevStart, curStart)
	if err != nil {
		return h.serverError(c, err, "dashboard stats: previous income failed")
	}
	prevExpense, err := h.sumAmount(&models.Expense{}, claims.UserID, prevStart, curStart)
	if err != nil {
		return h.serverError(c, err, "dashboard stats: previous expenses failed")
	}

	allTime := time.Time{}
	totalIncome, err := h.sumAmount(&models.Income{}, claims.UserID, allTime, curEnd)
	if err != nil {
		return h.serverError(c, err, "dashboard stats: total income failed")
	}
	totalExpense, err := h.sumAmount(&models.Expense{}, claims.UserID, allTime, curEnd)
	if err != nil {
		return h.serverError(c, err, "dashboard stats: total expenses failed")
	}

	balance := totalIncome - totalExpense
	prevBalance := balance - (curIncome - curExpense)

	return c.JSON(fiber.Map{
		"ok": true,
		"stats": fiber.Map{
			"balance": fiber.Map{
				"amount": analytics.Round2(balance),
				"change": analytics.Round1(analytics.DashboardChange(balance, prevBalance)),
			},
			"income": fiber.Map{
				"amount": analytics.Round2(curIncome),
				"change": analytics.Round1(analytics.DashboardChange(curIncome, prevIncome)),
			},
			"expenses": fiber.Map{
				"amount": analytics.Round2(curExpense),
				"change": analytics.Round1(analytics.DashboardChange(curExpense, prevExpense)),
			},
		},
	})
}

type dashboardTransaction struct {
	kind   string
	name   string
	amount float64
	date   time.Time
	id     string
	extra  fiber.Map
}

// DashboardTransactions merges the latest expenses and incomes into one
// reverse-chronological feed.
func (h *Handler) DashboardTransactions(c *fiber.Ctx) error {
	claims := h.claims(c)

	limit := c.QueryInt("limit", 10)
	if limit < 1 || limit > 100 {
		return fail(c, fiber.StatusBadRequest, "limit must be between 1 and 100")
	}

	var expenses []models.Expense
	if err := h.db.Preload("Category").Where("user_id = ?", claims.UserID).
		Order("date desc, created_at desc").Limit(limit).Find(&expenses).Error; err != nil {
		return h.serverError(c, err, "dashboard transactions: expenses failed")
	}
	var incomes []models.Income
	if err := h.db.Where("user_id = ?", claims.UserID).
		Order("date desc, created_at desc").Limit(limit).Find(&incomes).Error; err != nil {
		return h.serverError(c, err, "dashboard transactions: incomes failed")
	}

	merged := make([]dashboardTransaction, 0, len(expenses)+len(incomes))
	for i := range expenses {
		e := &expenses[i]
		tx := dashboardTransaction{
			kind: "expense", name: e.Name, amount: e.Amount, date: e.Date, id: e.ID.String(),
		}
		if e.Category != nil {
			tx.extra = fiber.Map{"category": e.Category}
		}
		merged = append(merged, tx)
	}
	for i := range incomes {
		in := &incomes[i]
		merged = append(merged, dashboardTransaction{
			kind: "income", name: in.Name, amount: in.Amount, date: in.Date, id: in.ID.String(),
		})
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].date.After(merged[j].date)
	})
	if len(merged) > limit {
		merged = merged[:limit]
	}

	out := make([]fiber.Map, len(merged))
	for i, tx := range merged {
		m := fiber.Map{
			"id":     tx.id,
			"type":   tx.kind,
			"name":   tx.name,
			"amount": tx.amount,
			"date":   formatDate(tx.date),
		}
		for k, v := range tx.extra {
			m[k] = v
		}
		out[i] = m
	}
	return c.JSON(fiber.Map{"ok": true, "transactions": out})
}

// ExpensesByCategory buckets the current month's spending per category with
// percentage shares of the month total.
func (h *Handler) ExpensesByCategory(c *fiber.Ctx) error {
	claims := h.claims(c)
	start, end := analytics.CalendarMonth(h.now())

	type categoryTotal struct {
		CategoryID string
		Total      float64
	}
	var rows []categoryTotal
	if err := h.db.Model(&models.Expense{}).
		Where("user_id = ? AND date >= ? AND date < ?", claims.UserID, start, end).
		Select("category_id, SUM(amount) as total").
		Group("category_id").
		Scan(&rows).Error; err != nil {
		return h.serverError(c, err, "expenses by category: aggregation failed")
	}

	var categories []models.Category
	if err := h.db.Where("user_id = ?", claims.UserID).Find(&categories).Error; err != nil {
		return h.serverError(c, err, "expenses by category: categories failed")
	}
	byID := make(map[string]*models.Category, len(categories))
	for i := range categories {
		byID[categories[i].ID.String()] = &categories[i]
	}

	var monthTotal float64
	for _, row := range rows {
		monthTotal += row.Total
	}

	data := make([]fiber.Map, 0, len(rows))
	for _, row := range rows {
		cat, ok := byID[row.CategoryID]
		if !ok {
			continue
		}
		percentage := 0.0
		if monthTotal > 0 {
			percentage = row.Total / monthTotal * 100
		}
		data = append(data, fiber.Map{
			"categoryId": cat.ID,
			"name":       cat.Name,
			"color":      cat.Color,
			"icon":       cat.Icon,
			"total":      analytics.Round2(row.Total),
			"percentage": analytics.Round1(percentage),
		})
	}
	sort.Slice(data, func(i, j int) bool {
		return data[i]["total"].(float64) > data[j]["total"].(float64)
	})

	return c.JSON(fiber.Map{
		"ok":    true,
		"total": analytics.Round2(monthTotal),
		"data":  data,
	})
}
