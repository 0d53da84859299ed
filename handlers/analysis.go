package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"fintrack-go-be/analytics"
	"fintrack-go-be/models"
)

// sumAmount totals the amount column of model rows owned by userID with a
// date inside [start, end).
func (h *Handler) sumAmount(model interface{}, userID uuid.UUID, start, end time.Time) (float64, error) {
	var total float64
	err := h.db.Model(model).
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

// periodSums returns the income and expense totals for one period.
func (h *Handler) periodSums(userID uuid.UUID, p analytics.Period) (income, expense float64, err error) {
	if income, err = h.sumAmount(&models.Income{}, userID, p.Start, p.End); err != nil {
		return 0, 0, err
	}
	if expense, err = h.sumAmount(&models.Expense{}, userID, p.Start, p.End); err != nil {
		return 0, 0, err
	}
	return income, expense, nil
}

// AnalysisStatistics compares the requested period against the equal-length
// period immediately before it.
func (h *Handler) AnalysisStatistics(c *fiber.Ctx) error {
	claims := h.claims(c)
	period := analytics.ParsePeriod(c.Query("period"), h.now())
	previous := period.Previous()

	curIncome, curExpense, err := h.periodSums(claims.UserID, period)
	if err != nil {
		return h.serverError(c, err, "analysis statistics: current sums failed")
	}
	prevIncome, prevExpense, err := h.periodSums(claims.UserID, previous)
	if err != nil {
		return h.serverError(c, err, "analysis statistics: previous sums failed")
	}

	months := float64(period.Months)
	incomeAvg := curIncome / months
	expenseAvg := curExpense / months
	prevIncomeAvg := prevIncome / months
	prevExpenseAvg := prevExpense / months

	savings := incomeAvg - expenseAvg
	prevSavings := prevIncomeAvg - prevExpenseAvg
	savingsRate := analytics.SavingsRate(savings, incomeAvg)
	prevSavingsRate := analytics.SavingsRate(prevSavings, prevIncomeAvg)

	return c.JSON(fiber.Map{
		"ok": true,
		"statistics": fiber.Map{
			"income": fiber.Map{
				"total":          analytics.Round2(curIncome),
				"monthlyAverage": analytics.Round2(incomeAvg),
				"change":         analytics.Round1(analytics.PercentChange(incomeAvg, prevIncomeAvg)),
			},
			"expenses": fiber.Map{
				"total":          analytics.Round2(curExpense),
				"monthlyAverage": analytics.Round2(expenseAvg),
				"change":         analytics.Round1(analytics.PercentChange(expenseAvg, prevExpenseAvg)),
			},
			"savings": fiber.Map{
				"monthlyAverage": analytics.Round2(savings),
				"change":         analytics.Round1(analytics.PercentChange(savings, prevSavings)),
			},
			"savingsRate": fiber.Map{
				"value": analytics.Round1(savingsRate),
				// absolute point delta, not a percentage of a percentage
				"change": analytics.Round1(savingsRate - prevSavingsRate),
			},
		},
	})
}

// SavingsGrowth walks the period month by month and accumulates the running
// net into one data point per month.
func (h *Handler) SavingsGrowth(c *fiber.Ctx) error {
	claims := h.claims(c)
	period := analytics.ParsePeriod(c.Query("period"), h.now())

	starts := period.MonthStarts()
	nets := make([]float64, len(starts))
	for i, start := range starts {
		end := start.AddDate(0, 1, 0)
		income, err := h.sumAmount(&models.Income{}, claims.UserID, start, end)
		if err != nil {
			return h.serverError(c, err, "savings growth: income sum failed")
		}
		expense, err := h.sumAmount(&models.Expense{}, claims.UserID, start, end)
		if err != nil {
			return h.serverError(c, err, "savings growth: expense sum failed")
		}
		nets[i] = income - expense
	}

	cumulative := analytics.Cumulative(nets)
	data := make([]fiber.Map, len(starts))
	for i, start := range starts {
		data[i] = fiber.Map{
			"month":   analytics.MonthLabel(start),
			"savings": cumulative[i],
		}
	}
	return c.JSON(fiber.Map{"ok": true, "data": data})
}

// IncomeVsExpenses is the same month walk without accumulation.
func (h *Handler) IncomeVsExpenses(c *fiber.Ctx) error {
	claims := h.claims(c)
	period := analytics.ParsePeriod(c.Query("period"), h.now())

	data := make([]fiber.Map, 0, period.Months)
	for _, start := range period.MonthStarts() {
		end := start.AddDate(0, 1, 0)
		income, err := h.sumAmount(&models.Income{}, claims.UserID, start, end)
		if err != nil {
			return h.serverError(c, err, "income vs expenses: income sum failed")
		}
		expense, err := h.sumAmount(&models.Expense{}, claims.UserID, start, end)
		if err != nil {
			return h.serverError(c, err, "income vs expenses: expense sum failed")
		}
		data = append(data, fiber.Map{
			"month":    analytics.MonthLabel(start),
			"income":   analytics.Round2(income),
			"expenses": analytics.Round2(expense),
			"net":      analytics.Round2(income - expense),
		})
	}
	return c.JSON(fiber.Map{"ok": true, "data": data})
}

// WeeklyExpenses averages spending per weekday over a trailing window of
// whole weeks. Each bucket divides by the week count, not by how many days
// happened to carry expenses.
func (h *Handler) WeeklyExpenses(c *fiber.Ctx) error {
	claims := h.claims(c)

	weeks := c.QueryInt("weeks", 8)
	if weeks < 1 || weeks > 52 {
		return fail(c, fiber.StatusBadRequest, "weeks must be between 1 and 52")
	}

	start, end := analytics.WeeklyWindow(h.now(), weeks)

	var expenses []models.Expense
	if err := h.db.Where("user_id = ? AND date >= ? AND date < ?", claims.UserID, start, end).
		Find(&expenses).Error; err != nil {
		return h.serverError(c, err, "weekly expenses: fetch failed")
	}

	totals := make(map[time.Weekday]float64, 7)
	for _, e := range expenses {
		totals[e.Date.Weekday()] += e.Amount
	}

	var overall float64
	data := make([]fiber.Map, 0, 7)
	for _, day := range analytics.WeekdayOrder {
		avg := totals[day] / float64(weeks)
		overall += avg
		data = append(data, fiber.Map{
			"day":     day.String(),
			"average": analytics.Round2(avg),
		})
	}

	return c.JSON(fiber.Map{
		"ok":           true,
		"data":         data,
		"dailyAverage": analytics.Round2(overall / 7),
	})
}
