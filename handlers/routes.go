package handlers

import "github.com/gofiber/fiber/v2"

// RegisterRoutes wires the whole REST surface. Everything under /api needs a
// bearer token except the auth flows, the landing summary and the health
// probe.
func (h *Handler) RegisterRoutes(app *fiber.App, requireAuth, optionalAuth fiber.Handler) {
	app.Get("/healthz", h.Health)

	api := app.Group("/api")

	// Auth (public)
	api.Post("/register", h.Register)
	api.Post("/login", h.Login)
	api.Post("/forgot-password", h.ForgotPassword)
	api.Post("/reset-password", h.ResetPassword)
	api.Get("/me", requireAuth, h.Me)

	// Public landing data: generic copy when anonymous, the caller's own
	// headline numbers when a valid token happens to be attached.
	api.Get("/landing/summary", optionalAuth, h.LandingSummary)

	// Categories
	categories := api.Group("/categories", requireAuth)
	categories.Get("/", h.ListCategories)
	categories.Post("/", h.CreateCategory)
	categories.Put("/:id", h.UpdateCategory)
	categories.Delete("/:id", h.DeleteCategory)

	// Expenses
	expenses := api.Group("/expenses", requireAuth)
	expenses.Get("/", h.ListExpenses)
	expenses.Post("/", h.CreateExpense)
	expenses.Post("/suggest-category", h.SuggestCategory)
	expenses.Get("/:id", h.GetExpense)
	expenses.Put("/:id", h.UpdateExpense)
	expenses.Delete("/:id", h.DeleteExpense)

	// Incomes
	incomes := api.Group("/budget/income", requireAuth)
	incomes.Get("/", h.ListIncomes)
	incomes.Post("/", h.CreateIncome)
	incomes.Put("/:id", h.UpdateIncome)
	incomes.Delete("/:id", h.DeleteIncome)

	// Goals
	goals := api.Group("/goals", requireAuth)
	goals.Get("/", h.ListGoals)
	goals.Post("/", h.CreateGoal)
	goals.Get("/:id", h.GetGoal)
	goals.Put("/:id", h.UpdateGoal)
	goals.Delete("/:id", h.DeleteGoal)
	goals.Post("/:id/contribute", h.ContributeToGoal)

	// Notifications
	notifications := api.Group("/notifications", requireAuth)
	notifications.Get("/", h.ListNotifications)
	notifications.Put("/read-all", h.MarkAllNotificationsRead)
	notifications.Put("/:id/read", h.MarkNotificationRead)
	notifications.Delete("/:id", h.DeleteNotification)

	// Dashboard
	dashboard := api.Group("/dashboard", requireAuth)
	dashboard.Get("/stats", h.DashboardStats)
	dashboard.Get("/transactions", h.DashboardTransactions)
	dashboard.Get("/expenses-by-category", h.ExpensesByCategory)

	// Analysis
	analysis := api.Group("/analysis", requireAuth)
	analysis.Get("/statistics", h.AnalysisStatistics)
	analysis.Get("/savings-growth", h.SavingsGrowth)
	analysis.Get("/income-vs-expenses", h.IncomeVsExpenses)
	analysis.Get("/weekly-expenses", h.WeeklyExpenses)

	// User / profile
	user := api.Group("/user", requireAuth)
	user.Get("/profile", h.Profile)
	user.Put("/profile", h.UpdateProfile)
	user.Put("/change-password", h.ChangePassword)
	user.Get("/notifications", h.GetSettings)
	user.Put("/notifications", h.UpdateSettings)
	user.Get("/export", h.ExportData)
	user.Delete("/delete", h.DeleteAccount)
}
