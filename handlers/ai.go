package handlers

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"google.golang.org/genai"

	"fintrack-go-be/models"
	"fintrack-go-be/validation"
)

type suggestCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=500"`
}

// aiSuggestion is the structure we expect back from Gemini.
type aiSuggestion struct {
	CategoryID string `json:"category_id"`
	Confidence string `json:"confidence"`
	Reason     string `json:"reason"`
}

// SuggestCategory asks Gemini which of the caller's categories fits an
// expense best. Purely advisory; the client still decides what to save.
func (h *Handler) SuggestCategory(c *fiber.Ctx) error {
	claims := h.claims(c)

	if h.cfg.GeminiAPIKey == "" {
		return fail(c, fiber.StatusServiceUnavailable, "Category suggestions are not enabled")
	}

	var req suggestCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if issues := validation.Struct(req); issues != nil {
		return failValidation(c, issues)
	}

	var categories []models.Category
	if err := h.db.Where("user_id = ?", claims.UserID).Find(&categories).Error; err != nil {
		return h.serverError(c, err, "suggest-category: categories failed")
	}
	if len(categories) == 0 {
		return fail(c, fiber.StatusBadRequest, "Create a category first")
	}

	var promptBuilder strings.Builder
	promptBuilder.WriteString("You are a personal finance assistant. Pick the best matching category for an expense.\n")
	promptBuilder.WriteString("Return a RAW JSON object. Do NOT use markdown formatting.\n")
	promptBuilder.WriteString("The object must have: 'category_id' (one of the ids below), 'confidence' (high/medium/low), 'reason' (one sentence).\n\n")
	promptBuilder.WriteString("Categories:\n")
	for _, cat := range categories {
		promptBuilder.WriteString(fmt.Sprintf(`{"id": "%s", "name": "%s"}`+"\n", cat.ID, cat.Name))
	}
	promptBuilder.WriteString(fmt.Sprintf("\nExpense: %q", req.Name))
	if req.Description != "" {
		promptBuilder.WriteString(fmt.Sprintf(" (%s)", req.Description))
	}

	ctx := c.UserContext()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: h.cfg.GeminiAPIKey})
	if err != nil {
		return h.serverError(c, err, "suggest-category: ai client init failed")
	}

	resp, err := client.Models.GenerateContent(ctx, "gemini-1.5-flash", genai.Text(promptBuilder.String()), nil)
	if err != nil {
		return h.serverError(c, err, "suggest-category: ai generation failed")
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return h.serverError(c, fmt.Errorf("empty ai response"), "suggest-category: empty response")
	}

	rawText := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			rawText += part.Text
		}
	}

	// Clean Markdown if present (Gemini loves adding ```json ... ```)
	rawText = strings.TrimSpace(rawText)
	rawText = strings.TrimPrefix(rawText, "```json")
	rawText = strings.TrimPrefix(rawText, "```")
	rawText = strings.TrimSuffix(rawText, "```")

	var suggestion aiSuggestion
	if err := json.Unmarshal([]byte(rawText), &suggestion); err != nil {
		return h.serverError(c, fmt.Errorf("parse ai response: %w (raw: %s)", err, rawText), "suggest-category: parse failed")
	}

	// Never hand back an id the caller does not own.
	valid := false
	for _, cat := range categories {
		if cat.ID.String() == suggestion.CategoryID {
			valid = true
			break
		}
	}
	if !valid {
		return h.serverError(c, fmt.Errorf("ai suggested unknown category %q", suggestion.CategoryID), "suggest-category: unknown category")
	}

	return c.JSON(fiber.Map{"ok": true, "suggestion": suggestion})
}
