package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"marketpulse/config"
	"marketpulse/intelligence"
	"marketpulse/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/generative-ai-go/genai"
	"github.com/jackc/pgx/v5"
	"google.golang.org/api/option"
)

// HandleGenerateInsight turns a product intelligence report into a short
// narrative summary using the Gemini API. When no API key is configured
// or the call fails, the endpoint degrades to a plain template summary
// instead of erroring.
// POST /api/v1/ai/insight
func (h *Handler) HandleGenerateInsight(c *fiber.Ctx) error {
	var body struct {
		ProductID string `json:"productId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid request body",
		})
	}
	if body.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "productId is required",
		})
	}

	ctx := context.Background()

	var productName string
	err := h.Store.QueryRow(ctx, `SELECT name FROM products WHERE id = $1`, body.ProductID).Scan(&productName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Product not found"})
		}
		log.Printf("Error fetching product %s: %v", body.ProductID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to generate insight"})
	}

	history, err := h.fetchSalesHistory(ctx, body.ProductID)
	if err != nil {
		log.Printf("Error fetching sales history for %s: %v", body.ProductID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to generate insight"})
	}

	report, err := h.Engine.Analyze(ctx, body.ProductID, productName, history)
	if err != nil {
		if errors.Is(err, intelligence.ErrInsufficientData) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"status": "error", "message": "Not enough sales history to analyze this product"})
		}
		log.Printf("Error analyzing product %s: %v", body.ProductID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to generate insight"})
	}

	insight, aiGenerated := h.generateInsightText(ctx, report)

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"productId":    report.ProductID,
			"productName":  report.ProductName,
			"insight":      insight,
			"aiGenerated":  aiGenerated,
			"intelligence": report,
		},
	})
}

// generateInsightText asks Gemini for a narrative and falls back to the
// template summary on any failure.
func (h *Handler) generateInsightText(ctx context.Context, report *models.ProductIntelligence) (string, bool) {
	if config.AppConfig.GeminiAPIKey == "" {
		return plainInsight(report), false
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.AppConfig.GeminiAPIKey))
	if err != nil {
		log.Printf("Error creating Gemini client: %v", err)
		return plainInsight(report), false
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-1.5-pro-latest")
	resp, err := model.GenerateContent(ctx, genai.Text(buildInsightPrompt(report)))
	if err != nil {
		log.Printf("Error generating content: %v", err)
		return plainInsight(report), false
	}

	insight := extractText(resp)
	if insight == "" {
		log.Printf("Gemini returned an empty response for %s", report.ProductID)
		return plainInsight(report), false
	}
	return insight, true
}

func buildInsightPrompt(report *models.ProductIntelligence) string {
	var sb strings.Builder
	sb.WriteString("You are an assistant for a small retail business owner. ")
	sb.WriteString("Write 2-3 plain sentences explaining what the following analysis means ")
	sb.WriteString("and what action, if any, the owner should take. Avoid jargon.\n\n")
	fmt.Fprintf(&sb, "Product: %s\n", report.ProductName)
	fmt.Fprintf(&sb, "Momentum status: %s (combined score %.2f)\n", report.Realtime.Momentum.Status, report.Realtime.Momentum.Combined)
	fmt.Fprintf(&sb, "Burst severity: %s (score %.2f)\n", report.Realtime.Burst.Severity, report.Realtime.Burst.Score)
	fmt.Fprintf(&sb, "Forecast: %.0f units over the next %d days, trend %s (%s)\n",
		report.Forecast.TotalForecast, len(report.Forecast.Predictions), report.Forecast.Trend, report.Forecast.Method)
	for _, rec := range report.Recommendations {
		fmt.Fprintf(&sb, "Recommendation [%s/%s]: %s\n", rec.Priority, rec.Type, rec.Message)
	}
	return sb.String()
}

// plainInsight is the non-AI fallback: forecast summary plus the top
// recommendation.
func plainInsight(report *models.ProductIntelligence) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: sales momentum is %s.", report.ProductName,
		strings.ToLower(strings.ReplaceAll(report.Realtime.Momentum.Status, "_", " ")))
	fmt.Fprintf(&sb, " %s", report.Forecast.Summary)
	if len(report.Recommendations) > 0 {
		fmt.Fprintf(&sb, " %s", report.Recommendations[0].Message)
	}
	return sb.String()
}

func extractText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	return strings.TrimSpace(sb.String())
}
