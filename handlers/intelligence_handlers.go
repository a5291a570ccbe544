package handlers

import (
	"context"
	"errors"
	"log"

	"marketpulse/intelligence"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

// HandleGetProductIntelligence runs the full analysis pipeline for one
// product and returns the intelligence report.
// GET /api/v1/intelligence/:productId
func (h *Handler) HandleGetProductIntelligence(c *fiber.Ctx) error {
	ctx := context.Background()
	productID := c.Params("productId")

	var productName string
	err := h.Store.QueryRow(ctx, `SELECT name FROM products WHERE id = $1`, productID).Scan(&productName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Product not found"})
		}
		log.Printf("Error fetching product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to analyze product"})
	}

	history, err := h.fetchSalesHistory(ctx, productID)
	if err != nil {
		log.Printf("Error fetching sales history for %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to analyze product"})
	}

	report, err := h.Engine.Analyze(ctx, productID, productName, history)
	if err != nil {
		if errors.Is(err, intelligence.ErrInsufficientData) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"status": "error", "message": "Not enough sales history to analyze this product"})
		}
		log.Printf("Error analyzing product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to analyze product"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": report})
}
