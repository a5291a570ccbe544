package handlers

import (
	"context"
	"log"

	"marketpulse/models"

	"github.com/gofiber/fiber/v2"
)

// HandleGetDashboardSummary fetches summary data for the dashboard.
// GET /api/v1/dashboard/summary
func (h *Handler) HandleGetDashboardSummary(c *fiber.Ctx) error {
	ctx := context.Background()

	var summary models.DashboardSummary

	// 1. Total Sales Revenue
	queryRevenue := `
		SELECT COALESCE(SUM(total), 0)
		FROM sales
	`
	err := h.Store.QueryRow(ctx, queryRevenue).Scan(&summary.TotalSalesRevenue.Value)
	if err != nil {
		log.Printf("Error fetching total sales revenue: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch total sales revenue"})
	}

	// 2. Number of Transactions
	queryTransactions := `
		SELECT COUNT(*)
		FROM sales
	`
	err = h.Store.QueryRow(ctx, queryTransactions).Scan(&summary.NumberOfTransactions.Value)
	if err != nil {
		log.Printf("Error fetching number of transactions: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch number of transactions"})
	}

	// 3. Average Order Value
	if summary.NumberOfTransactions.Value > 0 {
		summary.AverageOrderValue.Value = summary.TotalSalesRevenue.Value / summary.NumberOfTransactions.Value
	} else {
		summary.AverageOrderValue.Value = 0
	}

	// 4. Top Selling Products
	queryTopProducts := `
		SELECT
			p.id AS product_id,
			p.name AS product_name,
			COALESCE(SUM(s.quantity), 0) AS quantity_sold,
			COALESCE(SUM(s.total), 0) AS revenue
		FROM sales s
		JOIN products p ON s.product_id = p.id
		GROUP BY p.id, p.name
		ORDER BY quantity_sold DESC
		LIMIT 5
	`
	rows, err := h.Store.Query(ctx, queryTopProducts)
	if err != nil {
		log.Printf("Error fetching top selling products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch top selling products"})
	}
	defer rows.Close()

	summary.TopSellingProducts = make([]models.ProductSummary, 0)
	for rows.Next() {
		var product models.ProductSummary
		if err := rows.Scan(&product.ProductID, &product.ProductName, &product.QuantitySold, &product.Revenue); err != nil {
			log.Printf("Error scanning top selling product: %v", err)
			continue
		}
		summary.TopSellingProducts = append(summary.TopSellingProducts, product)
	}

	return c.JSON(fiber.Map{"status": "success", "data": summary})
}
