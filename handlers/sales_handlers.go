package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"marketpulse/models"
	"marketpulse/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// CreateSaleInput defines the expected input for recording a sale.
type CreateSaleInput struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	SaleDate  *string `json:"saleDate,omitempty"`
}

// parseSaleDate accepts the date formats the dashboard sends.
func parseSaleDate(dateStr string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	var lastErr error
	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		} else {
			lastErr = err
		}
	}
	return time.Time{}, lastErr
}

// HandleCreateSale records a sale for a product and decrements its stock.
// POST /api/v1/sales
func (h *Handler) HandleCreateSale(c *fiber.Ctx) error {
	ctx := context.Background()

	var input CreateSaleInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}
	if input.ProductID == "" || input.Quantity <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "productId and a positive quantity are required"})
	}

	saleDate := time.Now()
	if input.SaleDate != nil {
		parsed, err := parseSaleDate(*input.SaleDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid saleDate format"})
		}
		saleDate = parsed
	}

	tx, err := h.Store.Begin(ctx)
	if err != nil {
		log.Printf("Error starting transaction for sale: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to record sale"})
	}
	defer tx.Rollback(ctx)

	sale, err := recordSale(ctx, tx, input, saleDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Product not found"})
		}
		log.Printf("Error recording sale: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to record sale"})
	}

	if err := tx.Commit(ctx); err != nil {
		log.Printf("Error committing sale: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to record sale"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": sale})
}

// saleTx is the subset of pgx.Tx the sale write path uses.
type saleTx interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
}

// recordSale inserts the sale row and decrements stock inside one
// transaction. Either both statements take effect or neither does; a
// missing product surfaces as pgx.ErrNoRows.
func recordSale(ctx context.Context, tx saleTx, input CreateSaleInput, saleDate time.Time) (models.Sale, error) {
	var price float64
	if err := tx.QueryRow(ctx, `SELECT price FROM products WHERE id = $1`, input.ProductID).Scan(&price); err != nil {
		return models.Sale{}, err
	}

	query := `
		INSERT INTO sales (id, product_id, quantity, total, sale_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, product_id, quantity, total, sale_date, created_at
	`
	var sale models.Sale
	total := price * float64(input.Quantity)
	err := tx.QueryRow(ctx, query, uuid.NewString(), input.ProductID, input.Quantity, total, saleDate).Scan(
		&sale.ID, &sale.ProductID, &sale.Quantity, &sale.Total, &sale.SaleDate, &sale.CreatedAt,
	)
	if err != nil {
		return models.Sale{}, fmt.Errorf("insert sale: %w", err)
	}

	tag, err := tx.Exec(ctx, `UPDATE products SET stock = GREATEST(stock - $1, 0), updated_at = NOW() WHERE id = $2`, input.Quantity, input.ProductID)
	if err != nil {
		return models.Sale{}, fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.Sale{}, pgx.ErrNoRows
	}

	return sale, nil
}

// HandleListSales lists sales, optionally filtered by product, newest first.
// GET /api/v1/sales
func (h *Handler) HandleListSales(c *fiber.Ctx) error {
	ctx := context.Background()

	productID := c.Query("productId")
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 20)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	countQuery := `SELECT COUNT(*) FROM sales`
	query := `
		SELECT id, product_id, quantity, total, sale_date, created_at
		FROM sales
	`
	countArgs := []interface{}{}
	if productID != "" {
		countQuery += ` WHERE product_id = $1`
		query += ` WHERE product_id = $1`
		countArgs = append(countArgs, productID)
	}

	var totalItems int
	if err := h.Store.QueryRow(ctx, countQuery, countArgs...).Scan(&totalItems); err != nil {
		log.Printf("Error counting sales: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to list sales"})
	}

	args := append([]interface{}{}, countArgs...)
	if productID != "" {
		query += ` ORDER BY sale_date DESC LIMIT $2 OFFSET $3`
	} else {
		query += ` ORDER BY sale_date DESC LIMIT $1 OFFSET $2`
	}
	args = append(args, pageSize, offset)

	rows, err := h.Store.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error listing sales: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to list sales"})
	}
	defer rows.Close()

	sales := make([]models.Sale, 0)
	for rows.Next() {
		var sale models.Sale
		if err := rows.Scan(&sale.ID, &sale.ProductID, &sale.Quantity, &sale.Total, &sale.SaleDate, &sale.CreatedAt); err != nil {
			log.Printf("Error scanning sale: %v", err)
			continue
		}
		sales = append(sales, sale)
	}

	return c.JSON(fiber.Map{
		"status":     "success",
		"data":       sales,
		"pagination": utils.CreatePagination(totalItems, page, pageSize),
	})
}

// fetchSalesHistory loads the per-day aggregated history the intelligence
// engine consumes: one observation per calendar day with recorded sales,
// ascending by date. Days without sales are simply absent.
func (h *Handler) fetchSalesHistory(ctx context.Context, productID string) ([]models.Observation, error) {
	query := `
		SELECT DATE(sale_date) AS day, SUM(quantity)::float8 AS total_quantity
		FROM sales
		WHERE product_id = $1
		GROUP BY day
		ORDER BY day
	`
	rows, err := h.Store.Query(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]models.Observation, 0)
	for rows.Next() {
		var obs models.Observation
		if err := rows.Scan(&obs.Date, &obs.Quantity); err != nil {
			return nil, err
		}
		history = append(history, obs)
	}
	return history, rows.Err()
}
