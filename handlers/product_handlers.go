package handlers

import (
	"context"
	"errors"
	"log"

	"marketpulse/models"
	"marketpulse/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateProductInput defines the expected input for creating a product.
type CreateProductInput struct {
	Name     string  `json:"name"`
	SKU      *string `json:"sku,omitempty"`
	Category *string `json:"category,omitempty"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
}

// HandleCreateProduct creates a new product.
// POST /api/v1/products
func (h *Handler) HandleCreateProduct(c *fiber.Ctx) error {
	ctx := context.Background()

	var input CreateProductInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}
	if input.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Product name is required"})
	}
	if input.Price < 0 || input.Stock < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Price and stock must not be negative"})
	}

	query := `
		INSERT INTO products (id, name, sku, category, price, stock)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, sku, category, price, stock, created_at, updated_at
	`

	var product models.Product
	err := h.Store.QueryRow(ctx, query, uuid.NewString(), input.Name, input.SKU, input.Category, input.Price, input.Stock).Scan(
		&product.ID, &product.Name, &product.SKU, &product.Category,
		&product.Price, &product.Stock, &product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create product"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": product})
}

// HandleListProducts lists products with pagination.
// GET /api/v1/products
func (h *Handler) HandleListProducts(c *fiber.Ctx) error {
	ctx := context.Background()

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 10)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize

	var totalItems int
	if err := h.Store.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&totalItems); err != nil {
		log.Printf("Error counting products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to list products"})
	}

	query := `
		SELECT id, name, sku, category, price, stock, created_at, updated_at
		FROM products
		ORDER BY name
		LIMIT $1 OFFSET $2
	`
	rows, err := h.Store.Query(ctx, query, pageSize, offset)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to list products"})
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.SKU, &p.Category, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			log.Printf("Error scanning product: %v", err)
			continue
		}
		products = append(products, p)
	}

	return c.JSON(fiber.Map{
		"status":     "success",
		"data":       products,
		"pagination": utils.CreatePagination(totalItems, page, pageSize),
	})
}

// HandleGetProduct fetches a single product by ID.
// GET /api/v1/products/:productId
func (h *Handler) HandleGetProduct(c *fiber.Ctx) error {
	ctx := context.Background()
	productID := c.Params("productId")

	var product models.Product
	query := `
		SELECT id, name, sku, category, price, stock, created_at, updated_at
		FROM products
		WHERE id = $1
	`
	err := h.Store.QueryRow(ctx, query, productID).Scan(
		&product.ID, &product.Name, &product.SKU, &product.Category,
		&product.Price, &product.Stock, &product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Product not found"})
		}
		log.Printf("Error fetching product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch product"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": product})
}

// HandleUpdateProduct updates mutable fields of a product.
// PUT /api/v1/products/:productId
func (h *Handler) HandleUpdateProduct(c *fiber.Ctx) error {
	ctx := context.Background()
	productID := c.Params("productId")

	var input CreateProductInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}
	if input.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Product name is required"})
	}

	query := `
		UPDATE products
		SET name = $1, sku = $2, category = $3, price = $4, stock = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING id, name, sku, category, price, stock, created_at, updated_at
	`
	var product models.Product
	err := h.Store.QueryRow(ctx, query, input.Name, input.SKU, input.Category, input.Price, input.Stock, productID).Scan(
		&product.ID, &product.Name, &product.SKU, &product.Category,
		&product.Price, &product.Stock, &product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Product not found"})
		}
		log.Printf("Error updating product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to update product"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": product})
}

// HandleDeleteProduct removes a product and its sales history.
// DELETE /api/v1/products/:productId
func (h *Handler) HandleDeleteProduct(c *fiber.Ctx) error {
	ctx := context.Background()
	productID := c.Params("productId")

	affected, err := h.Store.Exec(ctx, `DELETE FROM products WHERE id = $1`, productID)
	if err != nil {
		log.Printf("Error deleting product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to delete product"})
	}
	if affected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Product not found"})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Product deleted"})
}
