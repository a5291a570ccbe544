package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// --- JWT & Auth ---

type JwtClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User represents an account that can sign in to the dashboard.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// --- Core Models ---

// Product represents a sellable item tracked by the dashboard.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SKU       *string   `json:"sku,omitempty"`
	Category  *string   `json:"category,omitempty"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Sale represents a single recorded sale of a product.
type Sale struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	Total     float64   `json:"total"`
	SaleDate  time.Time `json:"saleDate"`
	CreatedAt time.Time `json:"created_at"`
}

// --- Dashboard ---

// KpiData represents a single Key Performance Indicator.
type KpiData struct {
	Value float64 `json:"value"`
}

// ProductSummary represents a summary of a single product's performance.
type ProductSummary struct {
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	QuantitySold int     `json:"quantity_sold"`
	Revenue      float64 `json:"revenue"`
}

// DashboardSummary defines the structure for the dashboard summary endpoint.
type DashboardSummary struct {
	TotalSalesRevenue    KpiData          `json:"total_sales_revenue"`
	NumberOfTransactions KpiData          `json:"number_of_transactions"`
	AverageOrderValue    KpiData          `json:"average_order_value"`
	TopSellingProducts   []ProductSummary `json:"top_selling_products"`
}
