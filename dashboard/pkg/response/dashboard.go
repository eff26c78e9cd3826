package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RecentOrder struct {
	ID             uuid.UUID       `json:"id"`
	UserId         uuid.UUID       `json:"user_id"`
	Status         string          `json:"status"`
	Total          decimal.Decimal `json:"total"`
	TotalFormatted string          `json:"total_formatted"`
	CreatedAt      time.Time       `json:"created_at"`
}

type Stats struct {
	CustomerCount    int64           `json:"customer_count"`
	ProductCount     int64           `json:"product_count"`
	OrderCount       int64           `json:"order_count"`
	Revenue          decimal.Decimal `json:"revenue"`
	RevenueFormatted string          `json:"revenue_formatted"`
	RecentOrders     []RecentOrder   `json:"recent_orders"`
}
