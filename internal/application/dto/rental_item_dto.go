package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRentalItemRequest alta de un artículo alquilable. TenantID solo lo
// consume un operador de plataforma; para principales de tenant se ignora y el
// tenant efectivo sale del token. Las tarifas llegan como float64 y se validan
// (finitas, diaria positiva) antes de convertir a decimal.
type CreateRentalItemRequest struct {
	TenantID     string   `json:"tenant_id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	PriceHour    float64  `json:"price_hour"`
	PriceDay     float64  `json:"price_day"`
	PriceWeekend float64  `json:"price_weekend"`
	PriceWeek    float64  `json:"price_week"`
	WidthM       float64  `json:"width_m"`
	LengthM      float64  `json:"length_m"`
	HeightM      float64  `json:"height_m"`
	Capacity     int      `json:"capacity"`
	Active       *bool    `json:"active"`   // nil = true
	Quantity     *int     `json:"quantity"` // nil = 1
	Images       []string `json:"images"`
}

// UpdateRentalItemRequest cambios sobre un artículo. No incluye tenant_id: el
// tenant de un artículo es inmutable y cualquier valor en el body se ignora.
type UpdateRentalItemRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	PriceHour    float64  `json:"price_hour"`
	PriceDay     float64  `json:"price_day"`
	PriceWeekend float64  `json:"price_weekend"`
	PriceWeek    float64  `json:"price_week"`
	WidthM       float64  `json:"width_m"`
	LengthM      float64  `json:"length_m"`
	HeightM      float64  `json:"height_m"`
	Capacity     int      `json:"capacity"`
	Active       *bool    `json:"active"`
	Quantity     *int     `json:"quantity"`
	Images       []string `json:"images"`
}

// RentalItemResponse representación completa (operadores del tenant).
type RentalItemResponse struct {
	ID           string          `json:"id"`
	TenantID     string          `json:"tenant_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	PriceHour    decimal.Decimal `json:"price_hour"`
	PriceDay     decimal.Decimal `json:"price_day"`
	PriceWeekend decimal.Decimal `json:"price_weekend"`
	PriceWeek    decimal.Decimal `json:"price_week"`
	WidthM       decimal.Decimal `json:"width_m"`
	LengthM      decimal.Decimal `json:"length_m"`
	HeightM      decimal.Decimal `json:"height_m"`
	Capacity     int             `json:"capacity"`
	Active       bool            `json:"active"`
	Quantity     int             `json:"quantity"`
	Images       []string        `json:"images"`
	SyncStatusResponse
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicRentalItemResponse subconjunto visible para el widget público de
// reservas: sin campos de sync ni datos internos del tenant.
type PublicRentalItemResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	PriceDay     decimal.Decimal `json:"price_day"`
	PriceWeekend decimal.Decimal `json:"price_weekend,omitempty"`
	Capacity     int             `json:"capacity"`
	Images       []string        `json:"images"`
}

// RentalItemListResponse listado paginado de artículos.
type RentalItemListResponse struct {
	Items []RentalItemResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
