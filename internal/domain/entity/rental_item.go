package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RentalItem representa un tipo de artículo alquilable (castillo inflable, carpa,
// mesa...), no una unidad física. TenantID es inmutable: se asigna al crear y
// ninguna actualización posterior lo altera.
type RentalItem struct {
	ID          string
	TenantID    string
	Name        string
	Description string
	Category    string // castillos, carpas, mobiliario, sonido...

	// Tarifas. PriceDay es obligatoria (positiva y finita, validada antes de
	// persistir); el resto puede ser cero = no ofrecida.
	PriceHour    decimal.Decimal
	PriceDay     decimal.Decimal
	PriceWeekend decimal.Decimal
	PriceWeek    decimal.Decimal

	WidthM   decimal.Decimal
	LengthM  decimal.Decimal
	HeightM  decimal.Decimal
	Capacity int // personas

	Active   bool
	Quantity int
	Images   []string

	BookingServiceID *int64 // ID del servicio en el motor de reservas (nil = nunca sincronizado)
	SyncState

	CreatedAt time.Time
	UpdatedAt time.Time
}
