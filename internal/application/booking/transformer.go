package booking

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Rentario-api/internal/domain/entity"
)

// Namespace prefijo constante de la integración para claves de correlación.
const Namespace = "rentario"

// standardHours jornada estándar usada para derivar tarifa diaria desde la horaria.
var standardHours = decimal.NewFromInt(8)

// CorrelationKey deriva la clave de correlación determinista de un ID interno.
// Permite encontrar el registro remoto por búsqueda cuando aún no se conoce su ID.
func CorrelationKey(internalID string) string {
	return Namespace + "-" + internalID
}

// ServicePayload cuerpo del servicio que entiende el motor de reservas.
// El tenant remoto viaja en el body (tenant_id), nunca el ID interno del tenant:
// ese solo existe dentro de Metadata, que el motor trata como opaco.
type ServicePayload struct {
	TenantID       int64           `json:"tenant_id"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Category       string          `json:"category,omitempty"`
	Price          decimal.Decimal `json:"price"`
	Quantity       int             `json:"quantity"`
	Images         []string        `json:"images,omitempty"`
	CorrelationKey string          `json:"correlation_key"`
	Metadata       Metadata        `json:"metadata"`
}

// CustomerPayload cuerpo del cliente que entiende el motor de reservas.
type CustomerPayload struct {
	TenantID       int64    `json:"tenant_id"`
	Name           string   `json:"name"`
	Email          string   `json:"email,omitempty"`
	Phone          string   `json:"phone,omitempty"`
	Address        string   `json:"address,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	CorrelationKey string   `json:"correlation_key"`
	Metadata       Metadata `json:"metadata"`
}

// Metadata procedencia opaca que el motor de reservas guarda y devuelve sin interpretar.
type Metadata struct {
	Source         string      `json:"source"` // siempre Namespace
	CorrelationKey string      `json:"correlation_key"`
	Record         interface{} `json:"record"` // snapshot del registro interno
}

// itemSnapshot subconjunto seguro del RentalItem embebido como procedencia.
type itemSnapshot struct {
	ID           string          `json:"id"`
	TenantID     string          `json:"tenant_id"`
	Name         string          `json:"name"`
	Category     string          `json:"category,omitempty"`
	PriceHour    decimal.Decimal `json:"price_hour"`
	PriceDay     decimal.Decimal `json:"price_day"`
	PriceWeekend decimal.Decimal `json:"price_weekend"`
	PriceWeek    decimal.Decimal `json:"price_week"`
	Capacity     int             `json:"capacity"`
	Quantity     int             `json:"quantity"`
}

// customerSnapshot subconjunto seguro del Customer embebido como procedencia.
type customerSnapshot struct {
	ID       string   `json:"id"`
	TenantID string   `json:"tenant_id"`
	Name     string   `json:"name"`
	Email    string   `json:"email,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// DerivedPrice calcula la tarifa principal del servicio remoto: la diaria si
// existe; si no, se aproxima con la horaria por jornada estándar de 8 horas.
func DerivedPrice(item *entity.RentalItem) decimal.Decimal {
	if item.PriceDay.IsPositive() {
		return item.PriceDay
	}
	return item.PriceHour.Mul(standardHours)
}

// ServicePayloadFrom transforma un RentalItem al esquema del motor de reservas.
// Función pura: no valida (la entrada ya pasó el gate de validación) ni falla.
func ServicePayloadFrom(item *entity.RentalItem, bookingTenantID int64) ServicePayload {
	key := CorrelationKey(item.ID)
	return ServicePayload{
		TenantID:       bookingTenantID,
		Name:           item.Name,
		Description:    item.Description,
		Category:       item.Category,
		Price:          DerivedPrice(item),
		Quantity:       item.Quantity,
		Images:         item.Images,
		CorrelationKey: key,
		Metadata: Metadata{
			Source:         Namespace,
			CorrelationKey: key,
			Record: itemSnapshot{
				ID:           item.ID,
				TenantID:     item.TenantID,
				Name:         item.Name,
				Category:     item.Category,
				PriceHour:    item.PriceHour,
				PriceDay:     item.PriceDay,
				PriceWeekend: item.PriceWeekend,
				PriceWeek:    item.PriceWeek,
				Capacity:     item.Capacity,
				Quantity:     item.Quantity,
			},
		},
	}
}

// CustomerPayloadFrom transforma un Customer al esquema del motor de reservas.
func CustomerPayloadFrom(customer *entity.Customer, bookingTenantID int64) CustomerPayload {
	key := CorrelationKey(customer.ID)
	return CustomerPayload{
		TenantID:       bookingTenantID,
		Name:           customer.Name,
		Email:          customer.Email,
		Phone:          customer.Phone,
		Address:        customer.Address,
		Tags:           customer.Tags,
		CorrelationKey: key,
		Metadata: Metadata{
			Source:         Namespace,
			CorrelationKey: key,
			Record: customerSnapshot{
				ID:       customer.ID,
				TenantID: customer.TenantID,
				Name:     customer.Name,
				Email:    customer.Email,
				Phone:    customer.Phone,
				Tags:     customer.Tags,
			},
		},
	}
}

// TenantPolicy paquete de políticas fijo con el que se aprovisiona todo tenant
// del dominio de alquiler de artículos: disponibilidad por rango de fechas (no
// franjas horarias), asignación de la unidad en mejor condición, selección de
// personal oculta y auto-asignación del primero disponible. No es configurable
// al aprovisionar.
type TenantPolicy struct {
	AvailabilityMode string `json:"availability_mode"`
	UnitAssignment   string `json:"unit_assignment"`
	StaffSelection   string `json:"staff_selection"`
	AutoAssignment   string `json:"auto_assignment"`
}

// DefaultTenantPolicy devuelve las políticas del dominio de alquiler.
func DefaultTenantPolicy() TenantPolicy {
	return TenantPolicy{
		AvailabilityMode: "date_range",
		UnitAssignment:   "best_condition_first",
		StaffSelection:   "hidden",
		AutoAssignment:   "first_available",
	}
}

// TenantPayload cuerpo para crear el tenant en el motor de reservas.
type TenantPayload struct {
	Name   string       `json:"name"`
	Slug   string       `json:"slug"`
	Plan   string       `json:"plan"`
	Policy TenantPolicy `json:"policy"`
}

// TenantPayloadFrom transforma un Tenant al esquema de aprovisionamiento remoto.
func TenantPayloadFrom(tenant *entity.Tenant) TenantPayload {
	return TenantPayload{
		Name:   tenant.Name,
		Slug:   tenant.Slug,
		Plan:   tenant.Plan,
		Policy: DefaultTenantPolicy(),
	}
}

// APIKeyPayload cuerpo para emitir la credencial del tenant remoto.
type APIKeyPayload struct {
	TenantID    int64    `json:"tenant_id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// APIKeyPayloadFor construye la solicitud de credencial con permisos completos,
// nombrada por la integración.
func APIKeyPayloadFor(bookingTenantID int64) APIKeyPayload {
	return APIKeyPayload{
		TenantID:    bookingTenantID,
		Name:        Namespace + "-integration",
		Permissions: []string{"read", "write", "delete"},
	}
}
