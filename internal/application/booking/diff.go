package booking

import "github.com/jhoicas/Rentario-api/internal/domain/entity"

// Filtro de relevancia de cambios: lista fija y auditable de campos cuyo cambio
// invalida la copia remota. Los campos de estado de sincronización (ID remoto,
// sync_status, timestamps) quedan explícitamente fuera: así el write-back del
// propio orquestador nunca re-dispara otro sync (prevención de bucles).

// RentalItemNeedsSync compara campo a campo (igualdad estructural, no
// serialización) las versiones previa y nueva de un artículo.
func RentalItemNeedsSync(prev, next *entity.RentalItem) bool {
	if prev == nil || next == nil {
		return true
	}
	switch {
	case prev.Name != next.Name,
		prev.Description != next.Description,
		prev.Category != next.Category,
		!prev.PriceHour.Equal(next.PriceHour),
		!prev.PriceDay.Equal(next.PriceDay),
		!prev.PriceWeekend.Equal(next.PriceWeekend),
		!prev.PriceWeek.Equal(next.PriceWeek),
		prev.Active != next.Active,
		prev.Quantity != next.Quantity,
		!equalStrings(prev.Images, next.Images):
		return true
	}
	return false
}

// CustomerNeedsSync compara los campos de contacto relevantes de un cliente.
func CustomerNeedsSync(prev, next *entity.Customer) bool {
	if prev == nil || next == nil {
		return true
	}
	switch {
	case prev.Name != next.Name,
		prev.Email != next.Email,
		prev.Phone != next.Phone,
		prev.Address != next.Address,
		prev.Notes != next.Notes,
		!equalStrings(prev.Tags, next.Tags):
		return true
	}
	return false
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
