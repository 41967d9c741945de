package booking

import (
	"context"
	"encoding/json"
)

// Result resultado uniforme de una llamada al motor de reservas.
// Las fallas HTTP esperadas (no-2xx) y los errores de transporte se entregan con
// OK=false; el gateway nunca propaga un error de Go por esos casos.
type Result struct {
	OK       bool
	Status   int             // código HTTP (0 en fallo de transporte o integración deshabilitada)
	Data     json.RawMessage // cuerpo de la respuesta en éxito
	Error    string          // diagnóstico en fallo (incluye cuerpo de respuesta si lo hay)
	Disabled bool            // integración sin configurar: no-op legítimo, no una falla
}

// Gateway define el puerto de salida hacia el motor externo de reservas.
// La implementación concreta usa HTTP/JSON; para tests se inyecta un fake.
type Gateway interface {
	// Enabled indica si la integración está configurada (BaseURL + APIKey).
	Enabled() bool
	// Call ejecuta method path con body JSON opcional y autenticación de plataforma.
	Call(ctx context.Context, method, path string, body interface{}) Result
}

// SyncResult resultado de sincronizar una entidad individual.
type SyncResult struct {
	Success    bool
	Skipped    bool   // gate: inactivo, tenant sin aprovisionar o integración deshabilitada
	ExternalID *int64 // ID remoto conocido tras el intento
	Error      string
}

// BatchResult conteos de un barrido de sincronización.
type BatchResult struct {
	Synced  int `json:"synced"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// ProvisionResult resultado del aprovisionamiento de un tenant.
type ProvisionResult struct {
	Success         bool
	Skipped         bool // ya aprovisionado o integración deshabilitada
	BookingTenantID *int64
	Error           string
}

// Respuestas del motor de reservas.

type remoteRecord struct {
	ID int64 `json:"id"`
}

type remoteList struct {
	Items []remoteRecord `json:"items"`
}

type remoteAPIKey struct {
	ID  int64  `json:"id"`
	Key string `json:"key"`
}
