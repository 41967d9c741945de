package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BookingMetrics contadores Prometheus de la integración con el motor de reservas.
type BookingMetrics struct {
	SyncsTotal      *prometheus.CounterVec
	ProvisionsTotal *prometheus.CounterVec
}

// New inicializa y registra los contadores en el registry por defecto.
func New() *BookingMetrics {
	return &BookingMetrics{
		SyncsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rentario",
			Subsystem: "booking",
			Name:      "syncs_total",
			Help:      "Total de intentos de sincronización por entidad y resultado.",
		}, []string{"entity", "outcome"}), // entity: rental_item, customer; outcome: synced, failed, skipped
		ProvisionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rentario",
			Subsystem: "booking",
			Name:      "provisions_total",
			Help:      "Total de intentos de aprovisionamiento de tenants por resultado.",
		}, []string{"outcome"}), // outcome: provisioned, failed, skipped
	}
}

// RecordSync incrementa el contador de sincronizaciones. Seguro con receptor nil.
func (m *BookingMetrics) RecordSync(entity, outcome string) {
	if m == nil {
		return
	}
	m.SyncsTotal.WithLabelValues(entity, outcome).Inc()
}

// RecordProvision incrementa el contador de aprovisionamientos. Seguro con receptor nil.
func (m *BookingMetrics) RecordProvision(outcome string) {
	if m == nil {
		return
	}
	m.ProvisionsTotal.WithLabelValues(outcome).Inc()
}
