package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	appbooking "github.com/jhoicas/Rentario-api/internal/application/booking"
	"github.com/jhoicas/Rentario-api/pkg/config"
	"github.com/jhoicas/Rentario-api/pkg/logger"
)

// apiKeyHeader header de autenticación de plataforma: la plataforma se autentica
// ante el motor de reservas como ella misma; el scoping por tenant viaja en el
// payload (tenant_id), no en la credencial.
const apiKeyHeader = "X-Api-Key"

var _ appbooking.Gateway = (*Client)(nil)

// Client implementa el Gateway del motor de reservas sobre HTTP/JSON.
// Usa net/http de la stdlib; no requiere librerías de terceros.
//
// Contrato de errores: las respuestas no-2xx y las fallas de transporte se
// entregan como Result{OK:false} con el diagnóstico capturado; Call nunca
// lanza errores de Go por fallas HTTP esperadas. Con la integración sin
// configurar, toda llamada es un no-op descriptivo (Disabled=true) y el
// diagnóstico se emite con rate limit (máx. uno por minuto) en vez de un
// flag estático de "log once".
type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	log         *logger.Logger
	disabledLog *rate.Limiter
}

// NewClient construye el cliente con un timeout de red generoso (30 s); el motor
// de reservas puede tardar varios segundos bajo carga.
func NewClient(cfg config.BookingConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		log:         log,
		disabledLog: rate.NewLimiter(rate.Every(time.Minute), 1),
	}
}

// Enabled indica si la integración está configurada.
func (c *Client) Enabled() bool {
	return c.baseURL != "" && c.apiKey != ""
}

// Call ejecuta method path contra el motor de reservas con body JSON opcional.
func (c *Client) Call(ctx context.Context, method, path string, body interface{}) appbooking.Result {
	if !c.Enabled() {
		if c.disabledLog.Allow() {
			c.log.Info().Msg("booking: integración no configurada, llamadas en no-op silencioso")
		}
		return appbooking.Result{
			Disabled: true,
			Error:    "integración con el motor de reservas no configurada (BOOKING_BASE_URL / BOOKING_API_KEY)",
		}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return appbooking.Result{Error: fmt.Sprintf("serializar body: %v", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return appbooking.Result{Error: fmt.Sprintf("crear request: %v", err)}
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Falla de transporte: también se convierte en Result, no en error.
		if ctx.Err() != nil {
			return appbooking.Result{Error: fmt.Sprintf("timeout o cancelación: %v", ctx.Err())}
		}
		return appbooking.Result{Error: fmt.Sprintf("llamada HTTP fallida: %v", err)}
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // max 1 MB
	if err != nil {
		return appbooking.Result{Status: resp.StatusCode, Error: fmt.Sprintf("leer respuesta: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return appbooking.Result{
			Status: resp.StatusCode,
			Error:  fmt.Sprintf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(rawBody))),
		}
	}

	return appbooking.Result{OK: true, Status: resp.StatusCode, Data: rawBody}
}
