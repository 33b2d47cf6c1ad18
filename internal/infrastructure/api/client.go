// Package api implementa los puertos de repositorio sobre el API REST remoto.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cartem-panel/internal/domain"
	"github.com/jhoicas/cartem-panel/pkg/logger"
)

func init() {
	// El API espera los precios como números JSON.
	decimal.MarshalJSONWithoutQuotes = true
}

// Client cliente HTTP mínimo para el API remoto. Cada llamada lleva el contexto de la petición entrante.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
	debug      bool
}

// NewClient construye el cliente. timeout 0 = sin límite.
func NewClient(baseURL string, timeout time.Duration, debug bool, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log.Component("api"),
		debug:      debug,
	}
}

// call describe una petición al API.
type call struct {
	method string
	path   string
	query  url.Values
	token  string
	body   any
}

// do envía la petición y decodifica la respuesta en out (puede ser nil).
//
// Errores:
//   - sin respuesta o cuerpo ilegible → domain.ErrNetwork
//   - HTTP >= 300, o cuerpo con "status" distinto de 200 → *domain.RemoteError con el mensaje del servidor
func (c *Client) do(ctx context.Context, in call, out any) error {
	endpoint := c.baseURL + in.path
	if len(in.query) > 0 {
		endpoint += "?" + in.query.Encode()
	}

	var payload []byte
	if in.body != nil {
		var err error
		if payload, err = json.Marshal(in.body); err != nil {
			return fmt.Errorf("api: serializar petición: %w", err)
		}
	}

	if c.debug {
		ev := c.log.Debug().Str("method", in.method).Str("endpoint", endpoint)
		if payload != nil {
			ev = ev.RawJSON("request", payload)
		}
		ev.Msg("petición saliente")
	}

	req, err := http.NewRequestWithContext(ctx, in.method, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("api: crear petición: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if in.token != "" {
		req.Header.Set("Authorization", "Bearer "+in.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", in.method, in.path, errors.Join(domain.ErrNetwork, err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: leer respuesta: %w", errors.Join(domain.ErrNetwork, err))
	}

	if c.debug {
		ev := c.log.Debug().Str("endpoint", in.path).Int("status_code", resp.StatusCode)
		if json.Valid(respBody) {
			ev = ev.RawJSON("response", respBody)
		} else {
			ev = ev.Bytes("response", respBody)
		}
		ev.Msg("respuesta entrante")
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		return &domain.RemoteError{Status: resp.StatusCode, Message: decodeEnvelope(respBody).Message}
	}
	if env := decodeEnvelope(respBody); env.Status != 0 && env.Status != http.StatusOK {
		return &domain.RemoteError{Status: env.Status, Message: env.Message}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("api: %s: respuesta inválida: %w", in.path, errors.Join(domain.ErrNetwork, err))
	}
	return nil
}

// decodeEnvelope lee {status, message} si el cuerpo es un objeto; cualquier otra forma da el valor cero.
func decodeEnvelope(body []byte) envelope {
	var env envelope
	_ = json.Unmarshal(body, &env)
	return env
}
