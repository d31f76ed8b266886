package productapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"

	"github.com/jhoicas/product-console/internal/application/dto"
	"github.com/jhoicas/product-console/internal/application/ports"
	"github.com/jhoicas/product-console/internal/domain"
	"github.com/jhoicas/product-console/internal/domain/entity"
)

// Verificar en tiempo de compilación que Client implementa ProductService.
var _ ports.ProductService = (*Client)(nil)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Rutas del servicio remoto de productos.
const (
	PathDisplay = "/display"
	PathInsert  = "/insert"
	PathUpdate  = "/update"
	PathDelete  = "/delete/"
)

const maxResponseBytes = 4 << 20

// Client adaptador HTTP/JSON del servicio remoto de productos.
// La dirección base se inyecta al construirlo y no cambia durante la vida del proceso.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient construye el adaptador. timeout acota cada llamada completa (conexión + respuesta).
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// BaseURL dirección del servicio remoto.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// StatusError respuesta no 2xx del servicio remoto.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("productapi: %s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Unwrap permite errors.Is(err, domain.ErrRemote).
func (e *StatusError) Unwrap() error {
	return domain.ErrRemote
}

// List GET /display.
func (c *Client) List(ctx context.Context) ([]entity.Product, error) {
	var rows []dto.ProductRecord
	if err := c.do(ctx, http.MethodGet, PathDisplay, nil, &rows); err != nil {
		return nil, err
	}
	out := make([]entity.Product, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ToEntity())
	}
	return out, nil
}

// Insert POST /insert.
func (c *Client) Insert(ctx context.Context, p entity.Product) error {
	body, err := dto.NewProductRequest(p)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, PathInsert, body, nil)
}

// Update PUT /update con el producto completo, id incluido.
func (c *Client) Update(ctx context.Context, p entity.Product) error {
	body, err := dto.NewProductRequest(p)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, PathUpdate, body, nil)
}

// Delete DELETE /delete/{id}.
func (c *Client) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: id vacío", domain.ErrInvalidInput)
	}
	return c.do(ctx, http.MethodDelete, PathDelete+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var reader io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("productapi: serializar request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("productapi: crear HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("productapi: %s %s: timeout o cancelación: %w", method, path, ctx.Err())
		}
		return fmt.Errorf("productapi: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("productapi: leer respuesta: %w", err)
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("llamada al servicio de productos")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("productapi: deserializar respuesta de %s: %w", path, err)
	}
	return nil
}
