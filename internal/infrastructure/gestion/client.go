// Package gestion is the citas-side HTTP client for the gestión service.
package gestion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/odontocare/odontocare/internal/api/metrics"
	"github.com/odontocare/odontocare/internal/core/domain"
)

const DefaultTimeout = 5 * time.Second

// Client implements ports.Directory over gestión's /admin endpoints. It
// forwards the caller's bearer token and never retries.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (c *Client) LookupPatient(ctx context.Context, token string, id int64) (*domain.Patient, error) {
	var body struct {
		Patient *domain.Patient `json:"Paciente"`
	}
	path := "/admin/patient/" + strconv.FormatInt(id, 10)
	if err := c.get(ctx, "patient", path, token, domain.ErrPatientNotFound, &body); err != nil {
		return nil, err
	}
	if body.Patient == nil {
		return nil, malformed("patient")
	}
	return body.Patient, nil
}

func (c *Client) LookupDoctor(ctx context.Context, token string, id int64) (*domain.Doctor, error) {
	return c.doctor(ctx, "doctor", "/admin/doctor/"+strconv.FormatInt(id, 10), token)
}

func (c *Client) LookupDoctorByUsername(ctx context.Context, token, username string) (*domain.Doctor, error) {
	path := "/admin/doctor/username?username=" + url.QueryEscape(username)
	return c.doctor(ctx, "doctor_by_username", path, token)
}

func (c *Client) LookupCenter(ctx context.Context, token string, id int64) (*domain.MedicalCenter, error) {
	var body struct {
		Center *domain.MedicalCenter `json:"CentroMedico"`
	}
	path := "/admin/center/" + strconv.FormatInt(id, 10)
	if err := c.get(ctx, "center", path, token, domain.ErrCenterNotFound, &body); err != nil {
		return nil, err
	}
	if body.Center == nil {
		return nil, malformed("center")
	}
	return body.Center, nil
}

func (c *Client) doctor(ctx context.Context, resource, path, token string) (*domain.Doctor, error) {
	var body struct {
		Doctor *domain.Doctor `json:"Doctor"`
	}
	if err := c.get(ctx, resource, path, token, domain.ErrDoctorNotFound, &body); err != nil {
		return nil, err
	}
	if body.Doctor == nil {
		return nil, malformed(resource)
	}
	return body.Doctor, nil
}

// get performs the request and decodes a 2xx body into out. A 404 maps to
// notFound; any other failure becomes a *domain.UpstreamError.
func (c *Client) get(ctx context.Context, resource, path, token string, notFound error, out any) (err error) {
	start := time.Now()
	defer func() {
		outcome := "ok"
		switch {
		case errors.Is(err, notFound):
			outcome = "not_found"
		case err != nil:
			outcome = "error"
		}
		metrics.DirectoryLookupDuration.WithLabelValues(resource, outcome).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &domain.UpstreamError{Resource: resource, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("resource", resource).Msg("gestión unreachable")
		return &domain.UpstreamError{Resource: resource, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return notFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := errorMessage(resp.Body)
		c.log.Warn().Str("resource", resource).Int("status", resp.StatusCode).Str("message", msg).Msg("gestión lookup failed")
		return &domain.UpstreamError{
			Resource:   resource,
			StatusCode: resp.StatusCode,
			Message:    msg,
			Err:        fmt.Errorf("status %d", resp.StatusCode),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.UpstreamError{Resource: resource, StatusCode: http.StatusBadGateway, Message: "respuesta inválida de gestión", Err: err}
	}
	return nil
}

// errorMessage extracts the "error" field of gestión's error envelope,
// falling back to the raw body.
func errorMessage(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, 4096))
	var envelope struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &envelope) == nil && envelope.Error != "" {
		return envelope.Error
	}
	return strings.TrimSpace(string(raw))
}

func malformed(resource string) error {
	return &domain.UpstreamError{
		Resource:   resource,
		StatusCode: http.StatusBadGateway,
		Message:    "respuesta inválida de gestión",
		Err:        errors.New("missing envelope"),
	}
}
