package gestion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/odontocare/odontocare/internal/core/domain"
)

func newServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", time.Second, zerolog.Nop())
}

// ---- successful lookups ----

func TestLookupPatient_ForwardsTokenAndDecodes(t *testing.T) {
	var gotAuth, gotPath string
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Paciente":{"id_paciente":1,"id_usuario":4,"nombre":"Ana","telefono":"600","estado":"inactivo"}}`))
	})

	p, err := c.LookupPatient(context.Background(), "tok", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("expected forwarded bearer token, got %q", gotAuth)
	}
	if gotPath != "/admin/patient/1" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if p.Active() || p.Name != "Ana" {
		t.Fatalf("unexpected patient: %+v", p)
	}
}

func TestLookupDoctorByUsername_EscapesQuery(t *testing.T) {
	var gotQuery string
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("username")
		_, _ = w.Write([]byte(`{"Doctor":{"id_doctor":3,"id_usuario":7,"nombre":"Dr Ruiz","especialidad":"orto"}}`))
	})

	d, err := c.LookupDoctorByUsername(context.Background(), "tok", "dr ruiz&x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "dr ruiz&x" {
		t.Fatalf("query not escaped correctly: %q", gotQuery)
	}
	if d.ID != 3 {
		t.Fatalf("unexpected doctor: %+v", d)
	}
}

func TestLookupCenter_Decodes(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"CentroMedico":{"id_centro":2,"nombre":"Norte","direccion":"Calle 1"}}`))
	})
	m, err := c.LookupCenter(context.Background(), "tok", 2)
	if err != nil || m.Name != "Norte" {
		t.Fatalf("unexpected result: %+v, %v", m, err)
	}
}

// ---- failures ----

func TestLookup_NotFoundMapsToSentinel(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"no existe"}`))
	})

	ctx := context.Background()
	if _, err := c.LookupPatient(ctx, "tok", 9); !errors.Is(err, domain.ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
	if _, err := c.LookupDoctor(ctx, "tok", 9); !errors.Is(err, domain.ErrDoctorNotFound) {
		t.Fatalf("expected ErrDoctorNotFound, got %v", err)
	}
	if _, err := c.LookupCenter(ctx, "tok", 9); !errors.Is(err, domain.ErrCenterNotFound) {
		t.Fatalf("expected ErrCenterNotFound, got %v", err)
	}
}

func TestLookup_UpstreamStatusPropagates(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"Permiso denegado"}`))
	})

	_, err := c.LookupDoctor(context.Background(), "tok", 3)
	var upstream *domain.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.StatusCode != http.StatusForbidden || upstream.Message != "Permiso denegado" {
		t.Fatalf("unexpected upstream error: %+v", upstream)
	}
}

func TestLookup_TimeoutHasNoStatus(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})
	c := NewClient(srv.URL, 50*time.Millisecond, zerolog.Nop())

	_, err := c.LookupPatient(context.Background(), "tok", 1)
	var upstream *domain.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.StatusCode != 0 {
		t.Fatalf("expected status 0 for a timeout, got %d", upstream.StatusCode)
	}
}

func TestLookup_MissingEnvelopeIsBadGateway(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := c.LookupPatient(context.Background(), "tok", 1)
	var upstream *domain.UpstreamError
	if !errors.As(err, &upstream) || upstream.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502 upstream error, got %v", err)
	}
}

func TestErrorMessage_FallsBackToBody(t *testing.T) {
	if got := errorMessage(strings.NewReader("  upstream exploded \n")); got != "upstream exploded" {
		t.Fatalf("unexpected message %q", got)
	}
}
