package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/odontocare/odontocare/internal/core/domain"
	"github.com/odontocare/odontocare/internal/core/ports"
)

// ---- stub services ----

type stubUserService struct {
	createFn func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error)
	listFn   func(ctx context.Context, page ports.PageRequest) (*ports.Page[*domain.User], error)
}

func (s *stubUserService) CreateUser(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, in)
}

func (s *stubUserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUserService) ListUsers(ctx context.Context, page ports.PageRequest) (*ports.Page[*domain.User], error) {
	return s.listFn(ctx, page)
}

type stubDoctorService struct {
	createFn     func(ctx context.Context, in ports.CreateDoctorInput) (*domain.Doctor, error)
	byUsernameFn func(ctx context.Context, username string) (*domain.Doctor, error)
}

func (s *stubDoctorService) CreateDoctor(ctx context.Context, in ports.CreateDoctorInput) (*domain.Doctor, error) {
	return s.createFn(ctx, in)
}

func (s *stubDoctorService) GetDoctor(ctx context.Context, id int64) (*domain.Doctor, error) {
	return &domain.Doctor{ID: id, UserID: 10, Name: "Dr Ruiz", Specialty: "ortodoncia"}, nil
}

func (s *stubDoctorService) GetDoctorByUsername(ctx context.Context, username string) (*domain.Doctor, error) {
	return s.byUsernameFn(ctx, username)
}

func (s *stubDoctorService) ListDoctors(ctx context.Context, page ports.PageRequest) (*ports.Page[*domain.Doctor], error) {
	return ports.NewPage[*domain.Doctor](nil, 0, page), nil
}

type stubCenterService struct {
	createFn func(ctx context.Context, in ports.CreateCenterInput) (*domain.MedicalCenter, error)
}

func (s *stubCenterService) CreateCenter(ctx context.Context, in ports.CreateCenterInput) (*domain.MedicalCenter, error) {
	return s.createFn(ctx, in)
}

func (s *stubCenterService) GetCenter(ctx context.Context, id int64) (*domain.MedicalCenter, error) {
	return nil, domain.ErrCenterNotFound
}

func (s *stubCenterService) ListCenters(ctx context.Context, page ports.PageRequest) (*ports.Page[*domain.MedicalCenter], error) {
	return nil, domain.ErrPageOutOfRange
}

type stubPatientService struct {
	createFn func(ctx context.Context, in ports.CreatePatientInput) (*domain.Patient, error)
}

func (s *stubPatientService) CreatePatient(ctx context.Context, in ports.CreatePatientInput) (*domain.Patient, error) {
	return s.createFn(ctx, in)
}

func (s *stubPatientService) GetPatient(ctx context.Context, id int64) (*domain.Patient, error) {
	return &domain.Patient{ID: id, UserID: 4, Name: "Ana", Phone: "600", Status: domain.PatientActive}, nil
}

func (s *stubPatientService) ListPatients(ctx context.Context, page ports.PageRequest) (*ports.Page[*domain.Patient], error) {
	return ports.NewPage([]*domain.Patient{{ID: 1}}, 1, page), nil
}

// ---- users ----

func TestUserHandler_Create(t *testing.T) {
	e := newEcho()
	stub := &stubUserService{
		createFn: func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
			if in.Role != domain.RoleSecretary {
				t.Fatalf("unexpected role %q", in.Role)
			}
			return &domain.User{ID: 2, Username: in.Username, PasswordHash: "hash", Role: in.Role}, nil
		},
	}

	c, rec := jsonRequest(e, http.MethodPost, "/admin/user", `{"username":"secre1","password":"pw","rol":"secretaria"}`)
	if err := NewUserHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	resp := decode(t, rec)
	user, ok := resp["Usuario"].(map[string]any)
	if !ok {
		t.Fatalf("missing Usuario envelope: %v", resp)
	}
	if _, leaked := user["password_hash"]; leaked || user["id_usuario"] != float64(2) {
		t.Fatalf("unexpected user body: %v", user)
	}
}

func TestUserHandler_Create_InvalidRole(t *testing.T) {
	e := newEcho()
	stub := &stubUserService{}

	c, _ := jsonRequest(e, http.MethodPost, "/admin/user", `{"username":"secre1","password":"pw","rol":"root"}`)
	err := NewUserHandler(stub).Create(c)

	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Fields["rol"] == "" {
		t.Fatalf("expected rol validation error, got %v", err)
	}
}

func TestCreateHandlers_PasswordTooLong(t *testing.T) {
	long := strings.Repeat("a", 73)
	tests := []struct {
		name   string
		path   string
		body   string
		create echo.HandlerFunc
	}{
		{
			name:   "user",
			path:   "/admin/user",
			body:   `{"username":"secre1","password":"` + long + `","rol":"secretaria"}`,
			create: NewUserHandler(&stubUserService{}).Create,
		},
		{
			name:   "doctor",
			path:   "/admin/doctor",
			body:   `{"username":"druiz","password":"` + long + `","nombre":"Dra Ruiz","especialidad":"ortodoncia"}`,
			create: NewDoctorHandler(&stubDoctorService{}).Create,
		},
		{
			name:   "patient",
			path:   "/admin/patient",
			body:   `{"username":"ana","password":"` + long + `","nombre":"Ana Gil","telefono":"600111222"}`,
			create: NewPatientHandler(&stubPatientService{}).Create,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := jsonRequest(newEcho(), http.MethodPost, tt.path, tt.body)

			var ve *domain.ValidationError
			if err := tt.create(c); !errors.As(err, &ve) || ve.Fields["password"] == "" {
				t.Fatalf("expected password validation error, got %v", err)
			}
		})
	}
}

func TestUserHandler_List_Pagination(t *testing.T) {
	e := newEcho()
	stub := &stubUserService{
		listFn: func(ctx context.Context, page ports.PageRequest) (*ports.Page[*domain.User], error) {
			if page.Page != 2 || page.PerPage != ports.MaxPerPage {
				t.Fatalf("unexpected page request: %+v", page)
			}
			return ports.NewPage([]*domain.User{{ID: 1}}, 101, page), nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/users?page=2&per_page=500", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := NewUserHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decode(t, rec)
	pagination := resp["pagination"].(map[string]any)
	if pagination["total_pages"] != float64(2) || pagination["current_page"] != float64(2) {
		t.Fatalf("unexpected pagination: %v", pagination)
	}
}

func TestUserHandler_List_BadPage(t *testing.T) {
	e := newEcho()
	req := httptest.NewRequest(http.MethodGet, "/admin/users?page=abc", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	var ve *domain.ValidationError
	if err := NewUserHandler(&stubUserService{}).List(c); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

// ---- doctors ----

func TestDoctorHandler_Create(t *testing.T) {
	e := newEcho()
	stub := &stubDoctorService{
		createFn: func(ctx context.Context, in ports.CreateDoctorInput) (*domain.Doctor, error) {
			return &domain.Doctor{ID: 3, UserID: 7, Name: in.Name, Specialty: in.Specialty}, nil
		},
	}

	c, rec := jsonRequest(e, http.MethodPost, "/admin/doctor",
		`{"username":"druiz","password":"pw","nombre":"Dr Ruiz","especialidad":"ortodoncia"}`)
	if err := NewDoctorHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decode(t, rec)
	if rec.Code != http.StatusCreated || resp["id_doctor"] != float64(3) || resp["id_usuario"] != float64(7) {
		t.Fatalf("unexpected response %d: %v", rec.Code, resp)
	}
}

func TestDoctorHandler_Create_Duplicate(t *testing.T) {
	e := newEcho()
	stub := &stubDoctorService{
		createFn: func(ctx context.Context, in ports.CreateDoctorInput) (*domain.Doctor, error) {
			return nil, domain.ErrDoctorExists
		},
	}

	c, _ := jsonRequest(e, http.MethodPost, "/admin/doctor",
		`{"username":"druiz","password":"pw","nombre":"Dr Ruiz","especialidad":"ortodoncia"}`)
	if err := NewDoctorHandler(stub).Create(c); !errors.Is(err, domain.ErrDoctorExists) {
		t.Fatalf("expected ErrDoctorExists, got %v", err)
	}
}

func TestDoctorHandler_GetByUsername_MissingParam(t *testing.T) {
	e := newEcho()
	req := httptest.NewRequest(http.MethodGet, "/admin/doctor/username", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	var ve *domain.ValidationError
	if err := NewDoctorHandler(&stubDoctorService{}).GetByUsername(c); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestDoctorHandler_GetByUsername(t *testing.T) {
	e := newEcho()
	stub := &stubDoctorService{
		byUsernameFn: func(ctx context.Context, username string) (*domain.Doctor, error) {
			if username != "druiz" {
				t.Fatalf("unexpected username %q", username)
			}
			return &domain.Doctor{ID: 3, UserID: 7}, nil
		},
	}
	req := httptest.NewRequest(http.MethodGet, "/admin/doctor/username?username=druiz", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := NewDoctorHandler(stub).GetByUsername(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	doctor := decode(t, rec)["Doctor"].(map[string]any)
	if doctor["id_doctor"] != float64(3) {
		t.Fatalf("unexpected doctor: %v", doctor)
	}
}

func TestDoctorHandler_Get_BadID(t *testing.T) {
	e := newEcho()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("-1")

	var ve *domain.ValidationError
	if err := NewDoctorHandler(&stubDoctorService{}).Get(c); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

// ---- patients ----

func TestPatientHandler_Create_DefaultsStatus(t *testing.T) {
	e := newEcho()
	stub := &stubPatientService{
		createFn: func(ctx context.Context, in ports.CreatePatientInput) (*domain.Patient, error) {
			if in.Status != "" {
				t.Fatalf("status should be left to the service default, got %q", in.Status)
			}
			return &domain.Patient{ID: 5, UserID: 9, Status: domain.PatientActive}, nil
		},
	}

	c, rec := jsonRequest(e, http.MethodPost, "/admin/patient",
		`{"username":"ana","password":"pw","nombre":"Ana Gil","telefono":"600111222"}`)
	if err := NewPatientHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if resp := decode(t, rec); resp["id_paciente"] != float64(5) {
		t.Fatalf("unexpected response: %v", resp)
	}
}

func TestPatientHandler_Create_InvalidStatus(t *testing.T) {
	e := newEcho()
	c, _ := jsonRequest(e, http.MethodPost, "/admin/patient",
		`{"username":"ana","password":"pw","nombre":"Ana Gil","telefono":"600111222","estado":"dormido"}`)

	var ve *domain.ValidationError
	if err := NewPatientHandler(&stubPatientService{}).Create(c); !errors.As(err, &ve) || ve.Fields["estado"] == "" {
		t.Fatalf("expected estado validation error, got %v", err)
	}
}

func TestPatientHandler_Get(t *testing.T) {
	e := newEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := NewPatientHandler(&stubPatientService{}).Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	patient := decode(t, rec)["Paciente"].(map[string]any)
	if patient["estado"] != "activo" {
		t.Fatalf("unexpected patient: %v", patient)
	}
}

// ---- centers ----

func TestCenterHandler_Create_TooShort(t *testing.T) {
	e := newEcho()
	c, _ := jsonRequest(e, http.MethodPost, "/admin/center", `{"nombre":"N","direccion":"Calle Mayor 1"}`)

	var ve *domain.ValidationError
	if err := NewCenterHandler(&stubCenterService{}).Create(c); !errors.As(err, &ve) || ve.Fields["nombre"] == "" {
		t.Fatalf("expected nombre validation error, got %v", err)
	}
}

func TestCenterHandler_Create(t *testing.T) {
	e := newEcho()
	stub := &stubCenterService{
		createFn: func(ctx context.Context, in ports.CreateCenterInput) (*domain.MedicalCenter, error) {
			return &domain.MedicalCenter{ID: 1, Name: in.Name, Address: in.Address}, nil
		},
	}
	c, rec := jsonRequest(e, http.MethodPost, "/admin/center", `{"nombre":"Norte","direccion":"Calle Mayor 1"}`)

	if err := NewCenterHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	center := decode(t, rec)["CentroMedico"].(map[string]any)
	if rec.Code != http.StatusCreated || center["id_centro"] != float64(1) {
		t.Fatalf("unexpected response %d: %v", rec.Code, center)
	}
}

func TestCenterHandler_List_PageOutOfRange(t *testing.T) {
	e := newEcho()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/admin/centers?page=9", nil), httptest.NewRecorder())

	if err := NewCenterHandler(&stubCenterService{}).List(c); !errors.Is(err, domain.ErrPageOutOfRange) {
		t.Fatalf("expected ErrPageOutOfRange, got %v", err)
	}
}
