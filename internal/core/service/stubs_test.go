package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/odontocare/odontocare/internal/core/domain"
	"github.com/odontocare/odontocare/internal/core/ports"
)

var discardLogger = zerolog.Nop()

var errStubDB = errors.New("db unavailable")

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID      map[int64]*domain.User
	nextID    int64
	deleted   []int64
	createErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[int64]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.byID {
		if existing.Username == u.Username {
			return domain.ErrUserExists
		}
	}
	r.nextID++
	u.ID = r.nextID
	clone := *u
	r.byID[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	delete(r.byID, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *stubUserRepo) List(_ context.Context, page ports.PageRequest) ([]*domain.User, int64, error) {
	ids := make([]int64, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []*domain.User
	for i, id := range ids {
		if i >= page.Offset() && len(out) < page.PerPage {
			clone := *r.byID[id]
			out = append(out, &clone)
		}
	}
	return out, int64(len(ids)), nil
}

// ---------------------------------------------------------------------------
// Doctors / patients / centers
// ---------------------------------------------------------------------------

type stubDoctorRepo struct {
	byID      map[int64]*domain.Doctor
	nextID    int64
	createErr error
}

func newStubDoctorRepo() *stubDoctorRepo {
	return &stubDoctorRepo{byID: make(map[int64]*domain.Doctor)}
}

func (r *stubDoctorRepo) Create(_ context.Context, d *domain.Doctor) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	d.ID = r.nextID
	clone := *d
	r.byID[d.ID] = &clone
	return nil
}

func (r *stubDoctorRepo) FindByID(_ context.Context, id int64) (*domain.Doctor, error) {
	d, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrDoctorNotFound
	}
	clone := *d
	return &clone, nil
}

func (r *stubDoctorRepo) FindByUserID(_ context.Context, userID int64) (*domain.Doctor, error) {
	for _, d := range r.byID {
		if d.UserID == userID {
			clone := *d
			return &clone, nil
		}
	}
	return nil, domain.ErrDoctorNotFound
}

func (r *stubDoctorRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, d := range r.byID {
		if d.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubDoctorRepo) List(_ context.Context, _ ports.PageRequest) ([]*domain.Doctor, int64, error) {
	var out []*domain.Doctor
	for _, d := range r.byID {
		clone := *d
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

type stubPatientRepo struct {
	byID      map[int64]*domain.Patient
	nextID    int64
	createErr error
}

func newStubPatientRepo() *stubPatientRepo {
	return &stubPatientRepo{byID: make(map[int64]*domain.Patient)}
}

func (r *stubPatientRepo) Create(_ context.Context, p *domain.Patient) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	p.ID = r.nextID
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *stubPatientRepo) FindByID(_ context.Context, id int64) (*domain.Patient, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPatientNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPatientRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, p := range r.byID {
		if p.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubPatientRepo) List(_ context.Context, _ ports.PageRequest) ([]*domain.Patient, int64, error) {
	var out []*domain.Patient
	for _, p := range r.byID {
		clone := *p
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

type stubCenterRepo struct {
	byID   map[int64]*domain.MedicalCenter
	nextID int64
}

func newStubCenterRepo() *stubCenterRepo {
	return &stubCenterRepo{byID: make(map[int64]*domain.MedicalCenter)}
}

// Create mirrors the UNIQUE(nombre) and UNIQUE(direccion) constraints.
func (r *stubCenterRepo) Create(_ context.Context, c *domain.MedicalCenter) error {
	for _, existing := range r.byID {
		if existing.Name == c.Name || existing.Address == c.Address {
			return domain.ErrCenterExists
		}
	}
	r.nextID++
	c.ID = r.nextID
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *stubCenterRepo) FindByID(_ context.Context, id int64) (*domain.MedicalCenter, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCenterNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCenterRepo) List(_ context.Context, _ ports.PageRequest) ([]*domain.MedicalCenter, int64, error) {
	var out []*domain.MedicalCenter
	for _, c := range r.byID {
		clone := *c
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

// ---------------------------------------------------------------------------
// Appointments
// ---------------------------------------------------------------------------

// stubAppointmentRepo enforces UNIQUE(id_doctor, fecha) the way the MySQL
// table does, under a mutex so concurrent bookings race on the constraint.
type stubAppointmentRepo struct {
	mu         sync.Mutex
	byID       map[int64]*domain.Appointment
	nextID     int64
	lastFilter ports.AppointmentFilter
}

func newStubAppointmentRepo() *stubAppointmentRepo {
	return &stubAppointmentRepo{byID: make(map[int64]*domain.Appointment)}
}

func (r *stubAppointmentRepo) slotTaken(a *domain.Appointment) bool {
	for id, existing := range r.byID {
		if id != a.ID && existing.DoctorID == a.DoctorID && existing.Date.Equal(a.Date) {
			return true
		}
	}
	return false
}

func (r *stubAppointmentRepo) Create(_ context.Context, a *domain.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.slotTaken(a) {
		return domain.ErrDoubleBooking
	}
	r.nextID++
	a.ID = r.nextID
	clone := *a
	r.byID[a.ID] = &clone
	return nil
}

func (r *stubAppointmentRepo) FindByID(_ context.Context, id int64) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAppointmentRepo) Update(_ context.Context, a *domain.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[a.ID]; !ok {
		return domain.ErrAppointmentNotFound
	}
	if r.slotTaken(a) {
		return domain.ErrDoubleBooking
	}
	clone := *a
	r.byID[a.ID] = &clone
	return nil
}

func (r *stubAppointmentRepo) List(_ context.Context, f ports.AppointmentFilter) ([]*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFilter = f

	var out []*domain.Appointment
	for _, a := range r.byID {
		if f.DoctorID != 0 && a.DoctorID != f.DoctorID {
			continue
		}
		if f.PatientID != 0 && a.PatientID != f.PatientID {
			continue
		}
		if f.CenterID != 0 && a.CenterID != f.CenterID {
			continue
		}
		if !f.Date.IsZero() && !a.Date.Equal(f.Date) {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		clone := *a
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubAppointmentRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// ---------------------------------------------------------------------------
// Directory / idempotency / events
// ---------------------------------------------------------------------------

// fakeDirectory answers lookups from in-memory maps. err, when set, is
// returned by every lookup.
type fakeDirectory struct {
	mu         sync.Mutex
	patients   map[int64]*domain.Patient
	doctors    map[int64]*domain.Doctor
	doctorUser map[string]int64
	centers    map[int64]*domain.MedicalCenter
	err        error
	calls      []string
	lastToken  string
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		patients: map[int64]*domain.Patient{
			1: {ID: 1, UserID: 20, Name: "Ana Pérez", Status: domain.PatientActive},
			2: {ID: 2, UserID: 21, Name: "Luis Gómez", Status: domain.PatientInactive},
		},
		doctors: map[int64]*domain.Doctor{
			3: {ID: 3, UserID: 10, Name: "Dra. Ruiz", Specialty: "Ortodoncia"},
			4: {ID: 4, UserID: 11, Name: "Dr. Soto", Specialty: "Endodoncia"},
		},
		doctorUser: map[string]int64{"druiz": 3, "dsoto": 4},
		centers: map[int64]*domain.MedicalCenter{
			1: {ID: 1, Name: "Centro Norte", Address: "Av. Norte 1"},
			2: {ID: 2, Name: "Centro Sur", Address: "Av. Sur 2"},
		},
	}
}

func (d *fakeDirectory) record(call, token string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, call)
	if token != "" {
		d.lastToken = token
	}
}

func (d *fakeDirectory) LookupPatient(_ context.Context, token string, id int64) (*domain.Patient, error) {
	d.record("patient", token)
	if d.err != nil {
		return nil, d.err
	}
	p, ok := d.patients[id]
	if !ok {
		return nil, domain.ErrPatientNotFound
	}
	return p, nil
}

func (d *fakeDirectory) LookupDoctor(_ context.Context, _ string, id int64) (*domain.Doctor, error) {
	d.record("doctor", "")
	if d.err != nil {
		return nil, d.err
	}
	doc, ok := d.doctors[id]
	if !ok {
		return nil, domain.ErrDoctorNotFound
	}
	return doc, nil
}

func (d *fakeDirectory) LookupDoctorByUsername(_ context.Context, _ string, username string) (*domain.Doctor, error) {
	d.record("doctor_by_username", "")
	if d.err != nil {
		return nil, d.err
	}
	id, ok := d.doctorUser[username]
	if !ok {
		return nil, domain.ErrDoctorNotFound
	}
	return d.doctors[id], nil
}

func (d *fakeDirectory) LookupCenter(_ context.Context, _ string, id int64) (*domain.MedicalCenter, error) {
	d.record("center", "")
	if d.err != nil {
		return nil, d.err
	}
	c, ok := d.centers[id]
	if !ok {
		return nil, domain.ErrCenterNotFound
	}
	return c, nil
}

type stubIdempotencyStore struct {
	keys      map[string]int64
	lookupErr error
}

func newStubIdempotencyStore() *stubIdempotencyStore {
	return &stubIdempotencyStore{keys: make(map[string]int64)}
}

func (s *stubIdempotencyStore) Lookup(_ context.Context, key string) (int64, bool, error) {
	if s.lookupErr != nil {
		return 0, false, s.lookupErr
	}
	id, ok := s.keys[key]
	return id, ok, nil
}

func (s *stubIdempotencyStore) Remember(_ context.Context, key string, id int64) error {
	s.keys[key] = id
	return nil
}

type recordingQueue struct {
	mu     sync.Mutex
	events []domain.AppointmentEvent
}

func (q *recordingQueue) Enqueue(e domain.AppointmentEvent) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, e)
}
