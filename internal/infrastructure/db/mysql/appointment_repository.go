package mysql

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/odontocare/odontocare/internal/core/domain"
	"github.com/odontocare/odontocare/internal/core/ports"
)

const appointmentColumns = "id_cita, fecha, motivo, estado, id_paciente, id_doctor, id_centro, id_usuario"

// AppointmentRepository stores citas. uq_citas_doctor_fecha makes the
// double-booking check part of the INSERT/UPDATE itself.
type AppointmentRepository struct {
	db *sql.DB
}

func NewAppointmentRepository(db *sql.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO citas (fecha, motivo, estado, id_paciente, id_doctor, id_centro, id_usuario)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.Date.UTC(), a.Reason, string(a.Status), a.PatientID, a.DoctorID, a.CenterID, a.UserID)
	if err != nil {
		if isDuplicateEntry(err) {
			return domain.ErrDoubleBooking
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	a, err := scanAppointment(r.db.QueryRowContext(ctx,
		"SELECT "+appointmentColumns+" FROM citas WHERE id_cita = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAppointmentNotFound
	}
	return a, err
}

// Update writes every mutable column. The connection reports matched rows,
// so zero affected rows means the id does not exist.
func (r *AppointmentRepository) Update(ctx context.Context, a *domain.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`UPDATE citas
		    SET fecha = ?, motivo = ?, estado = ?, id_paciente = ?, id_doctor = ?, id_centro = ?
		  WHERE id_cita = ?`,
		a.Date.UTC(), a.Reason, string(a.Status), a.PatientID, a.DoctorID, a.CenterID, a.ID)
	if err != nil {
		if isDuplicateEntry(err) {
			return domain.ErrDoubleBooking
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}

func (r *AppointmentRepository) List(ctx context.Context, f ports.AppointmentFilter) ([]*domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query, args := buildAppointmentQuery(f)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// buildAppointmentQuery ANDs together every set filter field.
func buildAppointmentQuery(f ports.AppointmentFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.DoctorID != 0 {
		conds = append(conds, "id_doctor = ?")
		args = append(args, f.DoctorID)
	}
	if f.PatientID != 0 {
		conds = append(conds, "id_paciente = ?")
		args = append(args, f.PatientID)
	}
	if f.CenterID != 0 {
		conds = append(conds, "id_centro = ?")
		args = append(args, f.CenterID)
	}
	if !f.Date.IsZero() {
		conds = append(conds, "fecha = ?")
		args = append(args, f.Date.UTC())
	}
	if f.Status != "" {
		conds = append(conds, "estado = ?")
		args = append(args, string(f.Status))
	}

	var b strings.Builder
	b.WriteString("SELECT " + appointmentColumns + " FROM citas")
	if len(conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}
	b.WriteString(" ORDER BY fecha, id_cita")
	return b.String(), args
}

func scanAppointment(s rowScanner) (*domain.Appointment, error) {
	var (
		a      domain.Appointment
		status string
	)
	if err := s.Scan(&a.ID, &a.Date, &a.Reason, &status, &a.PatientID, &a.DoctorID, &a.CenterID, &a.UserID); err != nil {
		return nil, err
	}
	a.Status = domain.AppointmentStatus(status)
	a.Date = a.Date.UTC()
	return &a, nil
}
