package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/odontocare/odontocare/internal/core/domain"
	"github.com/odontocare/odontocare/internal/core/ports"
)

const doctorColumns = "id_doctor, id_usuario, nombre, especialidad"

type DoctorRepository struct {
	db *sql.DB
}

func NewDoctorRepository(db *sql.DB) *DoctorRepository {
	return &DoctorRepository{db: db}
}

func (r *DoctorRepository) Create(ctx context.Context, d *domain.Doctor) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO doctores (id_usuario, nombre, especialidad) VALUES (?, ?, ?)",
		d.UserID, d.Name, d.Specialty)
	if err != nil {
		if isDuplicateEntry(err) {
			return domain.ErrDoctorExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = id
	return nil
}

func (r *DoctorRepository) FindByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return scanOneDoctor(r.db.QueryRowContext(ctx,
		"SELECT "+doctorColumns+" FROM doctores WHERE id_doctor = ?", id))
}

func (r *DoctorRepository) FindByUserID(ctx context.Context, userID int64) (*domain.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return scanOneDoctor(r.db.QueryRowContext(ctx,
		"SELECT "+doctorColumns+" FROM doctores WHERE id_usuario = ?", userID))
}

func (r *DoctorRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	n, err := count(ctx, r.db, "SELECT COUNT(*) FROM doctores WHERE nombre = ?", name)
	return n > 0, err
}

func (r *DoctorRepository) List(ctx context.Context, page ports.PageRequest) ([]*domain.Doctor, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	total, err := count(ctx, r.db, "SELECT COUNT(*) FROM doctores")
	if err != nil {
		return nil, 0, fmt.Errorf("count doctores: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+doctorColumns+" FROM doctores ORDER BY id_doctor LIMIT ? OFFSET ?",
		page.PerPage, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	doctors := make([]*domain.Doctor, 0, page.PerPage)
	for rows.Next() {
		var d domain.Doctor
		if err := rows.Scan(&d.ID, &d.UserID, &d.Name, &d.Specialty); err != nil {
			return nil, 0, err
		}
		doctors = append(doctors, &d)
	}
	return doctors, total, rows.Err()
}

func scanOneDoctor(row *sql.Row) (*domain.Doctor, error) {
	var d domain.Doctor
	if err := row.Scan(&d.ID, &d.UserID, &d.Name, &d.Specialty); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDoctorNotFound
		}
		return nil, err
	}
	return &d, nil
}
