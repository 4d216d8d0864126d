package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/odontocare/odontocare/internal/core/domain"
	"github.com/odontocare/odontocare/internal/core/ports"
)

const patientColumns = "id_paciente, id_usuario, nombre, telefono, estado"

type PatientRepository struct {
	db *sql.DB
}

func NewPatientRepository(db *sql.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

func (r *PatientRepository) Create(ctx context.Context, p *domain.Patient) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO pacientes (id_usuario, nombre, telefono, estado) VALUES (?, ?, ?, ?)",
		p.UserID, p.Name, p.Phone, string(p.Status))
	if err != nil {
		if isDuplicateEntry(err) {
			return domain.ErrPatientExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

func (r *PatientRepository) FindByID(ctx context.Context, id int64) (*domain.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	p, err := scanPatient(r.db.QueryRowContext(ctx,
		"SELECT "+patientColumns+" FROM pacientes WHERE id_paciente = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPatientNotFound
	}
	return p, err
}

func (r *PatientRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	n, err := count(ctx, r.db, "SELECT COUNT(*) FROM pacientes WHERE nombre = ?", name)
	return n > 0, err
}

func (r *PatientRepository) List(ctx context.Context, page ports.PageRequest) ([]*domain.Patient, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	total, err := count(ctx, r.db, "SELECT COUNT(*) FROM pacientes")
	if err != nil {
		return nil, 0, fmt.Errorf("count pacientes: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+patientColumns+" FROM pacientes ORDER BY id_paciente LIMIT ? OFFSET ?",
		page.PerPage, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	patients := make([]*domain.Patient, 0, page.PerPage)
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		patients = append(patients, p)
	}
	return patients, total, rows.Err()
}

func scanPatient(s rowScanner) (*domain.Patient, error) {
	var (
		p      domain.Patient
		status string
	)
	if err := s.Scan(&p.ID, &p.UserID, &p.Name, &p.Phone, &status); err != nil {
		return nil, err
	}
	p.Status = domain.PatientStatus(status)
	return &p, nil
}
