package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/odontocare/odontocare/internal/core/domain"
	"github.com/odontocare/odontocare/internal/core/ports"
)

type CenterRepository struct {
	db *sql.DB
}

func NewCenterRepository(db *sql.DB) *CenterRepository {
	return &CenterRepository{db: db}
}

// Create relies on uq_centros_nombre and uq_centros_direccion; either one
// maps to domain.ErrCenterExists.
func (r *CenterRepository) Create(ctx context.Context, c *domain.MedicalCenter) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO centros_medicos (nombre, direccion) VALUES (?, ?)",
		c.Name, c.Address)
	if err != nil {
		if isDuplicateEntry(err) {
			return domain.ErrCenterExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func (r *CenterRepository) FindByID(ctx context.Context, id int64) (*domain.MedicalCenter, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var c domain.MedicalCenter
	err := r.db.QueryRowContext(ctx,
		"SELECT id_centro, nombre, direccion FROM centros_medicos WHERE id_centro = ?", id).
		Scan(&c.ID, &c.Name, &c.Address)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCenterNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CenterRepository) List(ctx context.Context, page ports.PageRequest) ([]*domain.MedicalCenter, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	total, err := count(ctx, r.db, "SELECT COUNT(*) FROM centros_medicos")
	if err != nil {
		return nil, 0, fmt.Errorf("count centros_medicos: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id_centro, nombre, direccion FROM centros_medicos ORDER BY id_centro LIMIT ? OFFSET ?",
		page.PerPage, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	centers := make([]*domain.MedicalCenter, 0, page.PerPage)
	for rows.Next() {
		var c domain.MedicalCenter
		if err := rows.Scan(&c.ID, &c.Name, &c.Address); err != nil {
			return nil, 0, err
		}
		centers = append(centers, &c)
	}
	return centers, total, rows.Err()
}
