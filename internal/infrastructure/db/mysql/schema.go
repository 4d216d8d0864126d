package mysql

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied statement by statement; every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS usuarios (
		id_usuario    BIGINT       NOT NULL AUTO_INCREMENT,
		username      VARCHAR(80)  NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		rol           VARCHAR(20)  NOT NULL,
		PRIMARY KEY (id_usuario),
		UNIQUE KEY uq_usuarios_username (username)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS doctores (
		id_doctor    BIGINT      NOT NULL AUTO_INCREMENT,
		id_usuario   BIGINT      NOT NULL,
		nombre       VARCHAR(80) NOT NULL,
		especialidad VARCHAR(30) NOT NULL,
		PRIMARY KEY (id_doctor),
		UNIQUE KEY uq_doctores_usuario (id_usuario),
		KEY idx_doctores_nombre (nombre),
		CONSTRAINT fk_doctores_usuario FOREIGN KEY (id_usuario) REFERENCES usuarios (id_usuario)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS pacientes (
		id_paciente BIGINT      NOT NULL AUTO_INCREMENT,
		id_usuario  BIGINT      NOT NULL,
		nombre      VARCHAR(80) NOT NULL,
		telefono    VARCHAR(25) NOT NULL,
		estado      VARCHAR(10) NOT NULL DEFAULT 'activo',
		PRIMARY KEY (id_paciente),
		UNIQUE KEY uq_pacientes_usuario (id_usuario),
		KEY idx_pacientes_nombre (nombre),
		CONSTRAINT fk_pacientes_usuario FOREIGN KEY (id_usuario) REFERENCES usuarios (id_usuario)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS centros_medicos (
		id_centro BIGINT      NOT NULL AUTO_INCREMENT,
		nombre    VARCHAR(40) NOT NULL,
		direccion VARCHAR(80) NOT NULL,
		PRIMARY KEY (id_centro),
		UNIQUE KEY uq_centros_nombre (nombre),
		UNIQUE KEY uq_centros_direccion (direccion)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	// uq_citas_doctor_fecha is the double-booking guard: it covers every row
	// regardless of estado.
	`CREATE TABLE IF NOT EXISTS citas (
		id_cita     BIGINT      NOT NULL AUTO_INCREMENT,
		fecha       DATETIME    NOT NULL,
		motivo      VARCHAR(30) NOT NULL DEFAULT '',
		estado      VARCHAR(20) NOT NULL DEFAULT 'activa',
		id_paciente BIGINT      NOT NULL,
		id_doctor   BIGINT      NOT NULL,
		id_centro   BIGINT      NOT NULL,
		id_usuario  BIGINT      NOT NULL,
		PRIMARY KEY (id_cita),
		UNIQUE KEY uq_citas_doctor_fecha (id_doctor, fecha),
		KEY idx_citas_paciente (id_paciente),
		KEY idx_citas_centro (id_centro),
		KEY idx_citas_fecha (fecha),
		CONSTRAINT fk_citas_paciente FOREIGN KEY (id_paciente) REFERENCES pacientes (id_paciente),
		CONSTRAINT fk_citas_doctor FOREIGN KEY (id_doctor) REFERENCES doctores (id_doctor),
		CONSTRAINT fk_citas_centro FOREIGN KEY (id_centro) REFERENCES centros_medicos (id_centro)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates every table that does not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate statement %d: %w", i+1, err)
		}
	}
	return nil
}
