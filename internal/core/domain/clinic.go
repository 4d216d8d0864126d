package domain

// PatientStatus gates whether a patient may be booked.
type PatientStatus string

const (
	PatientActive   PatientStatus = "activo"
	PatientInactive PatientStatus = "inactivo"
)

// Doctor is the clinical profile linked 1:1 to a User with role medico.
type Doctor struct {
	ID        int64  `json:"id_doctor"`
	UserID    int64  `json:"id_usuario"`
	Name      string `json:"nombre"`
	Specialty string `json:"especialidad"`
}

// Patient is linked 1:1 to a User with role paciente.
type Patient struct {
	ID     int64         `json:"id_paciente"`
	UserID int64         `json:"id_usuario"`
	Name   string        `json:"nombre"`
	Phone  string        `json:"telefono"`
	Status PatientStatus `json:"estado"`
}

// Active reports whether the patient can receive new appointments.
func (p *Patient) Active() bool {
	return p.Status == PatientActive
}

// MedicalCenter is a physical clinic location. Name and address are unique.
type MedicalCenter struct {
	ID      int64  `json:"id_centro"`
	Name    string `json:"nombre"`
	Address string `json:"direccion"`
}
