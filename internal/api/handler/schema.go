package handler

// --- Request / Response types ---

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string `json:"token"`
	Role      string `json:"rol"`
	ExpiresAt string `json:"expires_at"`
}

type createUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=80"`
	Password string `json:"password" validate:"required,max=72"`
	Role     string `json:"rol"      validate:"required,oneof=admin medico secretaria paciente"`
}

type createDoctorRequest struct {
	Username  string `json:"username"     validate:"required,min=3,max=80"`
	Password  string `json:"password"     validate:"required,max=72"`
	Name      string `json:"nombre"       validate:"required,min=3,max=80"`
	Specialty string `json:"especialidad" validate:"required,min=3,max=30"`
}

type createPatientRequest struct {
	Username string `json:"username" validate:"required,min=3,max=80"`
	Password string `json:"password" validate:"required,max=72"`
	Name     string `json:"nombre"   validate:"required,min=3,max=80"`
	Phone    string `json:"telefono" validate:"required,min=3,max=25"`
	Status   string `json:"estado"   validate:"omitempty,oneof=activo inactivo"`
}

type createCenterRequest struct {
	Name    string `json:"nombre"    validate:"required,min=3,max=40"`
	Address string `json:"direccion" validate:"required,min=3,max=80"`
}

type pageQuery struct {
	Page    int `query:"page"     validate:"omitempty,gt=0"`
	PerPage int `query:"per_page" validate:"omitempty,gt=0"`
}

type paginationResponse struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	Total       int64 `json:"total"`
	PerPage     int   `json:"per_page"`
}

type createAppointmentRequest struct {
	Date      string `json:"fecha"       validate:"required"`
	Reason    string `json:"motivo"      validate:"required,min=3,max=30"`
	Status    string `json:"estado"      validate:"omitempty,oneof=activa"`
	UserID    int64  `json:"id_usuario"  validate:"required,gt=0"`
	PatientID int64  `json:"id_paciente" validate:"required,gt=0"`
	DoctorID  int64  `json:"id_doctor"   validate:"required,gt=0"`
	CenterID  int64  `json:"id_centro"   validate:"required,gt=0"`
}

type updateAppointmentRequest struct {
	Date      *string `json:"fecha"`
	Reason    *string `json:"motivo"      validate:"omitempty,min=3,max=30"`
	PatientID *int64  `json:"id_paciente" validate:"omitempty,gt=0"`
	DoctorID  *int64  `json:"id_doctor"   validate:"omitempty,gt=0"`
	CenterID  *int64  `json:"id_centro"   validate:"omitempty,gt=0"`
}

type listAppointmentsQuery struct {
	DoctorID  int64  `query:"id_doctor"   validate:"omitempty,gt=0"`
	PatientID int64  `query:"id_paciente" validate:"omitempty,gt=0"`
	CenterID  int64  `query:"id_centro"   validate:"omitempty,gt=0"`
	Date      string `query:"fecha"`
	Status    string `query:"estado"      validate:"omitempty,oneof=activa cancelada"`
}

type appointmentResponse struct {
	ID        int64  `json:"id_cita"`
	Date      string `json:"fecha"`
	Reason    string `json:"motivo"`
	Status    string `json:"estado"`
	PatientID int64  `json:"id_paciente"`
	DoctorID  int64  `json:"id_doctor"`
	CenterID  int64  `json:"id_centro"`
	UserID    int64  `json:"id_usuario"`
}

type appointmentEnvelope struct {
	Message     string              `json:"message"`
	Appointment appointmentResponse `json:"Cita"`
}

type appointmentListResponse struct {
	Message      string                `json:"message,omitempty"`
	Appointments []appointmentResponse `json:"Citas"`
}
