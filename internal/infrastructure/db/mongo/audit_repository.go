package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/odontocare/odontocare/internal/core/domain"
)

const collectionAppointmentEvents = "cita_events"

// AuditRepository appends appointment lifecycle events to the cita_events
// collection. It is an ports.AppointmentEventSink.
type AuditRepository struct {
	col *mongo.Collection
	now func() time.Time
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAppointmentEvents), now: time.Now}
}

type auditAppointment struct {
	ID        int64     `bson:"id_cita"`
	Date      time.Time `bson:"fecha"`
	Reason    string    `bson:"motivo"`
	Status    string    `bson:"estado"`
	PatientID int64     `bson:"id_paciente"`
	DoctorID  int64     `bson:"id_doctor"`
	CenterID  int64     `bson:"id_centro"`
	UserID    int64     `bson:"id_usuario"`
}

type auditDocument struct {
	EventID     string           `bson:"event_id"`
	Type        string           `bson:"type"`
	Appointment auditAppointment `bson:"cita"`
	Actor       string           `bson:"actor"`
	ActorRole   string           `bson:"actor_rol"`
	OccurredAt  time.Time        `bson:"occurred_at"`
	RecordedAt  time.Time        `bson:"recorded_at"`
}

func toAuditDocument(e domain.AppointmentEvent, recordedAt time.Time) auditDocument {
	a := e.Appointment
	return auditDocument{
		EventID: e.ID,
		Type:    string(e.Type),
		Appointment: auditAppointment{
			ID:        a.ID,
			Date:      a.Date.UTC(),
			Reason:    a.Reason,
			Status:    string(a.Status),
			PatientID: a.PatientID,
			DoctorID:  a.DoctorID,
			CenterID:  a.CenterID,
			UserID:    a.UserID,
		},
		Actor:      e.Actor,
		ActorRole:  e.ActorRole,
		OccurredAt: e.OccurredAt.UTC(),
		RecordedAt: recordedAt.UTC(),
	}
}

func (r *AuditRepository) Name() string { return "mongo_audit" }

// Record inserts the event. A redelivered event hits the unique event_id
// index and is treated as already recorded.
func (r *AuditRepository) Record(ctx context.Context, e domain.AppointmentEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toAuditDocument(e, r.now())); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// EnsureIndexes creates the indexes used by the audit trail.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "event_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "cita.id_cita", Value: 1}, {Key: "occurred_at", Value: 1}}},
		{Keys: bson.D{{Key: "cita.id_doctor", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
