package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/odontocare/odontocare/internal/core/domain"
)

// DefaultEventsQueue is the durable queue appointment events are published to.
const DefaultEventsQueue = "citas.events"

// Publisher sends appointment events to RabbitMQ as persistent JSON messages.
// The connection is opened lazily and re-dialled after a failure.
type Publisher struct {
	url   string
	queue string
	log   zerolog.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewPublisher(url, queue string, log zerolog.Logger) *Publisher {
	if queue == "" {
		queue = DefaultEventsQueue
	}
	return &Publisher{url: url, queue: queue, log: log}
}

func (p *Publisher) Name() string { return "rabbitmq" }

type eventMessage struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	IDCita     int64     `json:"id_cita"`
	Fecha      string    `json:"fecha"`
	Motivo     string    `json:"motivo"`
	Estado     string    `json:"estado"`
	IDPaciente int64     `json:"id_paciente"`
	IDDoctor   int64     `json:"id_doctor"`
	IDCentro   int64     `json:"id_centro"`
	IDUsuario  int64     `json:"id_usuario"`
	Actor      string    `json:"actor"`
	ActorRol   string    `json:"actor_rol"`
	OccurredAt time.Time `json:"occurred_at"`
}

func encodeEvent(e domain.AppointmentEvent) ([]byte, error) {
	a := e.Appointment
	return json.Marshal(eventMessage{
		EventID:    e.ID,
		Type:       string(e.Type),
		IDCita:     a.ID,
		Fecha:      domain.FormatDate(a.Date),
		Motivo:     a.Reason,
		Estado:     string(a.Status),
		IDPaciente: a.PatientID,
		IDDoctor:   a.DoctorID,
		IDCentro:   a.CenterID,
		IDUsuario:  a.UserID,
		Actor:      e.Actor,
		ActorRol:   e.ActorRole,
		OccurredAt: e.OccurredAt.UTC(),
	})
}

// Record publishes the event to the default exchange, routed by queue name.
func (p *Publisher) Record(ctx context.Context, e domain.AppointmentEvent) error {
	body, err := encodeEvent(e)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    e.ID,
		Type:         string(e.Type),
		Timestamp:    e.OccurredAt.UTC(),
		Body:         body,
	})
	if err != nil {
		p.reset()
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	return nil
}

// channel returns an open channel, dialling and declaring the queue when
// needed. Callers hold p.mu.
func (p *Publisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.reset()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	p.log.Info().Str("queue", p.queue).Msg("rabbitmq publisher connected")
	p.conn, p.ch = conn, ch
	return ch, nil
}

func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.conn, p.ch = nil, nil
}

// Close releases the broker connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
	return nil
}
