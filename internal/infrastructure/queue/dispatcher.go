package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/odontocare/odontocare/internal/api/metrics"
	"github.com/odontocare/odontocare/internal/core/domain"
	"github.com/odontocare/odontocare/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes appointment events to a fixed set of workers using
// consistent hashing on the appointment id, so events for one appointment
// reach every sink in the order they were emitted.
type Dispatcher struct {
	workers []chan domain.AppointmentEvent
	sinks   []ports.AppointmentEventSink
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sinks []ports.AppointmentEventSink, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AppointmentEvent, numWorkers),
		sinks:   sinks,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AppointmentEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands the event to the worker responsible for its appointment.
// It never blocks the request path: when the worker channel is full the
// event is dropped and logged.
func (d *Dispatcher) Enqueue(event domain.AppointmentEvent) {
	idx := d.shardIndex(event.Appointment.ID)
	select {
	case d.workers[idx] <- event:
		metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.EventsDeliveredTotal.WithLabelValues("queue", "dropped").Inc()
		d.log.Error().
			Str("event_id", event.ID).
			Int64("id_cita", event.Appointment.ID).
			Int("worker_id", idx).
			Msg("event queue full, event dropped")
	}
}

// shardIndex maps an appointment id deterministically to a worker index.
func (d *Dispatcher) shardIndex(appointmentID int64) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.FormatInt(appointmentID, 10)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AppointmentEvent) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.EventsQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.deliver(ctx, id, event)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, workerID int, event domain.AppointmentEvent) {
	for _, sink := range d.sinks {
		if err := sink.Record(ctx, event); err != nil {
			metrics.EventsDeliveredTotal.WithLabelValues(sink.Name(), "error").Inc()
			d.log.Error().Err(err).
				Str("sink", sink.Name()).
				Str("event_id", event.ID).
				Str("type", string(event.Type)).
				Int64("id_cita", event.Appointment.ID).
				Int("worker_id", workerID).
				Msg("event delivery failed")
			continue
		}
		metrics.EventsDeliveredTotal.WithLabelValues(sink.Name(), "ok").Inc()
	}
}
