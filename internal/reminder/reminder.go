// Package reminder warns the salon shortly before each appointment starts and
// relays bookings made through the client portal.
package reminder

import (
	"context"
	"fmt"
	"math"
	"salon/config"
	"salon/infras/kafka"
	"salon/infras/otel"
	"salon/infras/telegram"
	"salon/internal/domains/appointment/model"
	appointmentService "salon/internal/domains/appointment/service"
	"salon/internal/scheduling"
	"salon/shared"
	"salon/shared/cache"
	"salon/shared/constant"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const (
	cacheKeyReminder = "reminder:sent"
	displayDate      = "02/01/2006"
)

type Worker struct {
	appointments appointmentService.Appointment
	notifier     telegram.Notifier
	cache        cache.RedisCache
	kafka        kafka.Client
	cfg          *config.Config
	otel         otel.Otel
}

func New(
	appointments appointmentService.Appointment,
	notifier telegram.Notifier,
	cache cache.RedisCache,
	kafka kafka.Client,
	cfg *config.Config,
	otel otel.Otel,
) *Worker {
	return &Worker{
		appointments: appointments,
		notifier:     notifier,
		cache:        cache,
		kafka:        kafka,
		cfg:          cfg,
		otel:         otel,
	}
}

// Run scans for upcoming appointments on every tick and consumes appointment
// events until ctx is done.
func (w *Worker) Run(ctx context.Context, now func() time.Time) {
	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		w.kafka.Consume(ctx, w.cfg.Kafka.ConsumerGroup, w.cfg.Kafka.Topics.Appointment, w.HandleEvent)
	}()

	if w.cfg.Reminder.Enable {
		w.loop(ctx, now)
	} else {
		log.Warn().Msg("Appointment reminders are disabled")
		<-ctx.Done()
	}

	wg.Wait()

	log.Info().Msg("Reminder worker stopped")
}

// Close flushes pending appointment events and exported spans.
func (w *Worker) Close(ctx context.Context) error {
	if err := w.kafka.Close(); err != nil {
		return fmt.Errorf("failed to close kafka client: %w", err)
	}

	return w.otel.Shutdown(ctx) //nolint:wrapcheck
}

func (w *Worker) loop(ctx context.Context, now func() time.Time) {
	interval := time.Duration(max(w.cfg.Reminder.IntervalSeconds, 1)) * time.Second

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info().Dur("interval", interval).Int("lead_minutes", w.cfg.Reminder.LeadMinutes).Msg("Reminder worker started")

	for {
		if _, err := w.Tick(ctx, now()); err != nil {
			log.Error().Err(err).Msg("reminder tick failed")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Tick sends one reminder for every appointment of the day that starts
// within the lead time. It returns how many reminders went out.
func (w *Worker) Tick(ctx context.Context, now time.Time) (sent int, err error) {
	ctx, scope := w.otel.NewScope(ctx, constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".Tick")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	appointments, err := w.appointments.ForDate(ctx, now.Format(constant.DayFormat))
	if err != nil {
		return 0, fmt.Errorf("failed to load today's appointments: %w", err)
	}

	lead := w.cfg.Reminder.LeadMinutes

	for _, appointment := range appointments {
		minutes, due := Due(appointment, now, lead)
		if !due {
			continue
		}

		if w.remind(ctx, appointment, minutes, lead) {
			sent++
		}
	}

	scope.SetAttribute("reminders.sent", sent)

	return sent, nil
}

func (w *Worker) remind(ctx context.Context, appointment model.Appointment, minutes, lead int) bool {
	cacheKey := shared.BuildCacheKey(cacheKeyReminder, appointment.ID, appointment.Date, appointment.Time)

	first, err := w.cache.SaveIfAbsent(ctx, cacheKey, true, (lead+1)*constant.MinutesToSeconds)
	if err != nil {
		log.Error().Err(err).Str("appointment_id", appointment.ID).Msg("failed to mark reminder")

		return false
	}

	if !first {
		return false
	}

	if err = w.notifier.Notify(ctx, Message(appointment, minutes)); err != nil {
		log.Error().Err(err).Str("appointment_id", appointment.ID).Msg("failed to send reminder")

		if err := w.cache.Delete(context.WithoutCancel(ctx), cacheKey); err != nil {
			log.Error().Err(err).Str("key", cacheKey).Msg("failed to release reminder mark")
		}

		return false
	}

	log.Info().Str("appointment_id", appointment.ID).Int("minutes", minutes).Msg("reminder sent")

	return true
}

// HandleEvent notifies the salon about bookings clients made themselves.
// Every other event is acknowledged untouched.
func (w *Worker) HandleEvent(ctx context.Context, message kafkaGo.Message) (err error) {
	ctx, scope := w.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".HandleEvent")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	event, err := kafka.Decode[model.Event](message)
	if err != nil {
		log.Warn().Err(err).Str("key", string(message.Key)).Msg("skipping malformed appointment event")

		return nil
	}

	if event.Type != model.EventCreated || event.Source != model.SourcePortal {
		return nil
	}

	if err = w.notifier.Notify(ctx, PortalMessage(event.Appointment)); err != nil {
		return fmt.Errorf("failed to notify portal booking: %w", err)
	}

	return nil
}

// Due reports whether appointment starts within lead minutes after now, and
// in how many whole minutes. Cancelled, completed and malformed appointments
// are never due.
func Due(appointment model.Appointment, now time.Time, lead int) (int, bool) {
	status := scheduling.Status(appointment.Status)
	if status == scheduling.StatusCancelled || status == scheduling.StatusCompleted {
		return 0, false
	}

	startsAt, err := time.ParseInLocation(constant.DayFormat+" "+constant.ClockFormat, appointment.Date+" "+appointment.Time, now.Location())
	if err != nil {
		return 0, false
	}

	diff := startsAt.Sub(now).Minutes()
	if diff <= 0 || diff > float64(lead) {
		return 0, false
	}

	return int(math.Round(diff)), true
}

func Message(appointment model.Appointment, minutes int) string {
	plural := "s"
	if minutes == 1 {
		plural = constant.Empty
	}

	return fmt.Sprintf("%s - %s em %d minuto%s (%s)", appointment.ClientName, appointment.Service, minutes, plural, appointment.Time)
}

func PortalMessage(appointment scheduling.Appointment) string {
	date := appointment.Date
	if day, err := time.Parse(constant.DayFormat, appointment.Date); err == nil {
		date = day.Format(displayDate)
	}

	return fmt.Sprintf("Novo agendamento pelo portal: %s - %s em %s às %s", appointment.ClientName, appointment.Service, date, appointment.Time)
}
