package service

import (
	"context"
	"errors"
	"fmt"
	"salon/internal/domains/appointment/model"
	"salon/internal/domains/appointment/model/dto"
	"salon/internal/scheduling"
	"salon/shared/constant"
	"salon/shared/failure"
	"salon/shared/lock"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	lockKeyPrefix      = "appointment:"
	defaultLockTimeout = 10 * time.Second
)

const (
	msgSalonClosed     = "salon closed this day"
	msgOutsideHours    = "time outside business hours"
	msgTimeUnavailable = "time no longer available"
	msgBookingBusy     = "another booking for this date is in progress, please try again"
)

// reserve checks that appointment fits the calendar and clashes with nobody,
// holding the date lock while it does. On success the caller must call
// release once the write is done. Cancelled appointments occupy nothing and
// pass straight through.
func (s *serviceImpl) reserve(ctx context.Context, appointment model.Appointment, registry *scheduling.DurationRegistry) (release func(), err error) {
	if scheduling.Status(appointment.Status) == scheduling.StatusCancelled {
		return func() {}, nil
	}

	date, err := scheduling.ParseDate(appointment.Date)
	if err != nil {
		return nil, failure.BadRequest(err) // nolint:wrapcheck
	}

	start, err := scheduling.TimeToMinutes(appointment.Time)
	if err != nil {
		return nil, failure.BadRequest(err) // nolint:wrapcheck
	}

	calendar, err := s.settings.Calendar(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load business hours: %w", err)
	}

	if calendar.IsClosedOnDate(date) {
		return nil, failure.BadRequestFromString(msgSalonClosed) // nolint:wrapcheck
	}

	if !calendar.IsTimeWithinBusinessHours(date, appointment.Time) {
		return nil, failure.BadRequestFromString(msgOutsideHours) // nolint:wrapcheck
	}

	duration := registry.Duration(appointment.Service)
	closing, _ := calendar.ClosingTime(date)

	if closingMinutes, err := scheduling.TimeToMinutes(closing); err == nil && start+duration > closingMinutes {
		return nil, failure.BadRequestFromString(fmt.Sprintf("service ends after closing time %s", closing)) // nolint:wrapcheck
	}

	release, err = s.locker.Acquire(ctx, lockKeyPrefix+appointment.Date, s.lockTimeout())
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			return nil, failure.Conflict(msgBookingBusy) // nolint:wrapcheck
		}

		log.Error().Err(err).Str("date", appointment.Date).Msg("failed to lock appointment date")

		return nil, fmt.Errorf("failed to lock appointment date: %w", err)
	}

	existing, err := s.ForDate(ctx, appointment.Date)
	if err != nil {
		release()

		return nil, err
	}

	detector := scheduling.NewDetector(model.Engine(existing), registry, appointment.ID)

	conflicts, err := detector.Conflicts(appointment.Time, duration, appointment.Date)
	if err != nil {
		release()

		return nil, failure.BadRequest(err) // nolint:wrapcheck
	}

	if len(conflicts) > 0 {
		release()

		return nil, failure.ConflictWithDetails(msgTimeUnavailable, dto.Conflicting(conflicts)) // nolint:wrapcheck
	}

	return release, nil
}

func (s *serviceImpl) lockTimeout() time.Duration {
	if seconds := s.cfg.Scheduling.BookingLockSeconds; seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	return defaultLockTimeout
}

// Availability lists the start times open on a date. Without a service the
// raw calendar slots are returned unfiltered.
func (s *serviceImpl) Availability(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Availability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	date, err := scheduling.ParseDate(req.Date)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	calendar, err := s.settings.Calendar(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to load business hours: %w", err)
	}

	res.Date = req.Date
	res.DayName = scheduling.DayName(date.Weekday())
	res.Closed = calendar.IsClosedOnDate(date)
	res.Slots = calendar.SlotsForDate(date)
	res.ClosingTime, _ = calendar.ClosingTime(date)

	if res.Closed || (req.Service == constant.Empty && req.ServiceID == constant.Empty) {
		return res, nil
	}

	registry, err := s.registry(ctx)
	if err != nil {
		return res, err
	}

	existing, err := s.ForDate(ctx, req.Date)
	if err != nil {
		return res, err
	}

	res.Duration = resolveDuration(registry, req.Service, req.ServiceID, 0)
	res.Filtered = true

	detector := scheduling.NewDetector(model.Engine(existing), registry, req.ExcludeID)

	res.Slots, err = detector.AvailableSlots(res.Slots, res.Duration, req.Date, res.ClosingTime)
	if err != nil {
		log.Error().Err(err).Str("date", req.Date).Msg("failed to filter available slots")

		return res, fmt.Errorf("failed to filter available slots: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) CheckConflict(ctx context.Context, req dto.ConflictCheckRequest) (res dto.ConflictCheckResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckConflict")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	registry, err := s.registry(ctx)
	if err != nil {
		return res, err
	}

	res.Duration = resolveDuration(registry, req.Service, req.ServiceID, req.Duration)

	res.EndTime, err = scheduling.EndTime(req.Time, res.Duration)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	existing, err := s.ForDate(ctx, req.Date)
	if err != nil {
		return res, err
	}

	detector := scheduling.NewDetector(model.Engine(existing), registry, req.ExcludeID)

	conflicts, err := detector.Conflicts(req.Time, res.Duration, req.Date)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	res.Conflict = len(conflicts) > 0
	res.Conflicts = dto.Conflicting(conflicts)

	return res, nil
}

func (s *serviceImpl) Occupancy(ctx context.Context, day string) (res dto.OccupancyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Occupancy")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	date, err := scheduling.ParseDate(day)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	calendar, err := s.settings.Calendar(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to load business hours: %w", err)
	}

	registry, err := s.registry(ctx)
	if err != nil {
		return res, err
	}

	existing, err := s.ForDate(ctx, day)
	if err != nil {
		return res, err
	}

	occupancy := scheduling.BuildOccupancy(model.Engine(existing), registry, day, calendar.Granularity())

	res.Date = day
	res.DayName = scheduling.DayName(date.Weekday())
	res.Closed = calendar.IsClosedOnDate(date)
	res.Granularity = calendar.Granularity()
	res.Slots = calendar.DayGrid(date, occupancy)

	return res, nil
}

// resolveDuration prefers an explicit duration, then the service id, then
// the name with its fallback.
func resolveDuration(registry *scheduling.DurationRegistry, name, id string, explicit int) int {
	if explicit > 0 {
		return explicit
	}

	if id != constant.Empty {
		if duration, ok := registry.DurationByID(id); ok {
			return duration
		}
	}

	return registry.Duration(name)
}

func needsValidation(current, next model.Appointment) bool {
	if scheduling.Status(next.Status) == scheduling.StatusCancelled {
		return false
	}

	return current.Date != next.Date ||
		current.Time != next.Time ||
		current.Service != next.Service ||
		scheduling.Status(current.Status) == scheduling.StatusCancelled
}
