package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Appointment=MockAppointmentService

import (
	"context"
	"fmt"
	"salon/config"
	"salon/infras/kafka"
	"salon/infras/otel"
	"salon/internal/domains/appointment/model"
	"salon/internal/domains/appointment/model/dto"
	"salon/internal/domains/appointment/repository"
	catalogModel "salon/internal/domains/catalog/model"
	catalogService "salon/internal/domains/catalog/service"
	clientService "salon/internal/domains/client/service"
	ledgerService "salon/internal/domains/ledger/service"
	settingsService "salon/internal/domains/settings/service"
	"salon/internal/scheduling"
	"salon/shared"
	"salon/shared/cache"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	"salon/shared/failure"
	"salon/shared/lock"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAppointment    = "appointment:get"
	cacheGetAllAppointment = "appointment:gets"
)

type Appointment interface {
	Create(ctx context.Context, req dto.CreateAppointmentRequest) (dto.AppointmentResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, query dto.ListQuery) (dto.GetAppointmentsResponse, error)
	Get(ctx context.Context, id string) (dto.AppointmentResponse, error)
	Update(ctx context.Context, req dto.UpdateAppointmentRequest, id string) error
	Delete(ctx context.Context, id string) error
	Availability(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
	CheckConflict(ctx context.Context, req dto.ConflictCheckRequest) (dto.ConflictCheckResponse, error)
	Occupancy(ctx context.Context, date string) (dto.OccupancyResponse, error)
	ForDate(ctx context.Context, date string) ([]model.Appointment, error)
	Between(ctx context.Context, startDate, endDate string) ([]model.Appointment, error)
	ClientAppointments(ctx context.Context) ([]dto.AppointmentResponse, error)
	Book(ctx context.Context, req dto.BookAppointmentRequest) (dto.AppointmentResponse, error)
}

type serviceImpl struct {
	repo     repository.Appointment
	catalog  catalogService.Catalog
	settings settingsService.Settings
	ledger   ledgerService.Ledger
	clients  clientService.Client
	locker   lock.Locker
	cache    cache.RedisCache
	kafka    kafka.Client
	cfg      *config.Config
	otel     otel.Otel
}

func New(
	repo repository.Appointment,
	catalog catalogService.Catalog,
	settings settingsService.Settings,
	ledger ledgerService.Ledger,
	clients clientService.Client,
	locker lock.Locker,
	cache cache.RedisCache,
	kafka kafka.Client,
	cfg *config.Config,
	otel otel.Otel,
) Appointment {
	return &serviceImpl{
		repo:     repo,
		catalog:  catalog,
		settings: settings,
		ledger:   ledger,
		clients:  clients,
		locker:   locker,
		cache:    cache,
		kafka:    kafka,
		cfg:      cfg,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAppointmentRequest) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return s.create(ctx, req.ToModel(user), model.SourceStaff)
}

func (s *serviceImpl) create(ctx context.Context, appointment model.Appointment, source string) (res dto.AppointmentResponse, err error) {
	registry, err := s.registry(ctx)
	if err != nil {
		return res, err
	}

	release, err := s.reserve(ctx, appointment, registry)
	if err != nil {
		return res, err
	}
	defer release()

	if err = s.repo.Insert(ctx, appointment); err != nil {
		if shared.IsUniqueViolation(err) {
			return res, failure.Conflict(msgTimeUnavailable) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create appointment")

		return res, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.invalidate(ctx)
	s.publish(ctx, model.EventCreated, source, appointment)

	res.FromModel(appointment, registry)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, query dto.ListQuery) (res dto.GetAppointmentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := query.Filter()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllAppointment, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for appointments")

		return res, nil
	}

	registry, err := s.registry(ctx)
	if err != nil {
		return res, err
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count appointments")

		return res, fmt.Errorf("failed to count appointments: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointments")

		return res, fmt.Errorf("failed to get appointments: %w", err)
	}

	res.FromModels(models, registry, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointments to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetAppointment, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	appointment, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	registry, err := s.registry(ctx)
	if err != nil {
		return res, err
	}

	res.FromModel(appointment, registry)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointment to cache")
		}
	}()

	return res, nil
}

// Update re-validates the schedule only when the slot itself moves (date,
// time or service) or a cancelled appointment is brought back.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateAppointmentRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateAppointmentRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	if req.Time != constant.Empty {
		req.Time = dto.NormalizeTime(req.Time)
	}

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	next := req.Apply(current)

	if needsValidation(current, next) {
		registry, err := s.registry(ctx)
		if err != nil {
			return err
		}

		release, err := s.reserve(ctx, next, registry)
		if err != nil {
			return err
		}
		defer release()
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	err = s.repo.Update(ctx, shared.TransformFields(req, user), shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		if shared.IsUniqueViolation(err) {
			return failure.Conflict(msgTimeUnavailable) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to update appointment")

		return fmt.Errorf("failed to update appointment: %w", err)
	}

	s.invalidate(ctx, id)

	if isBeingCompleted(current, next) {
		s.onCompleted(ctx, next)
	}

	s.publish(ctx, eventFor(current, next), model.SourceStaff, next)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	appointment, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete appointment")

		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	s.invalidate(ctx, id)
	s.publish(ctx, model.EventDeleted, model.SourceStaff, appointment)

	return nil
}

// ForDate reads the appointments of one day straight from the database,
// ordered by start time.
func (s *serviceImpl) ForDate(ctx context.Context, date string) (res []model.Appointment, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ForDate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params := gDto.QueryParams{SortBy: model.FieldTime, SortDir: gDto.SortDirAsc}

	res, err = s.repo.GetAll(ctx, params, shared.FilterByField(model.FieldDate, date, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("failed to get appointments for date")

		return nil, fmt.Errorf("failed to get appointments for date: %w", err)
	}

	return res, nil
}

// Between lists the appointments dated within [startDate, endDate].
func (s *serviceImpl) Between(ctx context.Context, startDate, endDate string) (res []model.Appointment, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Between")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				ArgName: constant.RequestParamStartDate, Field: model.FieldDate,
				Operator: gDto.FilterOperatorGreaterEq, Value: startDate, Table: model.TableName,
			},
			gDto.Filter{
				ArgName: constant.RequestParamEndDate, Field: model.FieldDate,
				Operator: gDto.FilterOperatorLessEq, Value: endDate, Table: model.TableName,
			},
		},
	}

	params := gDto.QueryParams{SortBy: model.FieldDate, SortDir: gDto.SortDirAsc}

	res, err = s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list appointments in range")

		return nil, fmt.Errorf("failed to list appointments in range: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointment")

		return appointment, fmt.Errorf("failed to get appointment: %w", err)
	}

	if appointment.ID == constant.Empty {
		return appointment, failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	return appointment, nil
}

func (s *serviceImpl) registry(ctx context.Context) (*scheduling.DurationRegistry, error) {
	services, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load service durations: %w", err)
	}

	return catalogModel.Registry(services), nil
}

func (s *serviceImpl) invalidate(ctx context.Context, ids ...string) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllAppointment)

		for _, id := range ids {
			shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheGetAppointment, id))
		}
	}()
}
