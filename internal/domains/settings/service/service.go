package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Settings=MockSettings

import (
	"context"
	"fmt"
	"salon/config"
	"salon/infras/otel"
	"salon/internal/domains/settings/model"
	"salon/internal/domains/settings/model/dto"
	"salon/internal/domains/settings/repository"
	"salon/internal/scheduling"
	"salon/shared"
	"salon/shared/cache"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	"salon/shared/failure"
	"salon/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheBusinessHours = "settings:hours"
	cacheSalonInfo     = "settings:info"
)

type Settings interface {
	BusinessHours(ctx context.Context) (scheduling.BusinessHours, error)
	UpdateBusinessHours(ctx context.Context, req dto.BusinessHoursRequest) (scheduling.BusinessHours, error)
	Calendar(ctx context.Context) (*scheduling.Calendar, error)
	SalonInfo(ctx context.Context) (dto.SalonInfoResponse, error)
	UpdateSalonInfo(ctx context.Context, req dto.SalonInfoRequest) (dto.SalonInfoResponse, error)
}

type serviceImpl struct {
	hours    repository.Hours
	info     repository.SalonInfo
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	defaults scheduling.BusinessHours
}

func New(hours repository.Hours, info repository.SalonInfo, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Settings {
	defaults, err := config.DefaultBusinessHours(cfg.Scheduling.HoursFile)
	if err != nil {
		log.Warn().Err(err).Str("file", cfg.Scheduling.HoursFile).Msg("invalid default business hours, using built-in hours")

		defaults = scheduling.DefaultBusinessHours()
	}

	return &serviceImpl{
		hours:    hours,
		info:     info,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		defaults: defaults,
	}
}

// BusinessHours returns the stored hours, filling any bucket the salon never
// saved from the defaults.
func (s *serviceImpl) BusinessHours(ctx context.Context) (res scheduling.BusinessHours, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".BusinessHours")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.cache.Get(ctx, cacheBusinessHours, &res); err == nil {
		return res, nil
	}

	rows, err := s.hours.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get business hours")

		return res, fmt.Errorf("failed to get business hours: %w", err)
	}

	res = model.ApplyHours(s.defaults, rows)

	s.fill(ctx, cacheBusinessHours, res)

	return res, nil
}

func (s *serviceImpl) UpdateBusinessHours(ctx context.Context, req dto.BusinessHoursRequest) (res scheduling.BusinessHours, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateBusinessHours")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	hours := req.ToEngine()

	if err = hours.Validate(); err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.hours.Upsert(ctx, dto.ToModels(hours, user, timezone.Now())); err != nil {
		log.Error().Err(err).Msg("failed to save business hours")

		return res, fmt.Errorf("failed to save business hours: %w", err)
	}

	s.replace(ctx, cacheBusinessHours, hours)

	log.Info().Str("user", user).Msg("business hours updated")

	return hours, nil
}

func (s *serviceImpl) Calendar(ctx context.Context) (*scheduling.Calendar, error) {
	hours, err := s.BusinessHours(ctx)
	if err != nil {
		return nil, err
	}

	return scheduling.NewCalendar(hours, s.cfg.Scheduling.SlotMinutes), nil
}

func (s *serviceImpl) SalonInfo(ctx context.Context) (res dto.SalonInfoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SalonInfo")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.cache.Get(ctx, cacheSalonInfo, &res); err == nil {
		return res, nil
	}

	info, err := s.info.Get(ctx, shared.FilterByID(model.InfoID, model.FieldInfoID, model.InfoTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get salon info")

		return res, fmt.Errorf("failed to get salon info: %w", err)
	}

	if info.ID == constant.Empty {
		return dto.DefaultSalonInfo(), nil
	}

	res.FromModel(info)

	s.fill(ctx, cacheSalonInfo, res)

	return res, nil
}

func (s *serviceImpl) UpdateSalonInfo(ctx context.Context, req dto.SalonInfoRequest) (res dto.SalonInfoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateSalonInfo")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	info := req.ToModel(user, timezone.Now())

	if err = s.info.Upsert(ctx, info); err != nil {
		log.Error().Err(err).Msg("failed to save salon info")

		return res, fmt.Errorf("failed to save salon info: %w", err)
	}

	res.FromModel(info)
	s.replace(ctx, cacheSalonInfo, res)

	return res, nil
}

// fill caches a value read from the database. It never overwrites, so a read
// that raced an update cannot put the old settings back.
func (s *serviceImpl) fill(ctx context.Context, key string, value any) {
	if _, err := s.cache.SaveIfAbsent(ctx, key, value, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to save settings to cache")
	}
}

// replace writes freshly saved settings through to the cache. When that fails
// the key is dropped so the next read goes to the database.
func (s *serviceImpl) replace(ctx context.Context, key string, value any) {
	if err := s.cache.Save(ctx, key, value, s.cfg.Cache.TTL); err == nil {
		return
	}

	if err := s.cache.Delete(ctx, key); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to invalidate settings cache")
	}
}
