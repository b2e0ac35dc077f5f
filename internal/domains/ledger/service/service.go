package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Ledger=MockLedger

import (
	"context"
	"fmt"
	"salon/config"
	"salon/infras/otel"
	"salon/internal/domains/ledger/model"
	"salon/internal/domains/ledger/model/dto"
	"salon/internal/domains/ledger/repository"
	"salon/shared"
	"salon/shared/cache"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	"salon/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetTransaction    = "transaction:get"
	cacheGetAllTransaction = "transaction:gets"
	cacheSummary           = "transaction:summary"
)

type Ledger interface {
	Create(ctx context.Context, req dto.CreateTransactionRequest) (dto.TransactionResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, dateRange dto.DateRange) (dto.GetTransactionsResponse, error)
	Get(ctx context.Context, id string) (dto.TransactionResponse, error)
	Update(ctx context.Context, req dto.UpdateTransactionRequest, id string) error
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context, dateRange dto.DateRange) (dto.SummaryResponse, error)
	Range(ctx context.Context, dateRange dto.DateRange) ([]model.Transaction, error)
}

type serviceImpl struct {
	repo  repository.Transaction
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Transaction, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Ledger {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTransactionRequest) (res dto.TransactionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	transaction := req.ToModel(user)

	if err = s.repo.Insert(ctx, transaction); err != nil {
		log.Error().Err(err).Msg("failed to create transaction")

		return res, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.invalidate(ctx)
	res.FromModel(transaction)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, dateRange dto.DateRange) (res dto.GetTransactionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := dateRange.Filter()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllTransaction, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for transactions")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count transactions")

		return res, fmt.Errorf("failed to count transactions: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get transactions")

		return res, fmt.Errorf("failed to get transactions: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save transactions to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.TransactionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetTransaction, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	transaction, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get transaction")

		return res, fmt.Errorf("failed to get transaction: %w", err)
	}

	if transaction.ID == constant.Empty {
		return res, failure.NotFound("transaction not found") // nolint:wrapcheck
	}

	res.FromModel(transaction)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save transaction to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateTransactionRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateTransactionRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if transaction exists")

		return fmt.Errorf("failed to check if transaction exists: %w", err)
	}

	if !exist {
		return failure.NotFound("transaction not found") // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update transaction")

		return fmt.Errorf("failed to update transaction: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if transaction exists")

		return fmt.Errorf("failed to check if transaction exists: %w", err)
	}

	if !exist {
		return failure.NotFound("transaction not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete transaction")

		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Summary(ctx context.Context, dateRange dto.DateRange) (res dto.SummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Summary")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheSummary, dateRange.StartDate, dateRange.EndDate)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	summary, err := s.repo.Summary(ctx, dateRange.Filter())
	if err != nil {
		log.Error().Err(err).Msg("failed to summarize transactions")

		return res, fmt.Errorf("failed to summarize transactions: %w", err)
	}

	res.FromModel(summary)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save transaction summary to cache")
		}
	}()

	return res, nil
}

// Range returns every transaction of the period, oldest first.
func (s *serviceImpl) Range(ctx context.Context, dateRange dto.DateRange) (res []model.Transaction, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Range")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params := gDto.QueryParams{SortBy: model.FieldDate, SortDir: gDto.SortDirAsc}

	res, err = s.repo.GetAll(ctx, params, dateRange.Filter())
	if err != nil {
		log.Error().Err(err).Msg("failed to list transactions")

		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, ids ...string) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllTransaction)
		shared.InvalidateCaches(c, s.cache, cacheSummary)

		for _, id := range ids {
			shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheGetTransaction, id))
		}
	}()
}
