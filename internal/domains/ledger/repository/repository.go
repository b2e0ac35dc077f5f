package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"salon/infras/otel"
	"salon/infras/postgres"
	"salon/internal/domains/ledger/model"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	"salon/shared/logger"
	gRepo "salon/shared/repository"
)

type Transaction interface {
	Insert(ctx context.Context, model model.Transaction) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Transaction, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Transaction, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	Summary(ctx context.Context, filter gDto.FilterGroup) (model.Summary, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Transaction]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Transaction {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Transaction](model.EntityName, model.TableName, model.FieldID, db, otel,
			gRepo.WithTieBreakers(model.FieldDate, constant.FieldCreatedAt)),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) Summary(ctx context.Context, filter gDto.FilterGroup) (model.Summary, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".transaction.Summary")
	defer scope.End()

	where, args := repo.BuildWhereClause(filter)

	query := fmt.Sprintf(`SELECT
		COALESCE(SUM(CASE WHEN %[1]s = '%[2]s' THEN %[3]s ELSE 0 END), 0) AS income,
		COALESCE(SUM(CASE WHEN %[1]s = '%[4]s' THEN %[3]s ELSE 0 END), 0) AS expense,
		COUNT(*) AS count
		FROM %[5]s %[6]s`,
		model.FieldType, model.TypeIncome, model.FieldAmount, model.TypeExpense, model.TableName, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var summary model.Summary

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return summary, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	if err = prepare.GetContext(ctx, &summary, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return summary, fmt.Errorf("failed to summarize transactions: %w", err)
	}

	return summary, nil
}
