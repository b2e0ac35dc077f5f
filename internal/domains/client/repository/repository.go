package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"salon/infras/otel"
	"salon/infras/postgres"
	"salon/internal/domains/client/model"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	"salon/shared/logger"
	gRepo "salon/shared/repository"
	"salon/shared/timezone"
)

type Client interface {
	Insert(ctx context.Context, model model.Client) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Client, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Client, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	IncrementVisits(ctx context.Context, name string, amount float64, user string) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Client]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Client {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Client](model.EntityName, model.TableName, model.FieldID, db, otel,
			gRepo.WithTieBreakers(model.FieldName)),
		db:         db,
		otel:       otel,
	}
}

// IncrementVisits bumps the stats of the oldest client carrying exactly this
// name. It reports whether a client was found.
func (repo *repositoryImpl) IncrementVisits(ctx context.Context, name string, amount float64, user string) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".client.IncrementVisits")
	defer scope.End()

	query := fmt.Sprintf(`UPDATE %[1]s SET %[2]s = %[2]s + 1, %[3]s = %[3]s + :amount, %[4]s = :modified_at, %[5]s = :modified_by
		WHERE %[6]s = (SELECT %[6]s FROM %[1]s WHERE %[7]s = :name ORDER BY %[8]s LIMIT 1)`,
		model.TableName, model.FieldVisits, model.FieldTotalSpent, constant.FieldModifiedAt, constant.FieldModifiedBy,
		model.FieldID, model.FieldName, constant.FieldCreatedAt)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := repo.db.Write.NamedExecContext(ctx, query, map[string]any{
		"amount":      amount,
		"name":        name,
		"modified_at": timezone.Now(),
		"modified_by": user,
	})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to increment client visits: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}
