package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"salon/infras/otel"
	"salon/infras/postgres"
	"salon/internal/domains/settings/model"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	"salon/shared/logger"
	gRepo "salon/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Hours interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Hours, error)
	Upsert(ctx context.Context, rows []model.Hours) error
}

type SalonInfo interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Info, error)
	Upsert(ctx context.Context, info model.Info) error
}

type hoursRepositoryImpl struct {
	gRepo.Repository[model.Hours]
	db   *postgres.Connection
	otel otel.Otel
}

func NewHours(db *postgres.Connection, otel otel.Otel) Hours {
	return &hoursRepositoryImpl{
		Repository: gRepo.NewRepository[model.Hours](model.HoursEntityName, model.HoursTableName, model.FieldBucket, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Upsert replaces the stored buckets in one transaction.
func (repo *hoursRepositoryImpl) Upsert(ctx context.Context, rows []model.Hours) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".business_hours.Upsert")
	defer scope.End()

	query := fmt.Sprintf(`INSERT INTO %[1]s (%[2]s, %[3]s, %[4]s, %[5]s, created_at, created_by, modified_at, modified_by)
		VALUES (:bucket, :open_time, :close_time, :closed, :created_at, :created_by, :modified_at, :modified_by)
		ON CONFLICT (%[2]s) DO UPDATE SET
			%[3]s = EXCLUDED.%[3]s,
			%[4]s = EXCLUDED.%[4]s,
			%[5]s = EXCLUDED.%[5]s,
			modified_at = EXCLUDED.modified_at,
			modified_by = EXCLUDED.modified_by`,
		model.HoursTableName, model.FieldBucket, model.FieldOpen, model.FieldClose, model.FieldClosed)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	return repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		for _, row := range rows {
			if _, err := tx.NamedExecContext(ctx, query, row); err != nil {
				logger.ErrorWithStack(err)

				return fmt.Errorf("failed to upsert business hours (%s): %w", row.Bucket, err)
			}
		}

		return nil
	})
}

type salonInfoRepositoryImpl struct {
	gRepo.Repository[model.Info]
	db   *postgres.Connection
	otel otel.Otel
}

func NewSalonInfo(db *postgres.Connection, otel otel.Otel) SalonInfo {
	return &salonInfoRepositoryImpl{
		Repository: gRepo.NewRepository[model.Info](model.InfoEntityName, model.InfoTableName, model.FieldInfoID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *salonInfoRepositoryImpl) Upsert(ctx context.Context, info model.Info) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".salon_info.Upsert")
	defer scope.End()

	query := fmt.Sprintf(`INSERT INTO %s (id, name, owner, email, phone, created_at, created_by, modified_at, modified_by)
		VALUES (:id, :name, :owner, :email, :phone, :created_at, :created_by, :modified_at, :modified_by)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			owner = EXCLUDED.owner,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			modified_at = EXCLUDED.modified_at,
			modified_by = EXCLUDED.modified_by`, model.InfoTableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.db.Write.NamedExecContext(ctx, query, info); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to upsert salon info: %w", err)
	}

	return nil
}
