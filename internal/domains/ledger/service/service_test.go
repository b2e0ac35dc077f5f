package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"salon/config"
	"salon/infras/otel/mocks"
	ledgerMocks "salon/internal/domains/ledger/mocks"
	"salon/internal/domains/ledger/model"
	"salon/internal/domains/ledger/model/dto"
	"salon/internal/domains/ledger/service"
	cacheMocks "salon/shared/cache/mocks"
	gDto "salon/shared/dto"
	"salon/shared/failure"
)

func newService(t *testing.T) (service.Ledger, *ledgerMocks.MockTransaction, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := ledgerMocks.NewMockTransaction(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func TestLedgerService_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		res, err := svc.Create(context.Background(), dto.CreateTransactionRequest{
			Type: model.TypeIncome, Amount: 50, Description: "Corte - Maria", Date: "2024-01-15",
		})
		require.NoError(t, err)
		assert.Equal(t, model.PaymentCash, res.PaymentMethod)
		assert.Equal(t, "2024-01-15", res.Date)
	})

	t.Run("repository error", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))

		_, err := svc.Create(context.Background(), dto.CreateTransactionRequest{Type: model.TypeIncome, Amount: 50})
		assert.Error(t, err)
	})
}

func TestLedgerService_GetAll(t *testing.T) {
	svc, repo, cache := newService(t)

	cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Transaction, error) {
			_, args := filter.GetWhereClause()
			assert.Equal(t, "2024-01-01", args["start_date"])

			return []model.Transaction{{ID: "t1", Type: model.TypeExpense, Amount: 20}}, nil
		})

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, dto.DateRange{StartDate: "2024-01-01"})
	require.NoError(t, err)
	require.Len(t, res.Transactions, 1)
	assert.Equal(t, "t1", res.Transactions[0].ID)
}

func TestLedgerService_Update(t *testing.T) {
	t.Run("empty request", func(t *testing.T) {
		svc, _, _ := newService(t)

		err := svc.Update(context.Background(), dto.UpdateTransactionRequest{}, "t1")
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("not found", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Update(context.Background(), dto.UpdateTransactionRequest{Description: "x"}, "t1")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestLedgerService_Delete(t *testing.T) {
	svc, repo, _ := newService(t)

	repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

	assert.NoError(t, svc.Delete(context.Background(), "t1"))
}

func TestLedgerService_Summary(t *testing.T) {
	t.Run("computes the balance", func(t *testing.T) {
		svc, repo, cache := newService(t)

		cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		repo.EXPECT().Summary(gomock.Any(), gomock.Any()).Return(model.Summary{Income: 500, Expense: 150, Count: 6}, nil)

		res, err := svc.Summary(context.Background(), dto.DateRange{})
		require.NoError(t, err)
		assert.InDelta(t, 350.0, res.Balance, 0.001)
		assert.Equal(t, 6, res.Count)
	})

	t.Run("repository error", func(t *testing.T) {
		svc, repo, cache := newService(t)

		cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		repo.EXPECT().Summary(gomock.Any(), gomock.Any()).Return(model.Summary{}, errors.New("database error"))

		_, err := svc.Summary(context.Background(), dto.DateRange{})
		assert.Error(t, err)
	})
}

func TestLedgerService_Range(t *testing.T) {
	svc, repo, _ := newService(t)

	repo.EXPECT().GetAll(gomock.Any(), gDto.QueryParams{SortBy: model.FieldDate, SortDir: gDto.SortDirAsc}, gomock.Any()).
		Return([]model.Transaction{{ID: "t1"}, {ID: "t2"}}, nil)

	res, err := svc.Range(context.Background(), dto.DateRange{StartDate: "2024-01-01", EndDate: "2024-01-31"})
	require.NoError(t, err)
	assert.Len(t, res, 2)
}
