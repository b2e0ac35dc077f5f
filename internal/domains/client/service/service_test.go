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
	clientMocks "salon/internal/domains/client/mocks"
	"salon/internal/domains/client/model"
	"salon/internal/domains/client/model/dto"
	"salon/internal/domains/client/service"
	cacheMocks "salon/shared/cache/mocks"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	"salon/shared/failure"
)

func newService(t *testing.T) (service.Client, *clientMocks.MockClient, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := clientMocks.NewMockClient(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func clientContext(email string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-id")

	return context.WithValue(ctx, constant.ContextKeyUserEmail, email)
}

func TestClientService_Create(t *testing.T) {
	t.Run("without email skips the uniqueness check", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		res, err := svc.Create(context.Background(), dto.CreateClientRequest{Name: " Maria "})
		require.NoError(t, err)
		assert.Equal(t, "Maria", res.Name)
		assert.Zero(t, res.Visits)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := svc.Create(context.Background(), dto.CreateClientRequest{Name: "Maria", Email: "maria@mail.com"})
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("repository error", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))

		_, err := svc.Create(context.Background(), dto.CreateClientRequest{Name: "Maria", Email: "maria@mail.com"})
		assert.Error(t, err)
	})
}

func TestClientService_GetAll(t *testing.T) {
	svc, repo, cache := newService(t)

	cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Client{{ID: "c1"}, {ID: "c2"}}, nil)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 2}, gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Len(t, res.Clients, 2)
	assert.Equal(t, 2, res.TotalPage)
	assert.Equal(t, 3, res.TotalData)
}

func TestClientService_Update(t *testing.T) {
	t.Run("empty request", func(t *testing.T) {
		svc, _, _ := newService(t)

		err := svc.Update(context.Background(), dto.UpdateClientRequest{}, "c1")
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("not found", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Update(context.Background(), dto.UpdateClientRequest{Name: "Ana"}, "c1")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("updates stats", func(t *testing.T) {
		svc, repo, _ := newService(t)

		visits := 4
		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, 4, fields[model.FieldVisits])

				return nil
			})

		assert.NoError(t, svc.Update(context.Background(), dto.UpdateClientRequest{Visits: &visits}, "c1"))
	})
}

func TestClientService_FindByEmail(t *testing.T) {
	t.Run("blank email never matches", func(t *testing.T) {
		svc, _, _ := newService(t)

		_, found, err := svc.FindByEmail(context.Background(), "  ")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("match", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Client{ID: "c1", Email: "Maria@Mail.com"}, nil)

		client, found, err := svc.FindByEmail(context.Background(), "maria@mail.com")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "c1", client.ID)
	})

	t.Run("no match", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Client{}, nil)

		_, found, err := svc.FindByEmail(context.Background(), "nobody@mail.com")
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestClientService_Profile(t *testing.T) {
	t.Run("returns the record behind the session email", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Client{ID: "c1", Name: "Maria", Visits: 3}, nil)

		res, err := svc.Profile(clientContext("maria@mail.com"))
		require.NoError(t, err)
		assert.Equal(t, 3, res.Visits)
	})

	t.Run("no client record", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Client{}, nil)

		_, err := svc.Profile(clientContext("maria@mail.com"))
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestClientService_UpdateProfile(t *testing.T) {
	t.Run("empty request", func(t *testing.T) {
		svc, _, _ := newService(t)

		err := svc.UpdateProfile(clientContext("maria@mail.com"), dto.UpdateProfileRequest{})
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("updates only the own record", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Client{ID: "c1", Name: "Maria"}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) error {
				assert.Equal(t, "11 99999-0000", fields[model.FieldPhone])
				assert.NotContains(t, fields, model.FieldEmail)

				where, args := filter.GetWhereClause()
				assert.Contains(t, where, model.FieldID)
				assert.Contains(t, args, model.FieldID)

				return nil
			})

		err := svc.UpdateProfile(clientContext("maria@mail.com"), dto.UpdateProfileRequest{Phone: "11 99999-0000"})
		assert.NoError(t, err)
	})
}

func TestClientService_RecordVisit(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().IncrementVisits(gomock.Any(), "Maria", 50.0, "user-id").Return(true, nil)

		found, err := svc.RecordVisit(clientContext("admin@mail.com"), "Maria", 50)
		require.NoError(t, err)
		assert.True(t, found)
	})

	t.Run("no client with that name", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().IncrementVisits(gomock.Any(), "Joana", 50.0, "user-id").Return(false, nil)

		found, err := svc.RecordVisit(clientContext("admin@mail.com"), "Joana", 50)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("repository error", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().IncrementVisits(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errors.New("database error"))

		_, err := svc.RecordVisit(clientContext("admin@mail.com"), "Maria", 50)
		assert.Error(t, err)
	})
}
