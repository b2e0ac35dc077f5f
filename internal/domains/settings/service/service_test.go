package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"salon/config"
	"salon/infras/otel/mocks"
	settingsMocks "salon/internal/domains/settings/mocks"
	"salon/internal/domains/settings/model"
	"salon/internal/domains/settings/model/dto"
	"salon/internal/domains/settings/service"
	"salon/internal/scheduling"
	cacheMocks "salon/shared/cache/mocks"
	"salon/shared/failure"
)

type fixture struct {
	svc   service.Settings
	hours *settingsMocks.MockHours
	info  *settingsMocks.MockSalonInfo
	cache *cacheMocks.MockRedisCache
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		hours: settingsMocks.NewMockHours(ctrl),
		info:  settingsMocks.NewMockSalonInfo(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Scheduling.SlotMinutes = 30

	f.svc = service.New(f.hours, f.info, cfg, f.cache, mocks.NewOtel())

	return f
}

func TestSettingsService_BusinessHours(t *testing.T) {
	t.Run("defaults when nothing is stored", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.hours.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		f.cache.EXPECT().SaveIfAbsent(gomock.Any(), "settings:hours", scheduling.DefaultBusinessHours(), 3600).Return(true, nil)

		hours, err := f.svc.BusinessHours(context.Background())
		require.NoError(t, err)
		assert.Equal(t, scheduling.DefaultBusinessHours(), hours)
	})

	t.Run("cached hours are served without the database", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), "settings:hours", gomock.Any()).DoAndReturn(func(_ context.Context, _ string, value any) error {
			hours := scheduling.DefaultBusinessHours()
			hours.Sunday = scheduling.DayHours{Open: "09:00", Close: "12:00"}
			*value.(*scheduling.BusinessHours) = hours

			return nil
		})

		hours, err := f.svc.BusinessHours(context.Background())
		require.NoError(t, err)
		assert.False(t, hours.Sunday.Closed)
	})

	t.Run("a read racing an update never overwrites the cache", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.hours.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		f.cache.EXPECT().SaveIfAbsent(gomock.Any(), "settings:hours", gomock.Any(), 3600).Return(false, nil)

		hours, err := f.svc.BusinessHours(context.Background())
		require.NoError(t, err)
		assert.Equal(t, scheduling.DefaultBusinessHours(), hours)
	})

	t.Run("stored buckets override the defaults", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.hours.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Hours{
			{Bucket: model.BucketSaturday, Closed: true},
			{Bucket: "holiday", Open: "10:00", Close: "12:00"},
		}, nil)
		f.cache.EXPECT().SaveIfAbsent(gomock.Any(), "settings:hours", gomock.Any(), 3600).Return(true, nil)

		hours, err := f.svc.BusinessHours(context.Background())
		require.NoError(t, err)
		assert.True(t, hours.Saturday.Closed)
		assert.Equal(t, "08:00", hours.Weekdays.Open)
	})

	t.Run("repository error", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.hours.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("database error"))

		_, err := f.svc.BusinessHours(context.Background())
		assert.Error(t, err)
	})
}

func TestSettingsService_UpdateBusinessHours(t *testing.T) {
	valid := dto.BusinessHoursRequest{
		Weekdays: dto.DayHoursRequest{Open: "09:00", Close: "19:00"},
		Saturday: dto.DayHoursRequest{Open: "09:00", Close: "13:00"},
		Sunday:   dto.DayHoursRequest{Closed: true},
	}

	t.Run("saves and writes the new hours through to the cache", func(t *testing.T) {
		f := newFixture(t)

		f.hours.EXPECT().Upsert(gomock.Any(), gomock.Len(3)).Return(nil)
		f.cache.EXPECT().Save(gomock.Any(), "settings:hours", valid.ToEngine(), 3600).Return(nil)

		hours, err := f.svc.UpdateBusinessHours(context.Background(), valid)
		require.NoError(t, err)
		assert.Equal(t, "19:00", hours.Weekdays.Close)
	})

	t.Run("drops the cached hours when the write through fails", func(t *testing.T) {
		f := newFixture(t)

		f.hours.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)
		f.cache.EXPECT().Save(gomock.Any(), "settings:hours", gomock.Any(), 3600).Return(errors.New("redis down"))
		f.cache.EXPECT().Delete(gomock.Any(), "settings:hours").Return(nil)

		_, err := f.svc.UpdateBusinessHours(context.Background(), valid)
		assert.NoError(t, err)
	})

	t.Run("inverted window is rejected", func(t *testing.T) {
		f := newFixture(t)

		req := valid
		req.Saturday = dto.DayHoursRequest{Open: "14:00", Close: "09:00"}

		_, err := f.svc.UpdateBusinessHours(context.Background(), req)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("repository error", func(t *testing.T) {
		f := newFixture(t)

		f.hours.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))

		_, err := f.svc.UpdateBusinessHours(context.Background(), valid)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestSettingsService_Calendar(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	f.hours.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	f.cache.EXPECT().SaveIfAbsent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)

	calendar, err := f.svc.Calendar(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 30, calendar.Granularity())

	sunday := time.Date(2024, time.January, 14, 0, 0, 0, 0, time.UTC)
	assert.True(t, calendar.IsClosedOnDate(sunday))
}

func TestSettingsService_SalonInfo(t *testing.T) {
	t.Run("default name until saved", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.info.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Info{}, nil)

		info, err := f.svc.SalonInfo(context.Background())
		require.NoError(t, err)
		assert.Equal(t, dto.DefaultSalonName, info.Name)
	})

	t.Run("stored info is cached", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.info.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Info{ID: model.InfoID, Name: "Studio Bela"}, nil)
		f.cache.EXPECT().SaveIfAbsent(gomock.Any(), "settings:info", gomock.Any(), 3600).Return(true, nil)

		info, err := f.svc.SalonInfo(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Studio Bela", info.Name)
	})

	t.Run("update", func(t *testing.T) {
		f := newFixture(t)

		f.info.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, info model.Info) error {
			assert.Equal(t, model.InfoID, info.ID)

			return nil
		})
		f.cache.EXPECT().Save(gomock.Any(), "settings:info", gomock.Any(), 3600).Return(nil)

		info, err := f.svc.UpdateSalonInfo(context.Background(), dto.SalonInfoRequest{Name: "Studio Bela"})
		require.NoError(t, err)
		assert.Equal(t, "Studio Bela", info.Name)
	})
}
