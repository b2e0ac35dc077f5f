package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"salon/config"
	kafkaMocks "salon/infras/kafka/mocks"
	"salon/infras/otel/mocks"
	appointmentMocks "salon/internal/domains/appointment/mocks"
	"salon/internal/domains/appointment/model"
	"salon/internal/domains/appointment/model/dto"
	"salon/internal/domains/appointment/service"
	catalogMocks "salon/internal/domains/catalog/mocks"
	catalogModel "salon/internal/domains/catalog/model"
	clientMocks "salon/internal/domains/client/mocks"
	clientModel "salon/internal/domains/client/model"
	ledgerMocks "salon/internal/domains/ledger/mocks"
	ledgerModel "salon/internal/domains/ledger/model"
	ledgerDto "salon/internal/domains/ledger/model/dto"
	settingsMocks "salon/internal/domains/settings/mocks"
	"salon/internal/scheduling"
	cacheMocks "salon/shared/cache/mocks"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	"salon/shared/failure"
	"salon/shared/lock"
	lockMocks "salon/shared/lock/mocks"
)

const (
	monday = "2024-01-15"
	sunday = "2024-01-14"
)

var catalog = []catalogModel.Service{
	{ID: "11111111-1111-1111-1111-111111111111", Name: "Corte", Price: 50, Duration: 30, Active: true},
	{ID: "22222222-2222-2222-2222-222222222222", Name: "Escova", Price: 80, Duration: 60, Active: true},
	{ID: "33333333-3333-3333-3333-333333333333", Name: "Coloração", Price: 150, Duration: 120, Active: true},
}

type fixture struct {
	svc      service.Appointment
	repo     *appointmentMocks.MockAppointment
	catalog  *catalogMocks.MockCatalog
	settings *settingsMocks.MockSettings
	ledger   *ledgerMocks.MockLedger
	clients  *clientMocks.MockClientService
	locker   *lockMocks.MockLocker
	cache    *cacheMocks.MockRedisCache
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:     appointmentMocks.NewMockAppointment(ctrl),
		catalog:  catalogMocks.NewMockCatalog(ctrl),
		settings: settingsMocks.NewMockSettings(ctrl),
		ledger:   ledgerMocks.NewMockLedger(ctrl),
		clients:  clientMocks.NewMockClientService(ctrl),
		locker:   lockMocks.NewMockLocker(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	producer := kafkaMocks.NewMockClient(ctrl)
	producer.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Scheduling.BookingLockSeconds = 5
	cfg.Kafka.Topics.Appointment = "salon.appointment.events"

	f.svc = service.New(f.repo, f.catalog, f.settings, f.ledger, f.clients, f.locker, f.cache, producer, cfg, mocks.NewOtel())

	return f
}

func (f *fixture) withCatalog() {
	f.catalog.EXPECT().Snapshot(gomock.Any()).Return(catalog, nil).AnyTimes()
}

func (f *fixture) withCalendar() {
	f.settings.EXPECT().Calendar(gomock.Any()).
		Return(scheduling.NewCalendar(scheduling.DefaultBusinessHours(), 30), nil).AnyTimes()
}

func (f *fixture) withDay(appointments ...model.Appointment) {
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(appointments, nil)
}

// withLock grants the date lock and reports whether it was released.
func (f *fixture) withLock(date string) *bool {
	released := false

	f.locker.EXPECT().Acquire(gomock.Any(), "appointment:"+date, gomock.Any()).
		Return(func() { released = true }, nil)

	return &released
}

func adminContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-id")
}

func booking(service, date, clock string) dto.CreateAppointmentRequest {
	return dto.CreateAppointmentRequest{ClientName: "Maria", Service: service, Date: date, Time: clock}
}

func existing(id, service, clock string, status scheduling.Status) model.Appointment {
	return model.Appointment{ID: id, ClientName: "Ana", Service: service, Date: monday, Time: clock, Status: string(status)}
}

func TestAppointmentService_Create(t *testing.T) {
	t.Run("books a free slot under the date lock", func(t *testing.T) {
		f := newFixture(t)
		f.withCatalog()
		f.withCalendar()
		released := f.withLock(monday)
		f.withDay(existing("a1", "Corte", "09:00", scheduling.StatusConfirmed))

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, m model.Appointment) error {
			assert.Equal(t, "09:30", m.Time)
			assert.Equal(t, string(scheduling.StatusPending), m.Status)

			return nil
		})

		res, err := f.svc.Create(adminContext(), booking("Escova", monday, "9:30"))
		require.NoError(t, err)
		assert.Equal(t, 60, res.Duration)
		assert.Equal(t, "10:30", res.EndTime)
		assert.True(t, *released)
	})

	t.Run("touching the previous appointment is allowed", func(t *testing.T) {
		f := newFixture(t)
		f.withCatalog()
		f.withCalendar()
		f.withLock(monday)
		f.withDay(existing("a1", "Escova", "09:00", scheduling.StatusConfirmed))
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.svc.Create(adminContext(), booking("Corte", monday, "10:00"))
		assert.NoError(t, err)
	})

	rejections := []struct {
		name    string
		req     dto.CreateAppointmentRequest
		code    int
		message string
	}{
		{
			name:    "closed day",
			req:     booking("Corte", sunday, "10:00"),
			code:    http.StatusBadRequest,
			message: "salon closed this day",
		},
		{
			name:    "outside business hours",
			req:     booking("Corte", monday, "07:30"),
			code:    http.StatusBadRequest,
			message: "time outside business hours",
		},
		{
			name:    "service runs past closing",
			req:     booking("Coloração", monday, "17:00"),
			code:    http.StatusBadRequest,
			message: "service ends after closing time 18:00",
		},
		{
			name: "malformed date",
			req:  booking("Corte", "15/01/2024", "10:00"),
			code: http.StatusBadRequest,
		},
	}

	for _, tt := range rejections {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.withCatalog()
			f.withCalendar()

			_, err := f.svc.Create(adminContext(), tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.code, failure.GetCode(err))

			if tt.message != "" {
				assert.Equal(t, tt.message, err.Error())
			}
		})
	}

	t.Run("conflict reports the clashing appointments", func(t *testing.T) {
		f := newFixture(t)
		f.withCatalog()
		f.withCalendar()
		released := f.withLock(monday)
		f.withDay(
			existing("a1", "Escova", "10:00", scheduling.StatusConfirmed),
			existing("a2", "Corte", "09:00", scheduling.StatusCancelled),
		)

		_, err := f.svc.Create(adminContext(), booking("Corte", monday, "10:30"))
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))

		details, ok := failure.GetDetails(err).([]dto.ConflictingAppointment)
		require.True(t, ok)
		require.Len(t, details, 1)
		assert.Equal(t, "a1", details[0].ID)
		assert.True(t, *released)
	})

	t.Run("cancelled appointments do not block", func(t *testing.T) {
		f := newFixture(t)
		f.withCatalog()
		f.withCalendar()
		f.withLock(monday)
		f.withDay(existing("a1", "Corte", "09:00", scheduling.StatusCancelled))
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.svc.Create(adminContext(), booking("Corte", monday, "09:00"))
		assert.NoError(t, err)
	})

	t.Run("date locked by a concurrent booking", func(t *testing.T) {
		f := newFixture(t)
		f.withCatalog()
		f.withCalendar()
		f.locker.EXPECT().Acquire(gomock.Any(), "appointment:"+monday, gomock.Any()).Return(nil, lock.ErrNotAcquired)

		_, err := f.svc.Create(adminContext(), booking("Corte", monday, "10:00"))
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("unique violation from a racing write", func(t *testing.T) {
		f := newFixture(t)
		f.withCatalog()
		f.withCalendar()
		released := f.withLock(monday)
		f.withDay()
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})

		_, err := f.svc.Create(adminContext(), booking("Corte", monday, "10:00"))
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.Equal(t, "time no longer available", err.Error())
		assert.True(t, *released)
	})

	t.Run("cancelled booking skips validation", func(t *testing.T) {
		f := newFixture(t)
		f.withCatalog()
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		req := booking("Corte", sunday, "10:00")
		req.Status = string(scheduling.StatusCancelled)

		_, err := f.svc.Create(adminContext(), req)
		assert.NoError(t, err)
	})

	t.Run("unknown service falls back to thirty minutes", func(t *testing.T) {
		f := newFixture(t)
		f.withCatalog()
		f.withCalendar()
		f.withLock(monday)
		f.withDay(existing("a1", "Corte", "10:30", scheduling.StatusPending))
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.Create(adminContext(), booking("Massagem", monday, "10:00"))
		require.NoError(t, err)
		assert.Equal(t, scheduling.FallbackDuration, res.Duration)
	})
}

func TestAppointmentService_Update(t *testing.T) {
	confirmed := existing("a1", "Corte", "10:00", scheduling.StatusConfirmed)
	confirmed.ClientName = "Maria"

	t.Run("empty request", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Update(adminContext(), dto.UpdateAppointmentRequest{}, "a1")
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Appointment{}, nil)

		err := f.svc.Update(adminContext(), dto.UpdateAppointmentRequest{Notes: new(string)}, "a1")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("completion records revenue and the visit", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmed, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.catalog.EXPECT().PriceByName(gomock.Any(), "Corte").Return(50.0, true, nil)
		f.ledger.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req ledgerDto.CreateTransactionRequest) (ledgerDto.TransactionResponse, error) {
				assert.Equal(t, ledgerModel.TypeIncome, req.Type)
				assert.InDelta(t, 50.0, req.Amount, 0.001)
				assert.Equal(t, "Corte - Maria", req.Description)
				assert.Equal(t, ledgerModel.PaymentCash, req.PaymentMethod)
				assert.Equal(t, "Maria", *req.ClientName)
				assert.Equal(t, monday, req.Date)

				return ledgerDto.TransactionResponse{}, nil
			})
		f.clients.EXPECT().RecordVisit(gomock.Any(), "Maria", 50.0).Return(true, nil)

		err := f.svc.Update(adminContext(), dto.UpdateAppointmentRequest{Status: string(scheduling.StatusCompleted)}, "a1")
		assert.NoError(t, err)
	})

	t.Run("completion without a price records nothing", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmed, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.catalog.EXPECT().PriceByName(gomock.Any(), "Corte").Return(0.0, false, nil)

		err := f.svc.Update(adminContext(), dto.UpdateAppointmentRequest{Status: string(scheduling.StatusCompleted)}, "a1")
		assert.NoError(t, err)
	})

	t.Run("side effect failures do not fail the update", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmed, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.catalog.EXPECT().PriceByName(gomock.Any(), "Corte").Return(50.0, true, nil)
		f.ledger.EXPECT().Create(gomock.Any(), gomock.Any()).Return(ledgerDto.TransactionResponse{}, errors.New("database error"))
		f.clients.EXPECT().RecordVisit(gomock.Any(), "Maria", 50.0).Return(false, errors.New("database error"))

		err := f.svc.Update(adminContext(), dto.UpdateAppointmentRequest{Status: string(scheduling.StatusCompleted)}, "a1")
		assert.NoError(t, err)
	})

	t.Run("already completed does not record twice", func(t *testing.T) {
		f := newFixture(t)

		completed := confirmed
		completed.Status = string(scheduling.StatusCompleted)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(completed, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		err := f.svc.Update(adminContext(), dto.UpdateAppointmentRequest{Status: string(scheduling.StatusCompleted)}, "a1")
		assert.NoError(t, err)
	})

	t.Run("moving the slot excludes itself from the check", func(t *testing.T) {
		f := newFixture(t)
		f.withCatalog()
		f.withCalendar()
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmed, nil)
		f.withLock(monday)
		f.withDay(confirmed)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "10:15", fields[model.FieldTime])

				return nil
			})

		err := f.svc.Update(adminContext(), dto.UpdateAppointmentRequest{Time: "10:15"}, "a1")
		assert.NoError(t, err)
	})

	t.Run("reactivating a cancelled appointment is checked again", func(t *testing.T) {
		f := newFixture(t)
		f.withCatalog()
		f.withCalendar()

		cancelled := confirmed
		cancelled.Status = string(scheduling.StatusCancelled)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cancelled, nil)
		f.withLock(monday)
		f.withDay(cancelled, existing("a2", "Corte", "10:00", scheduling.StatusPending))

		err := f.svc.Update(adminContext(), dto.UpdateAppointmentRequest{Status: string(scheduling.StatusConfirmed)}, "a1")
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("cancelling skips validation", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmed, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		err := f.svc.Update(adminContext(), dto.UpdateAppointmentRequest{Date: sunday, Status: string(scheduling.StatusCancelled)}, "a1")
		assert.NoError(t, err)
	})
}

func TestAppointmentService_Delete(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Appointment{}, nil)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(f.svc.Delete(adminContext(), "a1")))
	})

	t.Run("deletes", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing("a1", "Corte", "10:00", scheduling.StatusPending), nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, f.svc.Delete(adminContext(), "a1"))
	})
}

func TestAppointmentService_Availability(t *testing.T) {
	t.Run("raw slots without a service", func(t *testing.T) {
		f := newFixture(t)
		f.withCalendar()

		res, err := f.svc.Availability(context.Background(), dto.AvailabilityRequest{Date: monday})
		require.NoError(t, err)
		assert.False(t, res.Filtered)
		assert.Len(t, res.Slots, 20)
		assert.Equal(t, "Segunda-feira", res.DayName)
		assert.Equal(t, "18:00", res.ClosingTime)
	})

	t.Run("closed day", func(t *testing.T) {
		f := newFixture(t)
		f.withCalendar()

		res, err := f.svc.Availability(context.Background(), dto.AvailabilityRequest{Date: sunday, Service: "Corte"})
		require.NoError(t, err)
		assert.True(t, res.Closed)
		assert.Empty(t, res.Slots)
	})

	t.Run("filters conflicts and the closing boundary", func(t *testing.T) {
		f := newFixture(t)
		f.withCalendar()
		f.withCatalog()
		f.withDay(existing("a1", "Corte", "10:00", scheduling.StatusConfirmed))

		res, err := f.svc.Availability(context.Background(), dto.AvailabilityRequest{Date: monday, Service: "Escova"})
		require.NoError(t, err)
		assert.True(t, res.Filtered)
		assert.Equal(t, 60, res.Duration)
		assert.NotContains(t, res.Slots, "09:30")
		assert.NotContains(t, res.Slots, "10:00")
		assert.Contains(t, res.Slots, "09:00")
		assert.Contains(t, res.Slots, "10:30")
		assert.Contains(t, res.Slots, "17:00")
		assert.NotContains(t, res.Slots, "17:30")
	})

	t.Run("duration by service id", func(t *testing.T) {
		f := newFixture(t)
		f.withCalendar()
		f.withCatalog()
		f.withDay()

		res, err := f.svc.Availability(context.Background(), dto.AvailabilityRequest{Date: monday, ServiceID: catalog[2].ID})
		require.NoError(t, err)
		assert.Equal(t, 120, res.Duration)
		assert.Equal(t, "16:00", res.Slots[len(res.Slots)-1])
	})
}

func TestAppointmentService_CheckConflict(t *testing.T) {
	tests := []struct {
		name         string
		req          dto.ConflictCheckRequest
		wantConflict bool
	}{
		{name: "touching boundary", req: dto.ConflictCheckRequest{Date: monday, Time: "09:30", Service: "Corte"}},
		{name: "overlap", req: dto.ConflictCheckRequest{Date: monday, Time: "09:15", Service: "Corte"}, wantConflict: true},
		{name: "explicit duration reaches back", req: dto.ConflictCheckRequest{Date: monday, Time: "08:00", Duration: 90}, wantConflict: true},
		{name: "self exclusion", req: dto.ConflictCheckRequest{Date: monday, Time: "09:00", Service: "Corte", ExcludeID: "a1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.withCatalog()
			f.withDay(existing("a1", "Corte", "09:00", scheduling.StatusCompleted))

			res, err := f.svc.CheckConflict(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantConflict, res.Conflict)
		})
	}
}

func TestAppointmentService_Occupancy(t *testing.T) {
	f := newFixture(t)
	f.withCalendar()
	f.withCatalog()
	f.withDay(existing("a1", "Escova", "09:00", scheduling.StatusConfirmed))

	res, err := f.svc.Occupancy(context.Background(), monday)
	require.NoError(t, err)
	assert.Equal(t, 30, res.Granularity)

	slots := map[string]scheduling.GridSlot{}
	for _, slot := range res.Slots {
		slots[slot.Time] = slot
	}

	require.NotNil(t, slots["09:00"].Occupancy)
	assert.True(t, slots["09:00"].Occupancy.IsStart)
	assert.False(t, slots["09:00"].Occupancy.IsEnd)
	require.NotNil(t, slots["09:30"].Occupancy)
	assert.True(t, slots["09:30"].Occupancy.IsEnd)
	assert.Nil(t, slots["10:00"].Occupancy)
}

func TestAppointmentService_Portal(t *testing.T) {
	clientCtx := context.WithValue(context.Background(), constant.ContextKeyUserEmail, "maria@mail.com")
	maria := clientModel.Client{ID: "c1", Name: "Maria", Phone: "11 99999-0000", Email: "maria@mail.com"}

	t.Run("book as pending for the signed-in client", func(t *testing.T) {
		f := newFixture(t)
		f.withCatalog()
		f.withCalendar()
		f.withLock(monday)
		f.withDay()
		f.clients.EXPECT().FindByEmail(gomock.Any(), "maria@mail.com").Return(maria, true, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, m model.Appointment) error {
			assert.Equal(t, "Maria", m.ClientName)
			assert.Equal(t, "11 99999-0000", *m.ClientPhone)
			assert.Equal(t, string(scheduling.StatusPending), m.Status)

			return nil
		})

		_, err := f.svc.Book(clientCtx, dto.BookAppointmentRequest{Service: "Corte", Date: monday, Time: "14:00"})
		assert.NoError(t, err)
	})

	t.Run("book without a client record", func(t *testing.T) {
		f := newFixture(t)
		f.clients.EXPECT().FindByEmail(gomock.Any(), "maria@mail.com").Return(clientModel.Client{}, false, nil)

		_, err := f.svc.Book(clientCtx, dto.BookAppointmentRequest{Service: "Corte", Date: monday, Time: "14:00"})
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("own appointments newest first", func(t *testing.T) {
		f := newFixture(t)
		f.withCatalog()
		f.clients.EXPECT().FindByEmail(gomock.Any(), "maria@mail.com").Return(maria, true, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Appointment{
			{ID: "old", ClientName: "maria", Service: "Corte", Date: "2024-01-10", Time: "10:00"},
			{ID: "late", ClientName: "Maria", Service: "Corte", Date: monday, Time: "15:00"},
			{ID: "early", ClientName: "Maria", Service: "Corte", Date: monday, Time: "09:00"},
		}, nil)

		res, err := f.svc.ClientAppointments(clientCtx)
		require.NoError(t, err)
		require.Len(t, res, 3)
		assert.Equal(t, "late", res[0].ID)
		assert.Equal(t, "early", res[1].ID)
		assert.Equal(t, "old", res[2].ID)
	})
}
