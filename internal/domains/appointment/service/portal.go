package service

import (
	"cmp"
	"context"
	"fmt"
	"salon/internal/domains/appointment/model"
	"salon/internal/domains/appointment/model/dto"
	clientModel "salon/internal/domains/client/model"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	"salon/shared/failure"
	"slices"

	"github.com/rs/zerolog/log"
)

// ClientAppointments lists the bookings of the signed-in client, newest
// first. Appointments are tied to clients by name only.
func (s *serviceImpl) ClientAppointments(ctx context.Context) (res []dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ClientAppointments")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	client, err := s.signedInClient(ctx)
	if err != nil {
		return nil, err
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldClientName, Operator: gDto.FilterOperatorEqFold, Value: client.Name, Table: model.TableName},
		},
	}

	appointments, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get client appointments")

		return nil, fmt.Errorf("failed to get client appointments: %w", err)
	}

	slices.SortFunc(appointments, func(a, b model.Appointment) int {
		return cmp.Or(cmp.Compare(b.Date, a.Date), cmp.Compare(b.Time, a.Time))
	})

	registry, err := s.registry(ctx)
	if err != nil {
		return nil, err
	}

	res = make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		res[i].FromModel(appointment, registry)
	}

	return res, nil
}

// Book creates a pending appointment for the signed-in client through the
// same checks staff bookings go through.
func (s *serviceImpl) Book(ctx context.Context, req dto.BookAppointmentRequest) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Book")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	client, err := s.signedInClient(ctx)
	if err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	create := req.ToCreate(client.Name, client.Phone)

	return s.create(ctx, create.ToModel(user), model.SourcePortal)
}

func (s *serviceImpl) signedInClient(ctx context.Context) (clientModel.Client, error) {
	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	client, found, err := s.clients.FindByEmail(ctx, email)
	if err != nil {
		return client, fmt.Errorf("failed to find client profile: %w", err)
	}

	if !found {
		return client, failure.NotFound("client profile not found") // nolint:wrapcheck
	}

	return client, nil
}
