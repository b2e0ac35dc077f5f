package service

import (
	"context"
	"fmt"
	"salon/infras/kafka"
	"salon/internal/domains/appointment/model"
	ledgerModel "salon/internal/domains/ledger/model"
	ledgerDto "salon/internal/domains/ledger/model/dto"
	"salon/internal/scheduling"
	"salon/shared/constant"
	"salon/shared/timezone"

	"github.com/rs/zerolog/log"
)

func isBeingCompleted(current, next model.Appointment) bool {
	return scheduling.Status(next.Status) == scheduling.StatusCompleted &&
		scheduling.Status(current.Status) != scheduling.StatusCompleted
}

func eventFor(current, next model.Appointment) string {
	if current.Status != next.Status {
		switch scheduling.Status(next.Status) {
		case scheduling.StatusCompleted:
			return model.EventCompleted
		case scheduling.StatusCancelled:
			return model.EventCancelled
		}
	}

	return model.EventUpdated
}

// onCompleted books the revenue of a finished appointment and credits the
// client. Failures here never undo the status change.
func (s *serviceImpl) onCompleted(ctx context.Context, appointment model.Appointment) {
	logger := log.With().Str("appointment", appointment.ID).Str("service", appointment.Service).Logger()

	price, found, err := s.catalog.PriceByName(ctx, appointment.Service)
	if err != nil {
		logger.Error().Err(err).Msg("failed to look up service price")

		return
	}

	if !found || price <= 0 {
		logger.Warn().Msg("service not found or without price, no revenue recorded")

		return
	}

	clientName := appointment.ClientName

	_, err = s.ledger.Create(ctx, ledgerDto.CreateTransactionRequest{
		Type:          ledgerModel.TypeIncome,
		Amount:        price,
		Description:   fmt.Sprintf("%s - %s", appointment.Service, clientName),
		PaymentMethod: ledgerModel.PaymentCash,
		ClientName:    &clientName,
		Date:          appointment.Date,
	})
	if err != nil {
		logger.Error().Err(err).Msg("appointment completed but revenue could not be recorded")
	} else {
		logger.Info().Float64("amount", price).Msg("revenue recorded")
	}

	credited, err := s.clients.RecordVisit(ctx, clientName, price)

	switch {
	case err != nil:
		logger.Error().Err(err).Msg("failed to update client stats")
	case !credited:
		logger.Warn().Str("client", clientName).Msg("no client registered under this name, stats not updated")
	}
}

func (s *serviceImpl) publish(ctx context.Context, eventType, source string, appointment model.Appointment) {
	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	event := model.Event{
		Type:        eventType,
		Source:      source,
		Appointment: appointment.Engine(),
		Actor:       actor,
		OccurredAt:  timezone.Now(),
	}

	go func() {
		c := context.WithoutCancel(ctx)

		err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.Appointment, kafka.Message{Key: appointment.ID, Value: event})
		if err != nil {
			log.Error().Err(err).Str("event", eventType).Msg("failed to publish appointment event")
		}
	}()
}
