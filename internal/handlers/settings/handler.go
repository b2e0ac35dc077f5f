package settings

import (
	"net/http"
	"salon/infras/otel"
	"salon/internal/domains/settings/model/dto"
	"salon/internal/domains/settings/service"
	"salon/shared/constant"
	"salon/shared/validator"
	"salon/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Settings
	otel    otel.Otel
}

func New(service service.Settings, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/settings", func(routerGroup chi.Router) {
		routerGroup.Get("/business-hours", handler.GetBusinessHours)
		routerGroup.Put("/business-hours", handler.UpdateBusinessHours)
		routerGroup.Get("/salon-info", handler.GetSalonInfo)
		routerGroup.Put("/salon-info", handler.UpdateSalonInfo)
	})
}

// GetBusinessHours returns the weekly opening hours.
// @Summary Get business hours
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Data[scheduling.BusinessHours]
// @Failure 500 {object} response.Error
// @Router /v1/settings/business-hours [get]
func (handler *Handler) GetBusinessHours(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBusinessHours")
	defer scope.End()

	hours, err := handler.service.BusinessHours(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get business hours")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, hours)
}

// UpdateBusinessHours replaces the weekly opening hours.
// @Summary Update business hours
// @Description Replace the hours of the weekdays, saturday and sunday buckets. Existing appointments are kept.
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body dto.BusinessHoursRequest true "Business Hours Request"
// @Success 200 {object} response.Data[scheduling.BusinessHours]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/business-hours [put]
// @Security BearerAuth
func (handler *Handler) UpdateBusinessHours(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBusinessHours")
	defer scope.End()

	req := dto.BusinessHoursRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	hours, err := handler.service.UpdateBusinessHours(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update business hours")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Business hours updated by user " + user)

	response.WithJSON(w, http.StatusOK, hours)
}

// GetSalonInfo returns the salon's public details.
// @Summary Get salon info
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Data[dto.SalonInfoResponse]
// @Failure 500 {object} response.Error
// @Router /v1/settings/salon-info [get]
func (handler *Handler) GetSalonInfo(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSalonInfo")
	defer scope.End()

	info, err := handler.service.SalonInfo(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get salon info")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, info)
}

// UpdateSalonInfo saves the salon's details.
// @Summary Update salon info
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body dto.SalonInfoRequest true "Salon Info Request"
// @Success 200 {object} response.Data[dto.SalonInfoResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/salon-info [put]
// @Security BearerAuth
func (handler *Handler) UpdateSalonInfo(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateSalonInfo")
	defer scope.End()

	req := dto.SalonInfoRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	info, err := handler.service.UpdateSalonInfo(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update salon info")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Salon info updated by user " + user)

	response.WithJSON(w, http.StatusOK, info)
}
