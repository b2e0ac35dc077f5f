package ledger

import (
	"net/http"
	"salon/infras/otel"
	"salon/internal/domains/ledger/model"
	"salon/internal/domains/ledger/model/dto"
	"salon/internal/domains/ledger/service"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	"salon/shared/validator"
	"salon/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Ledger
	otel    otel.Otel
}

func New(service service.Ledger, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/transactions", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateTransaction)
		routerGroup.Get("/", handler.GetTransactions)
		routerGroup.Get("/summary", handler.GetSummary)
		routerGroup.Get("/{id}", handler.GetTransactionByID)
		routerGroup.Patch("/{id}", handler.UpdateTransaction)
		routerGroup.Delete("/{id}", handler.DeleteTransaction)
	})
}

func dateRange(r *http.Request) (dto.DateRange, error) {
	dateRange := dto.DateRange{
		StartDate: r.URL.Query().Get(constant.RequestParamStartDate),
		EndDate:   r.URL.Query().Get(constant.RequestParamEndDate),
	}

	return dateRange, validator.ValidateStruct(&dateRange)
}

// CreateTransaction records an income or an expense.
// @Summary Create a transaction
// @Tags Transaction
// @Accept json
// @Produce json
// @Param request body dto.CreateTransactionRequest true "Create Transaction Request"
// @Success 201 {object} response.Data[dto.TransactionResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/transactions [post]
// @Security BearerAuth
func (handler *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTransaction")
	defer scope.End()

	req := dto.CreateTransactionRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	transaction, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create transaction")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Transaction created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, transaction)
}

// GetTransactions lists the ledger.
// @Summary Get all transactions
// @Tags Transaction
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param start_date query string false "First day, inclusive (YYYY-MM-DD)"
// @Param end_date query string false "Last day, inclusive (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetTransactionsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/transactions [get]
// @Security BearerAuth
func (handler *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTransactions")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.Restrict(model.FieldDate, model.FieldDate, model.FieldAmount, model.FieldType, constant.DefaultValueSortBy)

	dateRange, err := dateRange(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate date range")

		response.WithError(w, err)

		return
	}

	transactions, err := handler.service.GetAll(ctx, queryParams, dateRange)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get transactions")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Transactions retrieved successfully")

	response.WithJSON(w, http.StatusOK, transactions)
}

// GetSummary totals income and expenses over a period.
// @Summary Get the financial summary
// @Tags Transaction
// @Produce json
// @Param start_date query string false "First day, inclusive (YYYY-MM-DD)"
// @Param end_date query string false "Last day, inclusive (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.SummaryResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/transactions/summary [get]
// @Security BearerAuth
func (handler *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSummary")
	defer scope.End()

	dateRange, err := dateRange(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate date range")

		response.WithError(w, err)

		return
	}

	summary, err := handler.service.Summary(ctx, dateRange)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get summary")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, summary)
}

// GetTransactionByID retrieves a transaction by its ID.
// @Summary Get a transaction by ID
// @Tags Transaction
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} response.Data[dto.TransactionResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/transactions/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetTransactionByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTransactionByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	transaction, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get transaction by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, transaction)
}

// UpdateTransaction edits a transaction by its ID.
// @Summary Update a transaction by ID
// @Tags Transaction
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body dto.UpdateTransactionRequest true "Update Transaction Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/transactions/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTransaction")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateTransactionRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update transaction")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Transaction updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Transaction updated successfully")
}

// DeleteTransaction removes a transaction by its ID.
// @Summary Delete a transaction by ID
// @Tags Transaction
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/transactions/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTransaction")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete transaction")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Transaction deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Transaction deleted successfully")
}
