package dto

import (
	"salon/internal/domains/ledger/model"
	"salon/shared"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	gModel "salon/shared/model"
	"salon/shared/timezone"

	"github.com/google/uuid"
)

type CreateTransactionRequest struct {
	Type          string  `json:"type"           validate:"required,oneof=income expense"`
	Amount        float64 `json:"amount"         validate:"gt=0"`
	Description   string  `json:"description"    validate:"required,max=255"`
	PaymentMethod string  `json:"payment_method" validate:"omitempty,oneof=dinheiro pix cartao_credito cartao_debito"`
	ClientName    *string `json:"client_name"    validate:"omitempty,max=100"`
	Date          string  `json:"date"           validate:"omitempty,day"`
}

func (c *CreateTransactionRequest) ToModel(user string) model.Transaction {
	now := timezone.Now()

	paymentMethod := c.PaymentMethod
	if paymentMethod == constant.Empty {
		paymentMethod = model.PaymentCash
	}

	date := c.Date
	if date == constant.Empty {
		date = timezone.Today()
	}

	return model.Transaction{
		ID:            uuid.NewString(),
		Type:          c.Type,
		Amount:        c.Amount,
		Description:   c.Description,
		PaymentMethod: paymentMethod,
		ClientName:    c.ClientName,
		Date:          date,
		Metadata:      gModel.NewMetadata(user, now),
	}
}

type UpdateTransactionRequest struct {
	Type          string   `db:"type"             json:"type"           validate:"omitempty,oneof=income expense"`
	Amount        *float64 `db:"amount"           json:"amount"         validate:"omitempty,gt=0"`
	Description   string   `db:"description"      json:"description"    validate:"omitempty,max=255"`
	PaymentMethod string   `db:"payment_method"   json:"payment_method" validate:"omitempty,oneof=dinheiro pix cartao_credito cartao_debito"`
	ClientName    *string  `db:"client_name"      json:"client_name"    validate:"omitempty,max=100"`
	Date          string   `db:"transaction_date" json:"date"           validate:"omitempty,day"`
}

// DateRange bounds a listing by transaction date, both ends inclusive.
type DateRange struct {
	StartDate string `json:"start_date" validate:"omitempty,day"`
	EndDate   string `json:"end_date"   validate:"omitempty,day,notbefore=StartDate"`
}

func (r DateRange) Filter() gDto.FilterGroup {
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if r.StartDate != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			ArgName:  constant.RequestParamStartDate,
			Field:    model.FieldDate,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    r.StartDate,
			Table:    model.TableName,
		})
	}

	if r.EndDate != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			ArgName:  constant.RequestParamEndDate,
			Field:    model.FieldDate,
			Operator: gDto.FilterOperatorLessEq,
			Value:    r.EndDate,
			Table:    model.TableName,
		})
	}

	return filter
}

type TransactionResponse struct {
	ID            string  `json:"id"`
	Type          string  `json:"type"`
	Amount        float64 `json:"amount"`
	Description   string  `json:"description"`
	PaymentMethod string  `json:"payment_method"`
	ClientName    *string `json:"client_name,omitempty"`
	Date          string  `json:"date"`
	gDto.Metadata
}

func (r *TransactionResponse) FromModel(model model.Transaction) {
	r.ID = model.ID
	r.Type = model.Type
	r.Amount = model.Amount
	r.Description = model.Description
	r.PaymentMethod = model.PaymentMethod
	r.ClientName = model.ClientName
	r.Date = model.Date
	r.Metadata.FromModel(model.Metadata)
}

type GetTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetTransactionsResponse) FromModels(models []model.Transaction, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Transactions = make([]TransactionResponse, len(models))
	for i, mod := range models {
		r.Transactions[i].FromModel(mod)
	}
}

type SummaryResponse struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
	Count   int     `json:"count"`
}

func (r *SummaryResponse) FromModel(model model.Summary) {
	r.Income = model.Income
	r.Expense = model.Expense
	r.Balance = model.Balance()
	r.Count = model.Count
}
