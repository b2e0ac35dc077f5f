package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"salon/internal/domains/ledger/model"
	"salon/internal/domains/ledger/model/dto"
	"salon/shared/constant"
	"salon/shared/timezone"
	"salon/shared/validator"
)

func TestCreateTransactionRequest_ToModel(t *testing.T) {
	t.Run("defaults payment method and date", func(t *testing.T) {
		req := dto.CreateTransactionRequest{Type: model.TypeIncome, Amount: 50, Description: "Corte - Maria"}

		transaction := req.ToModel("admin")
		assert.Equal(t, model.PaymentCash, transaction.PaymentMethod)
		assert.Equal(t, timezone.Now().Format(constant.DayFormat), transaction.Date)
		assert.Equal(t, "admin", transaction.CreatedBy)
		assert.NotEmpty(t, transaction.ID)
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		req := dto.CreateTransactionRequest{
			Type: model.TypeExpense, Amount: 20, Description: "Shampoo",
			PaymentMethod: model.PaymentPix, Date: "2024-01-15",
		}

		transaction := req.ToModel("admin")
		assert.Equal(t, model.PaymentPix, transaction.PaymentMethod)
		assert.Equal(t, "2024-01-15", transaction.Date)
	})
}

func TestCreateTransactionRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.CreateTransactionRequest
		wantErr bool
	}{
		{
			name: "valid",
			req:  dto.CreateTransactionRequest{Type: "income", Amount: 10, Description: "x"},
		},
		{
			name:    "unknown type",
			req:     dto.CreateTransactionRequest{Type: "refund", Amount: 10, Description: "x"},
			wantErr: true,
		},
		{
			name:    "zero amount",
			req:     dto.CreateTransactionRequest{Type: "income", Description: "x"},
			wantErr: true,
		},
		{
			name:    "bad date",
			req:     dto.CreateTransactionRequest{Type: "income", Amount: 10, Description: "x", Date: "15/01/2024"},
			wantErr: true,
		},
		{
			name:    "unknown payment method",
			req:     dto.CreateTransactionRequest{Type: "income", Amount: 10, Description: "x", PaymentMethod: "cheque"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDateRange(t *testing.T) {
	t.Run("empty range has no conditions", func(t *testing.T) {
		filter := dto.DateRange{}.Filter()
		where, _ := filter.GetWhereClause()
		assert.Empty(t, where)
	})

	t.Run("both bounds", func(t *testing.T) {
		filter := dto.DateRange{StartDate: "2024-01-01", EndDate: "2024-01-31"}.Filter()
		where, args := filter.GetWhereClause()

		assert.Contains(t, where, "transactions.transaction_date >= :start_date")
		assert.Contains(t, where, "transactions.transaction_date <= :end_date")
		assert.Equal(t, "2024-01-01", args[constant.RequestParamStartDate])
		assert.Equal(t, "2024-01-31", args[constant.RequestParamEndDate])
	})

	t.Run("end before start is rejected", func(t *testing.T) {
		rng := dto.DateRange{StartDate: "2024-02-01", EndDate: "2024-01-31"}
		assert.Error(t, validator.ValidateStruct(&rng))
	})
}

func TestSummaryResponse_FromModel(t *testing.T) {
	var res dto.SummaryResponse
	res.FromModel(model.Summary{Income: 300, Expense: 120.5, Count: 4})

	assert.InDelta(t, 179.5, res.Balance, 0.001)
	assert.Equal(t, 4, res.Count)
}
