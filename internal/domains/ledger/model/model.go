package model

import "salon/shared/model"

const (
	TableName  = "transactions"
	EntityName = "transaction"

	FieldID            = "id"
	FieldType          = "type"
	FieldAmount        = "amount"
	FieldDescription   = "description"
	FieldPaymentMethod = "payment_method"
	FieldClientName    = "client_name"
	FieldDate          = "transaction_date"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

const (
	PaymentCash       = "dinheiro"
	PaymentPix        = "pix"
	PaymentCreditCard = "cartao_credito"
	PaymentDebitCard  = "cartao_debito"
)

type Transaction struct {
	ID            string  `db:"id"`
	Type          string  `db:"type"`
	Amount        float64 `db:"amount"`
	Description   string  `db:"description"`
	PaymentMethod string  `db:"payment_method"`
	ClientName    *string `db:"client_name"`
	Date          string  `db:"transaction_date"`
	model.Metadata
}

// Summary aggregates the transactions of a period.
type Summary struct {
	Income  float64 `db:"income"`
	Expense float64 `db:"expense"`
	Count   int     `db:"count"`
}

func (s Summary) Balance() float64 {
	return s.Income - s.Expense
}
