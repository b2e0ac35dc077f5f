package model

import (
	"bytes"
	"encoding/csv"
	"fmt"
	ledgerModel "salon/internal/domains/ledger/model"
	"strconv"
	"strings"
)

const (
	displayDay      = "02/01/2006"
	displayDateTime = "02/01/2006 15:04"
	missingValue    = "-"
)

// byteOrderMark makes spreadsheet tools read the file as UTF-8.
const byteOrderMark = "\uFEFF"

// CSV renders the report as sections separated by blank lines. Money uses a
// decimal comma.
func (r Report) CSV() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(byteOrderMark)

	writer := csv.NewWriter(&buf)

	records := [][]string{
		{"RELATÓRIO FINANCEIRO - " + strings.ToUpper(r.SalonName)},
		{"Período:", fmt.Sprintf("%s a %s", r.StartDate.Format(displayDay), r.EndDate.Format(displayDay))},
		{"Gerado em:", r.GeneratedAt.Format(displayDateTime)},
		{},
		{"RESUMO FINANCEIRO"},
		{"Descrição", "Valor"},
		{"Receita Total", Money(r.Summary.Income)},
		{"Despesas Total", Money(r.Summary.Expense)},
		{"Saldo do Período", Money(r.Summary.Balance())},
		{"Total de Transações", strconv.Itoa(r.Summary.Count)},
		{},
		{"AGENDAMENTOS"},
		{"Status", "Quantidade"},
		{"Total", strconv.Itoa(r.Appointments.Total)},
		{"Confirmados", strconv.Itoa(r.Appointments.Confirmed)},
		{"Pendentes", strconv.Itoa(r.Appointments.Pending)},
		{"Concluídos", strconv.Itoa(r.Appointments.Completed)},
		{"Cancelados", strconv.Itoa(r.Appointments.Cancelled)},
		{},
	}

	if len(r.Transactions) > 0 {
		records = append(records,
			[]string{"TRANSAÇÕES DETALHADAS"},
			[]string{"Data", "Tipo", "Descrição", "Cliente", "Forma de Pagamento", "Valor"},
		)

		for _, transaction := range r.Transactions {
			records = append(records, []string{
				transaction.Date,
				transactionType(transaction.Type),
				transaction.Description,
				orMissing(transaction.ClientName),
				orMissingString(transaction.PaymentMethod),
				Money(transaction.Amount),
			})
		}

		records = append(records, []string{})
	}

	if len(r.Clients) > 0 {
		records = append(records,
			[]string{"CLIENTES"},
			[]string{"Nome", "Email", "Telefone", "Visitas", "Total Gasto"},
		)

		for _, client := range r.Clients {
			records = append(records, []string{
				client.Name,
				client.Email,
				client.Phone,
				strconv.Itoa(client.Visits),
				Money(client.TotalSpent),
			})
		}
	}

	if err := writer.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}

	return buf.Bytes(), nil
}

// Money formats an amount with two decimals and a decimal comma.
func Money(value float64) string {
	return strings.Replace(strconv.FormatFloat(value, 'f', 2, 64), ".", ",", 1)
}

func transactionType(kind string) string {
	if kind == ledgerModel.TypeIncome {
		return "Entrada"
	}

	return "Saída"
}

func orMissing(value *string) string {
	if value == nil {
		return missingValue
	}

	return orMissingString(*value)
}

func orMissingString(value string) string {
	if value == "" {
		return missingValue
	}

	return value
}
