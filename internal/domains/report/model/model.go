package model

import (
	appointmentModel "salon/internal/domains/appointment/model"
	clientModel "salon/internal/domains/client/model"
	ledgerModel "salon/internal/domains/ledger/model"
	"salon/internal/scheduling"
	"time"
)

// Report is everything the exported spreadsheet shows for one period.
type Report struct {
	SalonName    string
	StartDate    time.Time
	EndDate      time.Time
	GeneratedAt  time.Time
	Summary      ledgerModel.Summary
	Appointments AppointmentStats
	Transactions []ledgerModel.Transaction
	Clients      []clientModel.Client
}

type AppointmentStats struct {
	Total     int
	Confirmed int
	Pending   int
	Completed int
	Cancelled int
}

func CountAppointments(appointments []appointmentModel.Appointment) AppointmentStats {
	stats := AppointmentStats{Total: len(appointments)}

	for _, appointment := range appointments {
		switch scheduling.Status(appointment.Status) {
		case scheduling.StatusConfirmed:
			stats.Confirmed++
		case scheduling.StatusPending:
			stats.Pending++
		case scheduling.StatusCompleted:
			stats.Completed++
		case scheduling.StatusCancelled:
			stats.Cancelled++
		}
	}

	return stats
}
