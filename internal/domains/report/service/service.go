package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Report=MockReport

import (
	"context"
	"fmt"
	"salon/config"
	"salon/infras/otel"
	"salon/infras/s3"
	appointmentService "salon/internal/domains/appointment/service"
	clientService "salon/internal/domains/client/service"
	ledgerModel "salon/internal/domains/ledger/model"
	ledgerDto "salon/internal/domains/ledger/model/dto"
	ledgerService "salon/internal/domains/ledger/service"
	"salon/internal/domains/report/model"
	"salon/internal/domains/report/model/dto"
	settingsService "salon/internal/domains/settings/service"
	"salon/internal/scheduling"
	"salon/shared/constant"
	"salon/shared/failure"
	"salon/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultURLExpiry = time.Hour

type Report interface {
	Export(ctx context.Context, req dto.ExportRequest) (dto.ExportResponse, error)
}

type serviceImpl struct {
	ledger       ledgerService.Ledger
	appointments appointmentService.Appointment
	clients      clientService.Client
	settings     settingsService.Settings
	storage      s3.S3
	cfg          *config.Config
	otel         otel.Otel
}

func New(
	ledger ledgerService.Ledger,
	appointments appointmentService.Appointment,
	clients clientService.Client,
	settings settingsService.Settings,
	storage s3.S3,
	cfg *config.Config,
	otel otel.Otel,
) Report {
	return &serviceImpl{
		ledger:       ledger,
		appointments: appointments,
		clients:      clients,
		settings:     settings,
		storage:      storage,
		cfg:          cfg,
		otel:         otel,
	}
}

// Export renders the period report as CSV, stores it in the bucket and
// returns a link to download it.
func (s *serviceImpl) Export(ctx context.Context, req dto.ExportRequest) (res dto.ExportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Export")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	report, err := s.collect(ctx, req)
	if err != nil {
		return res, err
	}

	data, err := report.CSV()
	if err != nil {
		log.Error().Err(err).Msg("failed to render report")

		return res, fmt.Errorf("failed to render report: %w", err)
	}

	res.FileName = req.FileName(report.GeneratedAt, constant.ReportFormat)

	res.ObjectKey, err = s.storage.Upload(ctx, s.cfg.External.S3.ReportDirectory, res.FileName, constant.ContentTypeCSV, data)
	if err != nil {
		return res, fmt.Errorf("failed to store report: %w", err)
	}

	expiry := s.urlExpiry()

	res.URL, err = s.storage.PresignURL(ctx, res.ObjectKey, expiry)
	if err != nil {
		return res, fmt.Errorf("failed to sign report url: %w", err)
	}

	res.ExpiresAt = report.GeneratedAt.Add(expiry)

	log.Info().Str("key", res.ObjectKey).Int("transactions", len(report.Transactions)).Msg("report exported")

	return res, nil
}

func (s *serviceImpl) collect(ctx context.Context, req dto.ExportRequest) (report model.Report, err error) {
	report.StartDate, err = scheduling.ParseDate(req.StartDate)
	if err != nil {
		return report, failure.BadRequest(err) // nolint:wrapcheck
	}

	report.EndDate, err = scheduling.ParseDate(req.EndDate)
	if err != nil {
		return report, failure.BadRequest(err) // nolint:wrapcheck
	}

	if report.EndDate.Before(report.StartDate) {
		return report, failure.BadRequestFromString("end date must not be before start date") // nolint:wrapcheck
	}

	dateRange := ledgerDto.DateRange{StartDate: req.StartDate, EndDate: req.EndDate}

	summary, err := s.ledger.Summary(ctx, dateRange)
	if err != nil {
		return report, fmt.Errorf("failed to summarize ledger: %w", err)
	}

	report.Summary = ledgerModel.Summary{Income: summary.Income, Expense: summary.Expense, Count: summary.Count}

	report.Transactions, err = s.ledger.Range(ctx, dateRange)
	if err != nil {
		return report, fmt.Errorf("failed to list transactions: %w", err)
	}

	appointments, err := s.appointments.Between(ctx, req.StartDate, req.EndDate)
	if err != nil {
		return report, fmt.Errorf("failed to list appointments: %w", err)
	}

	report.Appointments = model.CountAppointments(appointments)

	report.Clients, err = s.clients.All(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to list clients: %w", err)
	}

	info, err := s.settings.SalonInfo(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to load salon info: %w", err)
	}

	report.SalonName = info.Name
	report.GeneratedAt = timezone.Now()

	return report, nil
}

func (s *serviceImpl) urlExpiry() time.Duration {
	if minutes := s.cfg.External.S3.ReportURLExpiry; minutes > 0 {
		return time.Duration(minutes) * time.Minute
	}

	return defaultURLExpiry
}
