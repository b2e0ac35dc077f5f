package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"salon/config"
	"salon/infras/otel/mocks"
	s3Mocks "salon/infras/s3/mocks"
	appointmentMocks "salon/internal/domains/appointment/mocks"
	appointmentModel "salon/internal/domains/appointment/model"
	clientMocks "salon/internal/domains/client/mocks"
	clientModel "salon/internal/domains/client/model"
	ledgerMocks "salon/internal/domains/ledger/mocks"
	ledgerModel "salon/internal/domains/ledger/model"
	ledgerDto "salon/internal/domains/ledger/model/dto"
	"salon/internal/domains/report/model/dto"
	"salon/internal/domains/report/service"
	settingsMocks "salon/internal/domains/settings/mocks"
	settingsDto "salon/internal/domains/settings/model/dto"
	"salon/shared/constant"
	"salon/shared/failure"
)

type fixture struct {
	svc          service.Report
	ledger       *ledgerMocks.MockLedger
	appointments *appointmentMocks.MockAppointmentService
	clients      *clientMocks.MockClientService
	settings     *settingsMocks.MockSettings
	storage      *s3Mocks.MockS3
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		ledger:       ledgerMocks.NewMockLedger(ctrl),
		appointments: appointmentMocks.NewMockAppointmentService(ctrl),
		clients:      clientMocks.NewMockClientService(ctrl),
		settings:     settingsMocks.NewMockSettings(ctrl),
		storage:      s3Mocks.NewMockS3(ctrl),
	}

	cfg := &config.Config{}
	cfg.External.S3.ReportDirectory = "reports"
	cfg.External.S3.ReportURLExpiry = 30

	f.svc = service.New(f.ledger, f.appointments, f.clients, f.settings, f.storage, cfg, mocks.NewOtel())

	return f
}

func (f *fixture) withData() {
	dateRange := ledgerDto.DateRange{StartDate: "2024-01-01", EndDate: "2024-01-31"}

	f.ledger.EXPECT().Summary(gomock.Any(), dateRange).Return(ledgerDto.SummaryResponse{Income: 50, Balance: 50, Count: 1}, nil)
	f.ledger.EXPECT().Range(gomock.Any(), dateRange).Return([]ledgerModel.Transaction{
		{Date: "2024-01-15", Type: ledgerModel.TypeIncome, Description: "Corte - Maria", Amount: 50},
	}, nil)
	f.appointments.EXPECT().Between(gomock.Any(), "2024-01-01", "2024-01-31").Return([]appointmentModel.Appointment{
		{Status: "completed"},
	}, nil)
	f.clients.EXPECT().All(gomock.Any()).Return([]clientModel.Client{{Name: "Maria"}}, nil)
	f.settings.EXPECT().SalonInfo(gomock.Any()).Return(settingsDto.SalonInfoResponse{Name: "Salão do Ratinho"}, nil)
}

func TestReportService_Export(t *testing.T) {
	req := dto.ExportRequest{StartDate: "2024-01-01", EndDate: "2024-01-31"}

	t.Run("uploads and signs the report", func(t *testing.T) {
		f := newFixture(t)
		f.withData()

		f.storage.EXPECT().Upload(gomock.Any(), "reports", gomock.Any(), constant.ContentTypeCSV, gomock.Any()).DoAndReturn(
			func(_ context.Context, directory, fileName, _ string, data []byte) (string, error) {
				assert.Contains(t, fileName, "relatorio_2024-01-01_a_2024-01-31_")
				assert.Contains(t, string(data), "Concluídos,1")

				return directory + "/" + fileName, nil
			})
		f.storage.EXPECT().PresignURL(gomock.Any(), gomock.Any(), 30*time.Minute).Return("https://files/report.csv", nil)

		res, err := f.svc.Export(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "https://files/report.csv", res.URL)
		assert.Equal(t, "reports/"+res.FileName, res.ObjectKey)
		assert.False(t, res.ExpiresAt.IsZero())
	})

	t.Run("inverted range", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Export(context.Background(), dto.ExportRequest{StartDate: "2024-02-01", EndDate: "2024-01-01"})
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("malformed date", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Export(context.Background(), dto.ExportRequest{StartDate: "01/01/2024", EndDate: "2024-01-31"})
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("upload failure", func(t *testing.T) {
		f := newFixture(t)
		f.withData()
		f.storage.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("s3 down"))

		_, err := f.svc.Export(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}
