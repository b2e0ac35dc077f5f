package dto

import (
	"fmt"
	"time"
)

type ExportRequest struct {
	StartDate string `json:"start_date" validate:"required,day"`
	EndDate   string `json:"end_date"   validate:"required,day,notbefore=StartDate"`
}

// FileName is stable per period; the generation time keeps reruns apart.
func (r ExportRequest) FileName(generatedAt time.Time, layout string) string {
	return fmt.Sprintf("relatorio_%s_a_%s_%s.csv", r.StartDate, r.EndDate, generatedAt.Format(layout))
}

type ExportResponse struct {
	FileName  string    `json:"file_name"`
	ObjectKey string    `json:"object_key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
