package model

import (
	"salon/internal/scheduling"
	"salon/shared/model"
)

const (
	HoursTableName  = "business_hours"
	HoursEntityName = "business_hours"

	FieldBucket = "bucket"
	FieldOpen   = "open_time"
	FieldClose  = "close_time"
	FieldClosed = "closed"
)

const (
	InfoTableName  = "salon_info"
	InfoEntityName = "salon_info"

	FieldInfoID = "id"

	// InfoID keys the single salon_info row.
	InfoID = "salon"
)

const (
	BucketWeekdays = "weekdays"
	BucketSaturday = "saturday"
	BucketSunday   = "sunday"
)

type Hours struct {
	Bucket string `db:"bucket"`
	Open   string `db:"open_time"`
	Close  string `db:"close_time"`
	Closed bool   `db:"closed"`
	model.Metadata
}

func (h Hours) DayHours() scheduling.DayHours {
	return scheduling.DayHours{Open: h.Open, Close: h.Close, Closed: h.Closed}
}

// ApplyHours overlays stored rows on top of base. Unknown buckets are ignored.
func ApplyHours(base scheduling.BusinessHours, rows []Hours) scheduling.BusinessHours {
	for _, row := range rows {
		switch row.Bucket {
		case BucketWeekdays:
			base.Weekdays = row.DayHours()
		case BucketSaturday:
			base.Saturday = row.DayHours()
		case BucketSunday:
			base.Sunday = row.DayHours()
		}
	}

	return base
}

type Info struct {
	ID    string `db:"id"`
	Name  string `db:"name"`
	Owner string `db:"owner"`
	Email string `db:"email"`
	Phone string `db:"phone"`
	model.Metadata
}
