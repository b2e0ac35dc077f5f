// Package timezone pins every wall clock reading to the salon's timezone.
//
// Appointment dates and times are stored as plain "YYYY-MM-DD" and "HH:MM"
// strings, so the location configured in APP_TIMEZONE decides what "today"
// and "in ten minutes" mean for the whole process:
//
//	today := timezone.Today()
//	startsAt, err := timezone.At("2024-01-15", "10:00")
//
// Use IANA names such as "America/Sao_Paulo" or "UTC".
package timezone
