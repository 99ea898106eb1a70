// Package timezone pins every wall-clock computation to the venue timezone
// configured in APP_TIMEZONE (an IANA name such as "Asia/Jakarta").
//
// Booking dates are calendar days in that zone: a preferred_date of
// 2026-11-01 means midnight local time, and "today" rolls over at local
// midnight rather than UTC midnight.
//
//	today := timezone.Today()
//	date, err := timezone.ParseDate("2026-11-01")
//	label := timezone.Format(booking.CreatedAt, time.RFC3339)
//
// An unknown or empty zone falls back to UTC with a log line.
package timezone
