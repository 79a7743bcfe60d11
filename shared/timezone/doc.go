// Package timezone keeps every timestamp the service renders in one configured zone.
//
// The zone comes from APP_TIMEZONE (an IANA name such as "UTC" or "Europe/London")
// and is loaded when the package is imported:
//
//	now := timezone.Now()
//	body := timezone.Format(booking.Start, time.RFC3339)
//
// Business rules never call Now directly. They take a Clock so a request reads the
// time once, and tests pin it with FixedClock.
package timezone
