package services

import "time"

// Clock returns the current instant. Services store UTC at microsecond
// precision so values survive every supported database unchanged.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
