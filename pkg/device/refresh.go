package device

import "time"

// Night window in device-local hours. Devices are battery powered; polling
// half as often overnight is imperceptible to a sleeping user.
const (
	nightStartHour = 23
	nightEndHour   = 6
)

// ComputeRefreshRate returns the polling interval in seconds for a device
// in the given timezone, doubling base during local night hours
// (11pm-6am). Unrecognized timezones fall back to UTC rather than erroring;
// the policy must never fail a device response.
func ComputeRefreshRate(timezone string, base int, now time.Time) int {
	if base <= 0 {
		base = DefaultRefreshRate
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}

	hour := now.In(loc).Hour()
	if hour >= nightStartHour || hour < nightEndHour {
		return base * 2
	}
	return base
}
