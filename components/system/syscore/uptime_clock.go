package syscore

import (
	"time"

	"github.com/shirou/gopsutil/v3/host"
)

// UptimeClock reads the host uptime reported by the operating system.
//
// Remarks:
//   - Resolution is one second.
//
// References:
//   - https://github.com/shirou/gopsutil
type UptimeClock struct{}

// Now returns time elapsed since boot.
func (*UptimeClock) Now() (time.Duration, error) {
	uptime, err := host.Uptime()
	if err != nil {
		return 0, err
	}

	return time.Duration(uptime) * time.Second, nil
}
