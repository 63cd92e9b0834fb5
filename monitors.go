package main

import (
	"fmt"
	"strings"
)

// externalMonitorMarker appears in the monitor listing output whenever a
// second display device is enumerated. The listing tool assigns ID 0 to the
// first device and ID 1 to a second; three or more monitors are not handled.
const externalMonitorMarker = "ID 1"

// isInternalActive reports whether the internal monitor shows up in the
// monitor listing command's output. This is a plain substring match, not
// structured parsing: a monitor name that happens to appear elsewhere in the
// output (say, as a prefix of another connector) is a false positive. The
// listing tool's output format is unspecified, so this stays a heuristic.
//
// The listing command is re-run on every call. Docking is a physical event
// the daemon can't observe directly, so decisions always use a fresh query.
func (d *dock) isInternalActive() (bool, error) {
	out, err := d.runner.runCapture(d.cfg.GetMonitorsCommand)
	if err != nil {
		return false, fmt.Errorf("querying monitors: %w", err)
	}

	return strings.Contains(string(out), d.cfg.MonitorName), nil
}

// hasExternalMonitor reports whether the monitor listing enumerates a second
// display device. Same live-query and substring caveats as isInternalActive.
func (d *dock) hasExternalMonitor() (bool, error) {
	out, err := d.runner.runCapture(d.cfg.GetMonitorsCommand)
	if err != nil {
		return false, fmt.Errorf("querying monitors: %w", err)
	}

	return strings.Contains(string(out), externalMonitorMarker), nil
}
