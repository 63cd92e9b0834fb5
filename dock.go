package main

import (
	"log/slog"
	"time"
)

// dock drives the monitor layout in response to lid events. It holds no
// monitor state of its own: whether the internal monitor is active and
// whether an external one is present are re-queried before every decision,
// because docking can change under the daemon at any time.
//
// Any failure to spawn a configured command aborts the whole operation and,
// through the caller, the daemon. A broken command mid-sequence would leave
// the displays inconsistent either way, so nothing here retries.
type dock struct {
	cfg    *config
	runner commandRunner
	sleep  func(time.Duration)
}

func newDock(cfg *config, r commandRunner) *dock {
	return &dock{
		cfg:    cfg,
		runner: r,
		sleep:  time.Sleep,
	}
}

func (d *dock) settleDelay() time.Duration {
	return time.Duration(d.cfg.SettleDelayMS) * time.Millisecond
}

// handleClose reacts to the lid closing. With an external monitor present the
// session moves to it; without one the user is walking away, so media is
// paused and the machine locks and suspends.
func (d *dock) handleClose() error {
	external, err := d.hasExternalMonitor()
	if err != nil {
		return err
	}

	if !external {
		slog.Info("lid closed with no external monitor, suspending")
		if err := d.stopMedia(); err != nil {
			return err
		}
		return d.lockSystem()
	}

	slog.Info("lid closed, switching to external monitor")
	if err := d.externalMonitor(); err != nil {
		return err
	}

	// Give the display backend time to finish the mode switch; restarting
	// the bar and wallpaper earlier has them render against stale geometry.
	d.sleep(d.settleDelay())

	if err := d.restartWallpaper(); err != nil {
		return err
	}
	return d.restartBar()
}

// handleOpen reacts to the lid opening. An open event while the internal
// monitor is already active changes nothing.
func (d *dock) handleOpen() error {
	active, err := d.isInternalActive()
	if err != nil {
		return err
	}
	if active {
		slog.Debug("lid opened, internal monitor already active")
		return nil
	}

	external, err := d.hasExternalMonitor()
	if err != nil {
		return err
	}

	if !external {
		slog.Info("lid opened, switching to internal monitor")
		if err := d.internalMonitor(); err != nil {
			return err
		}
		return d.fixBar()
	}

	slog.Info("lid opened, extending across both monitors")
	if err := d.extendMonitor(); err != nil {
		return err
	}
	if err := d.restartWallpaper(); err != nil {
		return err
	}
	if err := d.restartBar(); err != nil {
		return err
	}
	return d.fixBar()
}

// internalMonitor enables the internal monitor and disables the external one.
// The bar and wallpaper render relative to monitor geometry, so they are
// recreated when this actually changes the topology; if the internal monitor
// was already active they are left alone to avoid visible flicker.
func (d *dock) internalMonitor() error {
	active, err := d.isInternalActive()
	if err != nil {
		return err
	}

	if err := d.runner.run(d.cfg.EnableInternalCommand); err != nil {
		return err
	}
	if err := d.runner.run(d.cfg.DisableExternalCommand); err != nil {
		return err
	}

	if active {
		return nil
	}

	if err := d.restartWallpaper(); err != nil {
		return err
	}
	return d.restartBar()
}

// externalMonitor disables the internal monitor and enables the external one.
// No-op when no external monitor is present. Mirroring internalMonitor, the
// bar and wallpaper are recreated only when the internal monitor was active
// beforehand, since that is when the topology actually changes.
func (d *dock) externalMonitor() error {
	external, err := d.hasExternalMonitor()
	if err != nil {
		return err
	}
	if !external {
		slog.Debug("no external monitor present, nothing to switch to")
		return nil
	}

	active, err := d.isInternalActive()
	if err != nil {
		return err
	}

	if err := d.runner.run(d.cfg.DisableInternalCommand); err != nil {
		return err
	}
	if err := d.runner.run(d.cfg.EnableExternalCommand); err != nil {
		return err
	}

	if !active {
		return nil
	}

	if err := d.restartWallpaper(); err != nil {
		return err
	}
	return d.restartBar()
}

// extendMonitor places the external monitor next to the internal one,
// bringing the internal monitor back up first if needed.
func (d *dock) extendMonitor() error {
	if err := d.ensureInternal(); err != nil {
		return err
	}
	return d.runner.run(d.cfg.ExtendCommand)
}

// mirrorMonitor duplicates the internal monitor onto the external one, with
// the same internal-monitor gating as extendMonitor.
func (d *dock) mirrorMonitor() error {
	if err := d.ensureInternal(); err != nil {
		return err
	}
	return d.runner.run(d.cfg.MirrorCommand)
}

// ensureInternal runs the internal-monitor restart sequence if the internal
// monitor is not currently active.
func (d *dock) ensureInternal() error {
	active, err := d.isInternalActive()
	if err != nil {
		return err
	}
	if active {
		return nil
	}
	return d.restartInternal()
}

// restartInternal brings the internal monitor up and recreates everything
// that renders against its geometry, including a bar reload on top of the
// plain restart. Used when recovering from a closed-lid layout.
func (d *dock) restartInternal() error {
	if err := d.runner.run(d.cfg.EnableInternalCommand); err != nil {
		return err
	}
	if err := d.restartWallpaper(); err != nil {
		return err
	}
	if err := d.restartBar(); err != nil {
		return err
	}
	return d.fixBar()
}

func (d *dock) restartWallpaper() error {
	return d.runner.run(d.cfg.WallpaperCommand)
}

// restartBar closes the status bar before reopening it; opening first would
// leave two bar instances running.
func (d *dock) restartBar() error {
	if err := d.runner.run(d.cfg.CloseBarCommand); err != nil {
		return err
	}
	return d.runner.run(d.cfg.OpenBarCommand)
}

// fixBar reloads the bar; open/close cycles can leave it laid out for the
// wrong monitor.
func (d *dock) fixBar() error {
	return d.runner.run(d.cfg.ReloadBarCommand)
}

// lockSystem locks the screen and immediately suspends. Both are detached
// spawns; the suspend is not held back until the lock screen is visible.
func (d *dock) lockSystem() error {
	if err := d.runner.run(d.cfg.LockCommand); err != nil {
		return err
	}
	return d.runner.run(d.cfg.SuspendCommand)
}

func (d *dock) stopMedia() error {
	return d.runner.run(d.cfg.UtilityCommand)
}
