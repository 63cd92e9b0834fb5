package main

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/godbus/dbus/v5"
)

// UPower exposes the lid switch as a LidIsClosed property; hosts without a
// running acpid can watch for PropertiesChanged signals instead of reading
// the acpid socket.
const (
	upowerDest     = "org.freedesktop.UPower"
	upowerPath     = "/org/freedesktop/UPower"
	upowerMatchIfc = "org.freedesktop.DBus.Properties"
	upowerMatchMbr = "PropertiesChanged"
	upowerSignal   = "org.freedesktop.DBus.Properties.PropertiesChanged"
	upowerMethod   = "org.freedesktop.DBus.Properties.Get"
	upowerProperty = "LidIsClosed"
)

// serveUpower watches UPower for lid switch changes and feeds them to the
// same handlers the acpid loop uses. Signals are handled one at a time; a
// lid flip during a command sequence waits in the signal channel.
func (d *dock) serveUpower() error {
	conn, err := dbus.SystemBus()
	if err != nil {
		return fmt.Errorf("connecting to system bus: %w", err)
	}
	defer conn.Close()

	if err := conn.AddMatchSignal(
		dbus.WithMatchInterface(upowerMatchIfc),
		dbus.WithMatchMember(upowerMatchMbr),
		dbus.WithMatchObjectPath(dbus.ObjectPath(upowerPath)),
	); err != nil {
		return fmt.Errorf("adding dbus match rule: %w", err)
	}

	signals := make(chan *dbus.Signal, 10)
	conn.Signal(signals)
	defer conn.RemoveSignal(signals)

	// Seed edge detection with the current state so a signal storm at
	// startup doesn't replay a transition that already happened.
	lastClosed, err := lidIsClosed(conn)
	if err != nil {
		return err
	}

	slog.Info("listening for upower lid events")
	for sig := range signals {
		if !isLidSignal(sig) {
			continue
		}

		closed, err := lidIsClosed(conn)
		if err != nil {
			return err
		}
		if closed == lastClosed {
			continue
		}
		lastClosed = closed

		if closed {
			if err := d.handleClose(); err != nil {
				return err
			}
			continue
		}
		if err := d.handleOpen(); err != nil {
			return err
		}
	}

	return fmt.Errorf("dbus signal channel closed")
}

func lidIsClosed(conn *dbus.Conn) (bool, error) {
	obj := conn.Object(upowerDest, upowerPath)
	var result dbus.Variant
	if err := obj.Call(upowerMethod, 0, upowerDest, upowerProperty).Store(&result); err != nil {
		return false, fmt.Errorf("reading %s: %w", upowerProperty, err)
	}

	closed, ok := result.Value().(bool)
	if !ok {
		return false, fmt.Errorf("unexpected type for %s", upowerProperty)
	}
	return closed, nil
}

// isLidSignal reports whether a PropertiesChanged signal touched the
// LidIsClosed property, either as a changed or an invalidated entry.
func isLidSignal(sig *dbus.Signal) bool {
	if sig.Name != upowerSignal {
		return false
	}

	if len(sig.Body) < 2 {
		return false
	}

	if changed, ok := sig.Body[1].(map[string]dbus.Variant); ok {
		if _, exists := changed[upowerProperty]; exists {
			return true
		}
	}

	if len(sig.Body) >= 3 {
		if invalidated, ok := sig.Body[2].([]string); ok {
			return slices.Contains(invalidated, upowerProperty)
		}
	}

	return false
}
