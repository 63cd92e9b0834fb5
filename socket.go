package main

import (
	"fmt"
	"io"
	"log/slog"
	"net"
)

// acpidSocketPath is the well-known socket the ACPI daemon broadcasts events
// on. hyprdock is a client only; nothing is ever written back.
const acpidSocketPath = "/var/run/acpid.socket"

const eventBufSize = 1024

// serve connects to the acpid socket and handles lid events until the
// connection fails. Connect and read errors are fatal: there is no
// reconnection, the daemon exits and the supervisor restarts it.
func (d *dock) serve() error {
	addr := &net.UnixAddr{
		Name: acpidSocketPath,
		Net:  "unix",
	}

	conn, err := net.DialUnix("unix", nil, addr)
	if err != nil {
		return fmt.Errorf("connecting to acpid socket: %w", err)
	}
	defer conn.Close()

	slog.Info("listening for acpi events", "socket", acpidSocketPath)
	return d.readEvents(conn)
}

// readEvents is the blocking event loop. Each read is taken as one complete
// newline-terminated record; acpid writes records small enough to never
// straddle a read, so no reassembly is done. Handling is fully synchronous:
// an event arriving mid-sequence waits in the stream until the next read.
func (d *dock) readEvents(conn io.Reader) error {
	buf := make([]byte, eventBufSize)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			return fmt.Errorf("reading from event socket: %w", err)
		}

		record := string(buf[:n])
		slog.Debug("event record received", "record", record)
		if err := d.handleEvent(record); err != nil {
			return fmt.Errorf("handling event %q: %w", record, err)
		}
	}
}
