package main

// Lid event records as the ACPI event broadcaster writes them, trailing
// newline included. Anything else read off the socket is ignored.
const (
	lidCloseRecord = "button/lid LID close\n"
	lidOpenRecord  = "button/lid LID open\n"
)

type lidEvent int

const (
	lidUnrecognized lidEvent = iota
	lidClose
	lidOpen
)

func parseLidEvent(record string) lidEvent {
	switch record {
	case lidCloseRecord:
		return lidClose
	case lidOpenRecord:
		return lidOpen
	default:
		return lidUnrecognized
	}
}

// handleEvent dispatches one raw event record to the matching lid handler.
// Unrecognized records are dropped without error.
func (d *dock) handleEvent(record string) error {
	switch parseLidEvent(record) {
	case lidClose:
		return d.handleClose()
	case lidOpen:
		return d.handleOpen()
	default:
		return nil
	}
}
