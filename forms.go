package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// selectMonitor prompts for one of the monitor names found in the listing
// command's output and returns the chosen name. Meant as a setup helper for
// filling in monitor_name in the config.
func (d *dock) selectMonitor() (string, error) {
	out, err := d.runner.runCapture(d.cfg.GetMonitorsCommand)
	if err != nil {
		return "", fmt.Errorf("listing monitors: %w", err)
	}

	names := monitorNamesFromListing(string(out))
	if len(names) == 0 {
		return "", errors.New("no monitors found in listing output")
	}

	var sel string
	f := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Select your laptop's internal display").
			Options(huh.NewOptions(names...)...).
			Value(&sel),
	)).WithTheme(huh.ThemeBase())

	if err := f.Run(); err != nil {
		return "", fmt.Errorf("running monitor selection form: %w", err)
	}

	return sel, nil
}

// monitorNamesFromListing pulls monitor names out of 'hyprctl monitors'
// style output, where each device starts a block with a line like
// "Monitor eDP-1 (ID 0):".
func monitorNamesFromListing(out string) []string {
	var names []string
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[0] == "Monitor" {
			names = append(names, fields[1])
		}
	}
	return names
}
