package main

import (
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"
)

// Canned monitor listings in the style of 'hyprctl monitors'.
const (
	listingInternalOnly = "Monitor eDP-1 (ID 0):\n\t1920x1080@60\n"
	listingExternalOnly = "Monitor DP-1 (ID 1):\n\t2560x1440@144\n"
	listingBoth         = "Monitor eDP-1 (ID 0):\n\t1920x1080@60\nMonitor DP-1 (ID 1):\n\t2560x1440@144\n"
	listingNone         = ""
)

// fakeRunner records every spawned command line in order and serves a canned
// monitor listing for capture calls. Query commands are tracked separately
// from side-effecting spawns.
type fakeRunner struct {
	listing  string
	commands []string
	captures []string
	failOn   map[string]error
}

func (f *fakeRunner) run(command string) error {
	if err := f.failOn[command]; err != nil {
		return err
	}
	f.commands = append(f.commands, command)
	return nil
}

func (f *fakeRunner) runCapture(command string) ([]byte, error) {
	if err := f.failOn[command]; err != nil {
		return nil, err
	}
	f.captures = append(f.captures, command)
	return []byte(f.listing), nil
}

func testConfig() *config {
	return &config{
		MonitorName:            "eDP-1",
		OpenBarCommand:         "open-bar",
		CloseBarCommand:        "close-bar",
		ReloadBarCommand:       "fix-bar",
		SuspendCommand:         "do-suspend",
		LockCommand:            "do-lock",
		UtilityCommand:         "pause-media",
		GetMonitorsCommand:     "list-monitors",
		EnableInternalCommand:  "enable-internal",
		DisableInternalCommand: "disable-internal",
		EnableExternalCommand:  "enable-external",
		DisableExternalCommand: "disable-external",
		ExtendCommand:          "do-extend",
		MirrorCommand:          "do-mirror",
		WallpaperCommand:       "wallpaper",
		SettleDelayMS:          defaultSettleDelayMS,
	}
}

// sleepMarker shows up in the recorded command sequence wherever the dock
// yielded for the settle delay, so ordering around the delay is assertable.
const sleepMarker = "(settle)"

func newTestDock(listing string) (*dock, *fakeRunner) {
	r := &fakeRunner{listing: listing}
	d := newDock(testConfig(), r)
	d.sleep = func(time.Duration) {
		r.commands = append(r.commands, sleepMarker)
	}
	return d, r
}

func assertCommands(t *testing.T, got, want []string) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Errorf("command sequence:\n got %q\nwant %q", got, want)
	}
}

func TestHandleOpen_InternalAlreadyActive_NoOp(t *testing.T) {
	d, r := newTestDock(listingBoth)

	if err := d.handleOpen(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(r.commands) != 0 {
		t.Errorf("expected no command invocations, got %q", r.commands)
	}
}

func TestHandleOpen_NoExternal(t *testing.T) {
	d, r := newTestDock(listingNone)

	if err := d.handleOpen(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertCommands(t, r.commands, []string{
		"enable-internal",
		"disable-external",
		"wallpaper",
		"close-bar",
		"open-bar",
		"fix-bar",
	})

	for _, c := range r.commands {
		if c == "do-extend" || c == "do-mirror" {
			t.Errorf("layout command %q issued on plain internal switch", c)
		}
	}
}

func TestHandleOpen_ExternalPresent(t *testing.T) {
	d, r := newTestDock(listingExternalOnly)

	if err := d.handleOpen(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertCommands(t, r.commands, []string{
		"enable-internal",
		"wallpaper",
		"close-bar",
		"open-bar",
		"fix-bar",
		"do-extend",
		"wallpaper",
		"close-bar",
		"open-bar",
		"fix-bar",
	})

	extends := 0
	for _, c := range r.commands {
		if c == "do-extend" {
			extends++
		}
	}
	if extends != 1 {
		t.Errorf("extend issued %d times, want exactly once", extends)
	}

	if slices.Index(r.commands, "do-extend") < slices.Index(r.commands, "enable-internal") {
		t.Error("extend issued before internal monitor enablement")
	}
}

func TestHandleClose_ExternalPresent(t *testing.T) {
	d, r := newTestDock(listingBoth)

	if err := d.handleClose(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertCommands(t, r.commands, []string{
		"disable-internal",
		"enable-external",
		"wallpaper",
		"close-bar",
		"open-bar",
		sleepMarker,
		"wallpaper",
		"close-bar",
		"open-bar",
	})
}

func TestHandleClose_NoExternal(t *testing.T) {
	d, r := newTestDock(listingInternalOnly)

	if err := d.handleClose(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertCommands(t, r.commands, []string{
		"pause-media",
		"do-lock",
		"do-suspend",
	})
}

func TestHandleClose_SettleDelayDuration(t *testing.T) {
	cases := []struct {
		name     string
		settleMS int
		want     time.Duration
	}{
		{"default", defaultSettleDelayMS, time.Second},
		{"custom", 250, 250 * time.Millisecond},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := &fakeRunner{listing: listingBoth}
			cfg := testConfig()
			cfg.SettleDelayMS = tc.settleMS

			d := newDock(cfg, r)
			var slept []time.Duration
			d.sleep = func(dur time.Duration) {
				slept = append(slept, dur)
			}

			if err := d.handleClose(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(slept) != 1 || slept[0] != tc.want {
				t.Errorf("settle delays: got %v, want [%v]", slept, tc.want)
			}
		})
	}
}

func TestInternalMonitor_AlreadyActive_SkipsRestarts(t *testing.T) {
	d, r := newTestDock(listingBoth)

	if err := d.internalMonitor(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertCommands(t, r.commands, []string{
		"enable-internal",
		"disable-external",
	})
}

func TestExternalMonitor_NoExternal_NoOp(t *testing.T) {
	d, r := newTestDock(listingInternalOnly)

	if err := d.externalMonitor(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(r.commands) != 0 {
		t.Errorf("expected no command invocations, got %q", r.commands)
	}
}

func TestExternalMonitor_InternalInactive_SkipsRestarts(t *testing.T) {
	d, r := newTestDock(listingExternalOnly)

	if err := d.externalMonitor(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertCommands(t, r.commands, []string{
		"disable-internal",
		"enable-external",
	})
}

func TestExtendMonitor_Gating(t *testing.T) {
	cases := []struct {
		name    string
		listing string
		want    []string
	}{
		{
			name:    "internal active",
			listing: listingBoth,
			want:    []string{"do-extend"},
		},
		{
			name:    "internal inactive",
			listing: listingExternalOnly,
			want: []string{
				"enable-internal",
				"wallpaper",
				"close-bar",
				"open-bar",
				"fix-bar",
				"do-extend",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, r := newTestDock(tc.listing)
			if err := d.extendMonitor(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			assertCommands(t, r.commands, tc.want)
		})
	}
}

func TestMirrorMonitor_InternalActive(t *testing.T) {
	d, r := newTestDock(listingBoth)

	if err := d.mirrorMonitor(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertCommands(t, r.commands, []string{"do-mirror"})
}

func TestLockSystem_LockBeforeSuspend(t *testing.T) {
	d, r := newTestDock(listingNone)

	if err := d.lockSystem(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertCommands(t, r.commands, []string{"do-lock", "do-suspend"})
}

func TestHandleOpen_SpawnFailureAbortsSequence(t *testing.T) {
	spawnErr := fmt.Errorf("starting %q: executable not found", "enable-internal")

	d, r := newTestDock(listingNone)
	r.failOn = map[string]error{"enable-internal": spawnErr}

	err := d.handleOpen()
	if !errors.Is(err, spawnErr) {
		t.Fatalf("got %v, want spawn error", err)
	}

	if len(r.commands) != 0 {
		t.Errorf("commands issued after failed spawn: %q", r.commands)
	}
}
