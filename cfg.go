package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	defaultCfgDir  = "hypr"
	defaultCfgFile = "hyprdock.toml"

	// defaultSettleDelayMS is how long the display backend gets to finish a
	// mode switch before dependent processes are restarted.
	defaultSettleDelayMS = 1000

	monitorNamePlaceholder = "{monitor_name}"
)

// config holds the internal monitor name and every command line hyprdock
// spawns. It is loaded once at startup and never mutated afterwards.
type config struct {
	MonitorName string `toml:"monitor_name"`

	OpenBarCommand   string `toml:"open_bar_command"`
	CloseBarCommand  string `toml:"close_bar_command"`
	ReloadBarCommand string `toml:"reload_bar_command"`

	SuspendCommand string `toml:"suspend_command"`
	LockCommand    string `toml:"lock_command"`
	UtilityCommand string `toml:"utility_command"`

	GetMonitorsCommand     string `toml:"get_monitors_command"`
	EnableInternalCommand  string `toml:"enable_internal_monitor_command"`
	DisableInternalCommand string `toml:"disable_internal_monitor_command"`
	EnableExternalCommand  string `toml:"enable_external_monitor_command"`
	DisableExternalCommand string `toml:"disable_external_monitor_command"`
	ExtendCommand          string `toml:"extend_command"`
	MirrorCommand          string `toml:"mirror_command"`
	WallpaperCommand       string `toml:"wallpaper_command"`

	SettleDelayMS int `toml:"settle_delay_ms"`
}

func defaultConfig() *config {
	return &config{
		MonitorName:            "eDP-1",
		OpenBarCommand:         "eww open bar",
		CloseBarCommand:        "eww close-all",
		ReloadBarCommand:       "eww reload",
		SuspendCommand:         "systemctl suspend",
		LockCommand:            "swaylock -c 000000",
		UtilityCommand:         "playerctl --all-players -a pause",
		GetMonitorsCommand:     "hyprctl monitors",
		EnableInternalCommand:  "hyprctl keyword monitor {monitor_name},highrr,0x0,1",
		DisableInternalCommand: "hyprctl keyword monitor {monitor_name},disabled",
		EnableExternalCommand:  "hyprctl keyword monitor ,highrr,0x0,1",
		DisableExternalCommand: "hyprctl keyword monitor ,disabled",
		ExtendCommand:          "hyprctl keyword monitor ,highrr,1920x0,1",
		MirrorCommand:          "hyprctl keyword monitor ,highrr,0x0,1",
		WallpaperCommand:       "hyprctl dispatch hyprpaper",
		SettleDelayMS:          defaultSettleDelayMS,
	}
}

func defaultConfigPath() (string, error) {
	cd, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("getting user config directory: %w", err)
	}
	return filepath.Join(cd, defaultCfgDir, defaultCfgFile), nil
}

// loadConfig reads the TOML config at path. A missing file falls back to the
// built-in defaults; a file that exists but cannot be decoded is an error.
func loadConfig(path string) (*config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg.expandTemplates()
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if cfg.SettleDelayMS <= 0 {
		cfg.SettleDelayMS = defaultSettleDelayMS
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.expandTemplates()
	return cfg, nil
}

func (c *config) validate() error {
	var missing []string
	for _, f := range c.fields() {
		if strings.TrimSpace(*f.val) == "" {
			missing = append(missing, f.name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required config fields: %s", strings.Join(missing, ", "))
	}

	return nil
}

// expandTemplates substitutes {monitor_name} in every command field.
func (c *config) expandTemplates() {
	for _, f := range c.fields() {
		if f.name == "monitor_name" {
			continue
		}
		*f.val = strings.ReplaceAll(*f.val, monitorNamePlaceholder, c.MonitorName)
	}
}

type cfgField struct {
	name string
	val  *string
}

func (c *config) fields() []cfgField {
	return []cfgField{
		{"monitor_name", &c.MonitorName},
		{"open_bar_command", &c.OpenBarCommand},
		{"close_bar_command", &c.CloseBarCommand},
		{"reload_bar_command", &c.ReloadBarCommand},
		{"suspend_command", &c.SuspendCommand},
		{"lock_command", &c.LockCommand},
		{"utility_command", &c.UtilityCommand},
		{"get_monitors_command", &c.GetMonitorsCommand},
		{"enable_internal_monitor_command", &c.EnableInternalCommand},
		{"disable_internal_monitor_command", &c.DisableInternalCommand},
		{"enable_external_monitor_command", &c.EnableExternalCommand},
		{"disable_external_monitor_command", &c.DisableExternalCommand},
		{"extend_command", &c.ExtendCommand},
		{"mirror_command", &c.MirrorCommand},
		{"wallpaper_command", &c.WallpaperCommand},
	}
}
