package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	defaultBusName    = "org.gnome.Mutter.DisplayConfig"
	defaultObjectPath = "/org/gnome/Mutter/DisplayConfig"
)

// Config names the display config service the tool talks to. The defaults
// target Mutter; overriding them lets the tool point at another compositor
// exporting the same interface.
type Config struct {
	BusName    string
	ObjectPath string
}

// Load reads the optional backlightctl.yaml from the user config dir plus
// BACKLIGHTCTL_* environment variables. A missing config file is fine.
func Load() Config {
	v := viper.New()

	v.SetDefault("bus-name", defaultBusName)
	v.SetDefault("object-path", defaultObjectPath)

	v.SetEnvPrefix("BACKLIGHTCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configDir, err := os.UserConfigDir(); err == nil {
		v.SetConfigFile(filepath.Join(configDir, "backlightctl", "backlightctl.yaml"))
		v.SetConfigType("yaml")
		_ = v.ReadInConfig()
	}

	return Config{
		BusName:    v.GetString("bus-name"),
		ObjectPath: v.GetString("object-path"),
	}
}
