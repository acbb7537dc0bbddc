package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atomicstack/evenhub-control/internal/sim"
	"github.com/spf13/viper"
)

// LoadProfile reads the simulated device profile. An empty path looks for
// profile.toml under the user config directory and falls back to defaults
// when none exists; an explicit path must be readable. Env var overrides use
// prefix EVENHUB_CONTROL_, e.g. EVENHUB_CONTROL_DEVICE_BATTERY.
func LoadProfile(path string) (sim.Profile, sim.Faults, error) {
	v := viper.New()

	def := sim.DefaultProfile()
	v.SetDefault("device.model", def.Model)
	v.SetDefault("device.serial", def.Serial)
	v.SetDefault("device.battery", def.Battery)
	v.SetDefault("device.wearing", def.Wearing)
	v.SetDefault("device.paired", def.Paired)
	v.SetDefault("user.name", def.User.Name)
	v.SetDefault("user.uid", def.User.UID)
	v.SetDefault("user.country", def.User.Country)
	v.SetDefault("faults.connect", false)
	v.SetDefault("faults.user_info", false)
	v.SetDefault("faults.device_info", false)
	v.SetDefault("faults.page", false)
	v.SetDefault("faults.update", false)
	v.SetDefault("faults.page_result", 0)

	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "evenhub-control"))
		v.SetConfigName("profile")
	}

	v.SetEnvPrefix("EVENHUB_CONTROL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil && path != "" {
		return sim.Profile{}, sim.Faults{}, fmt.Errorf("read profile %s: %w", path, err)
	}

	profile := sim.Profile{
		Model:   v.GetString("device.model"),
		Serial:  v.GetString("device.serial"),
		Battery: v.GetInt("device.battery"),
		Wearing: v.GetBool("device.wearing"),
		Paired:  v.GetBool("device.paired"),
	}
	profile.User.Name = v.GetString("user.name")
	profile.User.UID = v.GetInt("user.uid")
	profile.User.Country = v.GetString("user.country")

	faults := sim.Faults{
		Connect:    v.GetBool("faults.connect"),
		UserInfo:   v.GetBool("faults.user_info"),
		DeviceInfo: v.GetBool("faults.device_info"),
		Page:       v.GetBool("faults.page"),
		Update:     v.GetBool("faults.update"),
		PageResult: v.GetInt("faults.page_result"),
	}
	return profile, faults, nil
}
