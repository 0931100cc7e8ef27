package config

import (
	"errors"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	LogLevel    string
	WindowStart string
	WindowEnd   string
	Offset      string
	Add         []string
	Remove      []string
	Weekly      []string
	Check       []string
}

// Load reads configuration from command-line flags and the environment.
// Flags win over AVAILABILITY_* variables, which win over defaults.
func Load(args []string) (Config, error) {
	fs := pflag.NewFlagSet("availability", pflag.ContinueOnError)
	fs.String("log-level", "info", "log level: debug, info, warn, error")
	fs.String("window-start", "", "schedule window start (ISO-8601)")
	fs.String("window-end", "", "schedule window end (ISO-8601)")
	fs.String("offset", "+00:00", "output offset, bare or as a full timestamp")
	fs.StringArray("add", nil, "available range start/end (repeatable)")
	fs.StringArray("remove", nil, "booked range start/end to subtract (repeatable)")
	fs.StringArray("weekly", nil, "weekly range start/end@weekdays, e.g. ...@1,3,5 (repeatable)")
	fs.StringArray("check", nil, "range start/end to test for availability (repeatable)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetEnvPrefix("AVAILABILITY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("log.level", "info")
	v.SetDefault("query.offset", "+00:00")

	_ = v.BindEnv("log.level", "AVAILABILITY_LOG_LEVEL", "LOG_LEVEL")
	_ = v.BindEnv("window.start", "AVAILABILITY_WINDOW_START")
	_ = v.BindEnv("window.end", "AVAILABILITY_WINDOW_END")
	_ = v.BindEnv("query.offset", "AVAILABILITY_OFFSET")
	_ = v.BindEnv("add", "AVAILABILITY_ADD")
	_ = v.BindEnv("remove", "AVAILABILITY_REMOVE")
	_ = v.BindEnv("weekly", "AVAILABILITY_WEEKLY")
	_ = v.BindEnv("check", "AVAILABILITY_CHECK")

	_ = v.BindPFlag("log.level", fs.Lookup("log-level"))
	_ = v.BindPFlag("window.start", fs.Lookup("window-start"))
	_ = v.BindPFlag("window.end", fs.Lookup("window-end"))
	_ = v.BindPFlag("query.offset", fs.Lookup("offset"))
	_ = v.BindPFlag("add", fs.Lookup("add"))
	_ = v.BindPFlag("remove", fs.Lookup("remove"))
	_ = v.BindPFlag("weekly", fs.Lookup("weekly"))
	_ = v.BindPFlag("check", fs.Lookup("check"))

	cfg := Config{
		LogLevel:    v.GetString("log.level"),
		WindowStart: strings.TrimSpace(v.GetString("window.start")),
		WindowEnd:   strings.TrimSpace(v.GetString("window.end")),
		Offset:      strings.TrimSpace(v.GetString("query.offset")),
		Add:         v.GetStringSlice("add"),
		Remove:      v.GetStringSlice("remove"),
		Weekly:      v.GetStringSlice("weekly"),
		Check:       v.GetStringSlice("check"),
	}

	if cfg.WindowStart == "" || cfg.WindowEnd == "" {
		return Config{}, errors.New("window start and window end are required")
	}

	return cfg, nil
}
