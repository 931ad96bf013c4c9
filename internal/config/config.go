package config

import (
	"os"
	"strings"
	"time"

	"codeberg.org/mutker/windsensor/internal/errors"
	"codeberg.org/mutker/windsensor/internal/logger"
	"codeberg.org/mutker/windsensor/internal/report"
	"codeberg.org/mutker/windsensor/internal/temperature"
	"codeberg.org/mutker/windsensor/internal/wind"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultLogLevel = "info"

	configName = "windsensor"
	configEnv  = "WINDSENSOR_CONFIG"
	envPrefix  = "WINDSENSOR"

	maxChannel = 7
)

type WindConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Pin      string        `mapstructure:"pin"`
	LEDPin   string        `mapstructure:"led_pin"`
	Debounce time.Duration `mapstructure:"debounce"`
	Interval time.Duration `mapstructure:"interval"`
}

type TemperatureConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	SPIPort  string        `mapstructure:"spi_port"`
	Channel  int           `mapstructure:"channel"`
	Interval time.Duration `mapstructure:"interval"`
	Window   int           `mapstructure:"window"`
}

type ReportConfig struct {
	Transport  string        `mapstructure:"transport"`
	URL        string        `mapstructure:"url"`
	Username   string        `mapstructure:"username"`
	Password   string        `mapstructure:"password"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MQTTBroker string        `mapstructure:"mqtt_broker"`
	MQTTTopic  string        `mapstructure:"mqtt_topic"`
}

type DisplayConfig struct {
	Listen string `mapstructure:"listen"`
}

type Config struct {
	LogLevel    string            `mapstructure:"log_level"`
	Wind        WindConfig        `mapstructure:"wind"`
	Temperature TemperatureConfig `mapstructure:"temperature"`
	Report      ReportConfig      `mapstructure:"report"`
	Display     DisplayConfig     `mapstructure:"display"`
}

var defaults = map[string]any{
	"log_level":            DefaultLogLevel,
	"wind.enabled":         true,
	"wind.pin":             "GPIO5",
	"wind.led_pin":         "GPIO6",
	"wind.debounce":        10 * time.Millisecond,
	"wind.interval":        wind.DefaultInterval,
	"temperature.enabled":  true,
	"temperature.spi_port": "SPI0.0",
	"temperature.channel":  temperature.DefaultChannel,
	"temperature.interval": temperature.DefaultInterval,
	"temperature.window":   temperature.DefaultWindow,
	"report.transport":     report.TransportHTTP,
	"report.url":           report.DefaultConfig().URL,
	"report.username":      "",
	"report.password":      "",
	"report.timeout":       report.DefaultConfig().Timeout,
	"report.mqtt_broker":   report.DefaultConfig().MQTTBroker,
	"report.mqtt_topic":    report.DefaultConfig().MQTTTopic,
	"display.listen":       "",
}

// flag name -> config key
var flagKeys = map[string]string{
	"log-level":        "log_level",
	"wind-pin":         "wind.pin",
	"temperature-spi":  "temperature.spi_port",
	"report-transport": "report.transport",
	"report-url":       "report.url",
	"display-listen":   "display.listen",
}

// Load reads the configuration from defaults, the TOML file, WINDSENSOR_*
// environment variables and the given command-line arguments, in increasing
// order of precedence.
func Load(args []string) (*Config, error) {
	errFactory := errors.New()
	v := viper.New()

	flags := pflag.NewFlagSet(configName, pflag.ContinueOnError)
	configFile := flags.String("config", "", "Path to config file")
	flags.String("log-level", DefaultLogLevel, "Log level (debug, info, warning, error)")
	flags.String("wind-pin", "GPIO5", "Anemometer input pin")
	flags.String("temperature-spi", "SPI0.0", "SPI port of the temperature ADC")
	flags.String("report-transport", report.TransportHTTP, "Report transport (http, mqtt, none)")
	flags.String("report-url", report.DefaultConfig().URL, "HTTP report endpoint")
	flags.String("display-listen", "", "Address of the websocket status display, empty disables it")

	if err := flags.Parse(args); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	for name, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return nil, errFactory.Wrap(errors.ErrBindFlags, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigType("toml")
	switch path := configPath(*configFile); path {
	case "":
		v.SetConfigName(configName)
		v.AddConfigPath("/etc")
		v.AddConfigPath(".")
	default:
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
		logger.Debug().Msg("No config file found, using defaults")
	} else {
		logger.Debug().Str("file", v.ConfigFileUsed()).Msg("Config file loaded")
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func configPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}

	return os.Getenv(configEnv)
}

// Validate checks value ranges that the samplers rely on.
func (c *Config) Validate() error {
	errFactory := errors.New()

	if _, ok := logger.ParseLevel(c.LogLevel); !ok {
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}

	if c.Wind.Enabled {
		if c.Wind.Interval <= 0 {
			return errFactory.WithData(errors.ErrInvalidInterval, "wind.interval must be positive")
		}
		if c.Wind.Debounce < 0 {
			return errFactory.WithData(errors.ErrInvalidInterval, "wind.debounce must not be negative")
		}
		if c.Wind.Pin == "" {
			return errFactory.WithData(errors.ErrInvalidConfig, "wind.pin is required")
		}
	}

	if c.Temperature.Enabled {
		if c.Temperature.Interval <= 0 {
			return errFactory.WithData(errors.ErrInvalidInterval, "temperature.interval must be positive")
		}
		if c.Temperature.Window < 1 {
			return errFactory.WithData(errors.ErrInvalidConfig, "temperature.window must be at least 1")
		}
		if c.Temperature.Channel < 0 || c.Temperature.Channel > maxChannel {
			return errFactory.WithData(errors.ErrInvalidConfig, "temperature.channel must be between 0 and 7")
		}
		if c.Temperature.SPIPort == "" {
			return errFactory.WithData(errors.ErrInvalidConfig, "temperature.spi_port is required")
		}
	}

	if err := c.ReportConfig().Validate(); err != nil {
		if errors.HasCode(err, errors.ErrInvalidInterval) {
			return err
		}
		return errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	return nil
}

// ReportConfig converts the report section for report.New.
func (c *Config) ReportConfig() report.Config {
	return report.Config{
		Transport:  c.Report.Transport,
		URL:        c.Report.URL,
		Username:   c.Report.Username,
		Password:   c.Report.Password,
		Timeout:    c.Report.Timeout,
		MQTTBroker: c.Report.MQTTBroker,
		MQTTTopic:  c.Report.MQTTTopic,
	}
}
