package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

const DefaultCalendarFeedURL = "https://calendar.google.com/calendar/ical/ilana.cunningham16%40gmail.com/public/basic.ics"

type Config struct {
	Port            string `mapstructure:"PORT"`
	Env             string `mapstructure:"ENV"`
	LogLevel        string `mapstructure:"LOG_LEVEL"`
	OpenApiLocation string `mapstructure:"OPENAPI_LOCATION"`

	// Outgoing mail
	MailServer            string `mapstructure:"MAIL_SERVER"`
	MailPort              int    `mapstructure:"MAIL_PORT"`
	MailUseTLS            bool   `mapstructure:"MAIL_USE_TLS"`
	MailUseSSL            bool   `mapstructure:"MAIL_USE_SSL"`
	MailUsername          string `mapstructure:"MAIL_USERNAME"`
	MailPassword          string `mapstructure:"MAIL_PASSWORD"`
	MailSender            string `mapstructure:"MAIL_SENDER"`
	MailProviderRecipient string `mapstructure:"MAIL_PROVIDER_RECIPIENT"`

	// Calendar feed proxy
	CalendarFeedURL     string        `mapstructure:"CALENDAR_FEED_URL"`
	CalendarTimeout     time.Duration `mapstructure:"CALENDAR_TIMEOUT"`
	CalendarTestTimeout time.Duration `mapstructure:"CALENDAR_TEST_TIMEOUT"`

	CorsAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	// Peers allowed to set X-Forwarded-For, none by default
	TrustedProxies []string `mapstructure:"TRUSTED_PROXIES"`

	// Booking submission throttle, disabled while ThrottleLimit is 0
	ThrottleRedisURI string        `mapstructure:"THROTTLE_REDIS_URI"`
	ThrottleLimit    int           `mapstructure:"THROTTLE_LIMIT"`
	ThrottleWindow   time.Duration `mapstructure:"THROTTLE_WINDOW"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("OPENAPI_LOCATION", "./api/openapi.json")

	v.SetDefault("MAIL_SERVER", "smtp.gmail.com")
	v.SetDefault("MAIL_PORT", 587)
	v.SetDefault("MAIL_USE_TLS", true)
	v.SetDefault("MAIL_USE_SSL", false)
	v.SetDefault("MAIL_USERNAME", "")
	v.SetDefault("MAIL_PASSWORD", "")
	v.SetDefault("MAIL_SENDER", "noreply@ilanacares.com")
	v.SetDefault("MAIL_PROVIDER_RECIPIENT", "Ilana.cunningham16@gmail.com")

	v.SetDefault("CALENDAR_FEED_URL", DefaultCalendarFeedURL)
	v.SetDefault("CALENDAR_TIMEOUT", 30*time.Second)
	v.SetDefault("CALENDAR_TEST_TIMEOUT", 10*time.Second)

	v.SetDefault("CORS_ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("TRUSTED_PROXIES", []string{})

	v.SetDefault("THROTTLE_REDIS_URI", "")
	v.SetDefault("THROTTLE_LIMIT", 0)
	v.SetDefault("THROTTLE_WINDOW", time.Minute)
}

// Load reads the configuration from the environment and from an optional
// config.yaml found in one of the given paths.
func Load(paths ...string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	v.AutomaticEnv()
	setDefaults(v)

	if len(paths) > 0 {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) ThrottleEnabled() bool {
	return c.ThrottleLimit > 0
}
