package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`
	GinMode    string `mapstructure:"GIN_MODE"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`

	// Business calendar
	BusinessTimezone    string        `mapstructure:"BUSINESS_TIMEZONE"`
	WorkStartHour       int           `mapstructure:"WORK_START_HOUR"`
	WorkEndHour         int           `mapstructure:"WORK_END_HOUR"`
	SlotMinutes         int           `mapstructure:"SLOT_MINUTES"`
	AvailabilityTimeout time.Duration `mapstructure:"AVAILABILITY_TIMEOUT"`
	ReservationTimeout  time.Duration `mapstructure:"RESERVATION_TIMEOUT"`

	GoogleCalendarID      string `mapstructure:"GOOGLE_CALENDAR_ID"`
	GoogleCredentialsFile string `mapstructure:"GOOGLE_CREDENTIALS_FILE"`

	// Booking sessions
	SessionSecret     string        `mapstructure:"SESSION_SECRET"`
	SessionTTL        time.Duration `mapstructure:"SESSION_TTL"`
	VerifyEmailDomain bool          `mapstructure:"VERIFY_EMAIL_DOMAIN"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	// Optional; enables the database audit trail.
	DBUrl string `mapstructure:"DATABASE_URL"`

	// Media feed
	InstagramAccessToken string        `mapstructure:"INSTAGRAM_ACCESS_TOKEN"`
	InstagramAPIBase     string        `mapstructure:"INSTAGRAM_API_BASE"`
	MediaLimit           int           `mapstructure:"MEDIA_LIMIT"`
	MediaCacheTTL        time.Duration `mapstructure:"MEDIA_CACHE_TTL"`

	// Gallery
	GalleryBucket   string `mapstructure:"GALLERY_BUCKET"`
	GalleryPrefix   string `mapstructure:"GALLERY_PREFIX"`
	GalleryRegion   string `mapstructure:"GALLERY_REGION"`
	GalleryEndpoint string `mapstructure:"GALLERY_ENDPOINT"`
	AWSAccessKeyID  string `mapstructure:"AWS_ACCESS_KEY_ID"`
	AWSSecretKey    string `mapstructure:"AWS_SECRET_ACCESS_KEY"`

	RateLimitPerMinute int    `mapstructure:"RATE_LIMIT_PER_MINUTE"`
	CORSOrigins        string `mapstructure:"CORS_ORIGINS"`
}

var defaults = map[string]any{
	"SERVER_PORT": "8080",
	"GIN_MODE":    "debug",
	"LOG_LEVEL":   "info",

	"BUSINESS_TIMEZONE":    "America/New_York",
	"WORK_START_HOUR":      9,
	"WORK_END_HOUR":        17,
	"SLOT_MINUTES":         60,
	"AVAILABILITY_TIMEOUT": "10s",
	"RESERVATION_TIMEOUT":  "15s",

	"GOOGLE_CALENDAR_ID":      "",
	"GOOGLE_CREDENTIALS_FILE": "",

	"SESSION_SECRET":      "changeme",
	"SESSION_TTL":         "30m",
	"VERIFY_EMAIL_DOMAIN": false,

	"REDIS_ADDR":     "",
	"REDIS_PASSWORD": "",
	"REDIS_DB":       0,

	"DATABASE_URL": "",

	"INSTAGRAM_ACCESS_TOKEN": "",
	"INSTAGRAM_API_BASE":     "https://graph.instagram.com",
	"MEDIA_LIMIT":            12,
	"MEDIA_CACHE_TTL":        "15m",

	"GALLERY_BUCKET":        "",
	"GALLERY_PREFIX":        "gallery/",
	"GALLERY_REGION":        "us-east-1",
	"GALLERY_ENDPOINT":      "",
	"AWS_ACCESS_KEY_ID":     "",
	"AWS_SECRET_ACCESS_KEY": "",

	"RATE_LIMIT_PER_MINUTE": 120,
	"CORS_ORIGINS":          "*",
}

// Load reads .env (when present) and the environment on top of defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: GIN_MODE must be debug, release or test")
	}
	if c.WorkStartHour < 0 || c.WorkEndHour > 23 || c.WorkStartHour > c.WorkEndHour {
		return fmt.Errorf("config: invalid working window %d-%d", c.WorkStartHour, c.WorkEndHour)
	}
	if c.SlotMinutes <= 0 {
		return fmt.Errorf("config: SLOT_MINUTES must be positive")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("config: SESSION_TTL must be positive")
	}
	if strings.TrimSpace(c.SessionSecret) == "" {
		return fmt.Errorf("config: SESSION_SECRET is required")
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func (c *Config) SlotDuration() time.Duration {
	return time.Duration(c.SlotMinutes) * time.Minute
}

func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
