package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
)

// EnvPrefix префикс переменных окружения, переопределяющих файл конфигурации
// Например: SLOTS_DATABASE_PASSWORD, SLOTS_AUTH_JWT_SECRET
const EnvPrefix = "SLOTS"

var (
	// ErrReadConfig ошибка чтения или разбора файла конфигурации
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrEnvOverride ошибка применения переменных окружения
	ErrEnvOverride = errors.New("config: failed to apply environment overrides")

	// ErrInvalidConfig конфигурация не прошла валидацию
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Auth     AuthConfig     `toml:"auth"`
	Booking  BookingConfig  `toml:"booking"`
	Sweeper  SweeperConfig  `toml:"sweeper"`
	Events   EventsConfig   `toml:"events"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
	RequestTimeout  int `toml:"request_timeout" split_words:"true"`
}

// DatabaseConfig настройки хранилища
// driver = "postgres" использует host/port/...; driver = "sqlite" - только path
type DatabaseConfig struct {
	Driver          string `toml:"driver"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	Path            string `toml:"path"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"`
	BusyTimeoutMs   int    `toml:"busy_timeout_ms" split_words:"true"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

// AuthConfig проверка JWT токенов, выпущенных внешним сервисом авторизации
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret" envconfig:"jwt_secret"`
}

// BookingConfig настройки бронирования, которыми заполняется БД при первом запуске
type BookingConfig struct {
	HorizonDays         int      `toml:"horizon_days" split_words:"true"`
	ForbiddenWeekdays   []string `toml:"forbidden_weekdays" split_words:"true"`
	TimezoneOffsetHours *int     `toml:"timezone_offset_hours" split_words:"true"`
	Categories          []string `toml:"categories"`
}

// SweeperConfig фоновая пометка просроченных бронирований
type SweeperConfig struct {
	Enabled         bool `toml:"enabled"`
	IntervalMinutes int  `toml:"interval_minutes" split_words:"true"`
	RunTimeout      int  `toml:"run_timeout" split_words:"true"`
}

// EventsConfig публикация событий бронирования в RabbitMQ
type EventsConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

// Load читает TOML файл, применяет переменные окружения и значения по умолчанию
// Пустой path означает конфигурацию только из окружения
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
		}
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnvOverride, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}
	if c.Server.RequestTimeout == 0 {
		c.Server.RequestTimeout = 5
	}

	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.Path == "" {
		c.Database.Path = "slots.db"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Database.BusyTimeoutMs == 0 {
		c.Database.BusyTimeoutMs = 5000
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "slot_booking_service"
	}

	if c.Booking.HorizonDays == 0 {
		c.Booking.HorizonDays = domain.DefaultHorizonDays
	}
	if c.Booking.ForbiddenWeekdays == nil {
		c.Booking.ForbiddenWeekdays = domain.WeekdayNames(domain.DefaultForbiddenWeekdays)
	}
	if c.Booking.TimezoneOffsetHours == nil {
		offset := domain.DefaultTimezoneOffsetHours
		c.Booking.TimezoneOffsetHours = &offset
	}
	if len(c.Booking.Categories) == 0 {
		c.Booking.Categories = append([]string(nil), domain.DefaultCategories...)
	}

	if c.Sweeper.IntervalMinutes == 0 {
		c.Sweeper.IntervalMinutes = 30
	}
	if c.Sweeper.RunTimeout == 0 {
		c.Sweeper.RunTimeout = 60
	}

	if c.Events.Exchange == "" {
		c.Events.Exchange = "booking.events"
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres":
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required for postgres", ErrInvalidConfig)
		}
	case "sqlite":
	default:
		return fmt.Errorf("%w: unsupported database.driver %q", ErrInvalidConfig, c.Database.Driver)
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth.jwt_secret is required", ErrInvalidConfig)
	}

	if _, err := c.Booking.Settings(); err != nil {
		return err
	}

	if c.Events.Enabled && c.Events.URL == "" {
		return fmt.Errorf("%w: events.url is required when events are enabled", ErrInvalidConfig)
	}

	return nil
}

// Settings настройки бронирования для первичного заполнения БД
func (b BookingConfig) Settings() (domain.BookingSettings, error) {
	if b.HorizonDays < domain.MinHorizonDays || b.HorizonDays > domain.MaxHorizonDays {
		return domain.BookingSettings{}, fmt.Errorf("%w: booking.horizon_days must be within %d..%d",
			ErrInvalidConfig, domain.MinHorizonDays, domain.MaxHorizonDays)
	}
	offset := domain.DefaultTimezoneOffsetHours
	if b.TimezoneOffsetHours != nil {
		offset = *b.TimezoneOffsetHours
	}
	if offset < domain.MinTimezoneOffsetHours || offset > domain.MaxTimezoneOffsetHours {
		return domain.BookingSettings{}, fmt.Errorf("%w: booking.timezone_offset_hours must be within %d..%d",
			ErrInvalidConfig, domain.MinTimezoneOffsetHours, domain.MaxTimezoneOffsetHours)
	}

	weekdays := make([]time.Weekday, 0, len(b.ForbiddenWeekdays))
	for _, name := range b.ForbiddenWeekdays {
		d, err := domain.ParseWeekday(name)
		if err != nil {
			return domain.BookingSettings{}, fmt.Errorf("%w: booking.forbidden_weekdays: %v", ErrInvalidConfig, err)
		}
		weekdays = append(weekdays, d)
	}

	return domain.BookingSettings{
		HorizonDays:         b.HorizonDays,
		ForbiddenWeekdays:   weekdays,
		TimezoneOffsetHours: offset,
		Categories:          append([]string(nil), b.Categories...),
	}, nil
}

// RequestTimeoutDuration дедлайн обработки одного HTTP запроса
func (s ServerConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(s.RequestTimeout) * time.Second
}
