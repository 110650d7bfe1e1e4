// Package config загрузка и валидация конфигурации сервиса из TOML
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/Serryudy/EAD-sub000/internal/domain"
	"github.com/Serryudy/EAD-sub000/pkg/types"
)

// Config корневая конфигурация сервиса
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	CatalogService CatalogServiceConfig `toml:"catalog_service"`
	Calendar       CalendarConfig       `toml:"calendar"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN собирает строку подключения
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// CatalogServiceConfig настройки клиента каталога услуг
type CatalogServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// CalendarConfig настройки бизнес-календаря (дефолт, может быть
// переопределен персистентной конфигурацией при старте)
type CalendarConfig struct {
	OperatingDays             []int    `toml:"operating_days"` // 0 = Sunday ... 6 = Saturday
	OpenTime                  string   `toml:"open_time"`
	CloseTime                 string   `toml:"close_time"`
	LunchEnabled              bool     `toml:"lunch_enabled"`
	LunchStart                string   `toml:"lunch_start"`
	LunchEnd                  string   `toml:"lunch_end"`
	SlotDurationMinutes       int      `toml:"slot_duration_minutes"`
	MaxConcurrentAppointments int      `toml:"max_concurrent_appointments"`
	AdvanceBookingDays        int      `toml:"advance_booking_days"`
	MinimumNoticeHours        int      `toml:"minimum_notice_hours"`
	BlockedDates              []string `toml:"blocked_dates"` // YYYY-MM-DD
}

// Load читает и валидирует конфигурацию из файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("config: database.host and database.dbname are required")
	}
	if c.Calendar.SlotDurationMinutes < domain.MinSlotDurationMinutes ||
		c.Calendar.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("config: calendar.slot_duration_minutes must be in [%d, %d]",
			domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}
	if c.Calendar.MaxConcurrentAppointments < domain.MinConcurrentAppointments ||
		c.Calendar.MaxConcurrentAppointments > domain.MaxConcurrentAppointmentsCap {
		return fmt.Errorf("config: calendar.max_concurrent_appointments must be in [%d, %d]",
			domain.MinConcurrentAppointments, domain.MaxConcurrentAppointmentsCap)
	}
	if c.Calendar.AdvanceBookingDays < 0 || c.Calendar.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("config: calendar.advance_booking_days must be in [0, %d]", domain.MaxAdvanceBookingDays)
	}
	if c.Calendar.MinimumNoticeHours < 0 || c.Calendar.MinimumNoticeHours > domain.MaxMinimumNoticeHours {
		return fmt.Errorf("config: calendar.minimum_notice_hours must be in [0, %d]", domain.MaxMinimumNoticeHours)
	}

	for _, t := range []string{c.Calendar.OpenTime, c.Calendar.CloseTime} {
		if _, err := types.NewTimeStringFromString(t); err != nil {
			return fmt.Errorf("config: invalid calendar time %q: %w", t, err)
		}
	}
	if c.Calendar.LunchEnabled {
		for _, t := range []string{c.Calendar.LunchStart, c.Calendar.LunchEnd} {
			if _, err := types.NewTimeStringFromString(t); err != nil {
				return fmt.Errorf("config: invalid lunch time %q: %w", t, err)
			}
		}
	}
	for _, d := range c.Calendar.BlockedDates {
		if _, err := time.Parse(domain.DateFormat, d); err != nil {
			return fmt.Errorf("config: invalid blocked date %q: %w", d, err)
		}
	}

	return nil
}

// ToDomainCalendar конвертирует секцию calendar в доменный BusinessCalendar
func (c *CalendarConfig) ToDomainCalendar() *domain.BusinessCalendar {
	days := make(map[time.Weekday]bool, len(c.OperatingDays))
	for _, d := range c.OperatingDays {
		if d >= 0 && d <= 6 {
			days[time.Weekday(d)] = true
		}
	}

	blocked := make(map[string]bool, len(c.BlockedDates))
	for _, d := range c.BlockedDates {
		blocked[d] = true
	}

	return &domain.BusinessCalendar{
		OperatingDays: days,
		OperatingHours: domain.OperatingHours{
			Start: types.TimeString(c.OpenTime),
			End:   types.TimeString(c.CloseTime),
		},
		LunchBreak: domain.LunchBreak{
			Enabled: c.LunchEnabled,
			Start:   types.TimeString(c.LunchStart),
			End:     types.TimeString(c.LunchEnd),
		},
		SlotDurationMinutes:       c.SlotDurationMinutes,
		MaxConcurrentAppointments: c.MaxConcurrentAppointments,
		AdvanceBookingDays:        c.AdvanceBookingDays,
		MinimumNoticeHours:        c.MinimumNoticeHours,
		BlockedDates:              blocked,
	}
}
