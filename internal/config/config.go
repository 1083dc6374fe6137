package config

import (
	"errors"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
	"github.com/spf13/viper"

	"github.com/rhyrak/go-timetable/internal/scheduler"
	apperrors "github.com/rhyrak/go-timetable/pkg/errors"
	"github.com/rhyrak/go-timetable/pkg/model"
)

// EnvPrefix prefixes every environment override, e.g.
// TIMETABLE_SCHEDULING_MAX_ATTEMPTS=20.
const EnvPrefix = "TIMETABLE"

type Config struct {
	Files      FilesConfig             `mapstructure:"files"`
	Log        LogConfig               `mapstructure:"log"`
	Server     ServerConfig            `mapstructure:"server"`
	Scheduling scheduler.Configuration `mapstructure:"scheduling"`
}

type FilesConfig struct {
	Courses    string `mapstructure:"courses"`
	Classrooms string `mapstructure:"classrooms"`
	Out        string `mapstructure:"out"`
	Delimiter  string `mapstructure:"delimiter"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// Comma returns the first rune of the configured delimiter, ',' if unset.
func (f FilesConfig) Comma() rune {
	r, _ := utf8.DecodeRuneInString(f.Delimiter)
	if r == utf8.RuneError {
		return ','
	}
	return r
}

// Load reads an optional config file, .env and TIMETABLE_* environment
// variables on top of the scheduler defaults. An empty path looks for
// ./timetable.{yaml,json,toml} and ignores its absence.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("timetable")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, apperrors.Wrap(err, apperrors.CodeConfiguration, "failed to read config")
		}
	}

	cfg := &Config{}
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		clockHook(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(cfg, hook); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeConfiguration, "failed to decode config")
	}

	// viper lower-cases map keys
	slots := make(map[string]int, len(cfg.Scheduling.BasketSlots))
	for group, offset := range cfg.Scheduling.BasketSlots {
		slots[strings.ToUpper(group)] = offset
	}
	cfg.Scheduling.BasketSlots = slots

	if err := cfg.Scheduling.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("files.courses", "courses.csv")
	v.SetDefault("files.classrooms", "classrooms.csv")
	v.SetDefault("files.out", "out")
	v.SetDefault("files.delimiter", ",")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("server.port", 3001)

	d := scheduler.NewDefaultConfiguration()
	v.SetDefault("scheduling.days", d.Days)
	v.SetDefault("scheduling.day_start", d.DayStart.String())
	v.SetDefault("scheduling.day_end", d.DayEnd.String())
	v.SetDefault("scheduling.slot_minutes", d.TimeSlotDuration)
	v.SetDefault("scheduling.lunch_window_start", d.LunchWindowStart.String())
	v.SetDefault("scheduling.lunch_window_end", d.LunchWindowEnd.String())
	v.SetDefault("scheduling.lunch_minutes", d.LunchDuration)
	v.SetDefault("scheduling.durations.lecture", d.Durations.Lecture)
	v.SetDefault("scheduling.durations.tutorial", d.Durations.Tutorial)
	v.SetDefault("scheduling.durations.lab", d.Durations.Lab)
	v.SetDefault("scheduling.durations.self_study", d.Durations.SelfStudy)
	v.SetDefault("scheduling.basket_slots", d.BasketSlots)
	v.SetDefault("scheduling.max_attempts", d.MaxAttempts)
	v.SetDefault("scheduling.base_seed", d.BaseSeed)
	v.SetDefault("scheduling.parallel", d.Parallel)
	v.SetDefault("scheduling.max_workers", d.MaxWorkers)
	v.SetDefault("scheduling.large_room_threshold", d.LargeRoomThreshold)
	v.SetDefault("scheduling.default_capacity", d.DefaultCapacity)
	v.SetDefault("scheduling.max_section_size", d.MaxSectionSize)
	v.SetDefault("scheduling.default_enrollment", d.DefaultEnrollment)
	v.SetDefault("scheduling.max_suggestions", d.MaxSuggestions)
	v.SetDefault("scheduling.priority_order", lo.Map(d.PriorityOrder, func(p model.CoursePriority, _ int) string {
		return string(p)
	}))
}

// clockHook decodes "HH:MM" strings into model.Clock.
func clockHook() mapstructure.DecodeHookFuncType {
	clockType := reflect.TypeOf(model.Clock(0))
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to != clockType || from.Kind() != reflect.String {
			return data, nil
		}
		return model.ParseClock(data.(string))
	}
}
