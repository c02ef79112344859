package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"tripfeat/filters"
	"tripfeat/temporal"
)

const holidayDateLayout = "2006-01-02"

// HourWindow is the yaml shape of a rush-hour window. Boundary hours are
// excluded, matching temporal.HourWindow.
type HourWindow struct {
	After  int `yaml:"after"`
	Before int `yaml:"before"`
}

// PipelineConfig struct that contains the tunable constants of the pipeline
// + DurationQuantile: quantile of trip duration used as the outlier cut
// + SpeedMinKmh / SpeedMaxKmh: exclusive cut lines of the speed filter
// + WeekdayRushWindows / WeekendRushWindows: rush-hour windows per day kind
// + Holidays: holiday dates (YYYY-MM-DD) bounding the valid operating period
// + Timezone: IANA zone the holiday dates are interpreted in
// + Workers: goroutines for per-row stages; 0 means one per CPU
type PipelineConfig struct {
	DurationQuantile   float64      `yaml:"duration_quantile"`
	SpeedMinKmh        float64      `yaml:"speed_min_kmh"`
	SpeedMaxKmh        float64      `yaml:"speed_max_kmh"`
	WeekdayRushWindows []HourWindow `yaml:"weekday_rush_windows"`
	WeekendRushWindows []HourWindow `yaml:"weekend_rush_windows"`
	Holidays           []string     `yaml:"holidays"`
	Timezone           string       `yaml:"timezone"`
	Workers            int          `yaml:"workers"`
}

// Default returns the configuration calibrated for the NYC January-June 2016
// dataset window.
func Default() *PipelineConfig {
	return &PipelineConfig{
		DurationQuantile:   0.99,
		SpeedMinKmh:        1,
		SpeedMaxKmh:        100,
		WeekdayRushWindows: []HourWindow{{After: 7, Before: 11}, {After: 17, Before: 22}},
		WeekendRushWindows: []HourWindow{{After: 17, Before: 22}},
		Holidays: []string{
			"2016-01-01", // New Year's Day
			"2016-01-18", // MLK Day
			"2016-02-12", // Lincoln's Birthday
			"2016-02-15", // Presidents' Day
			"2016-05-30", // Memorial Day
		},
		Timezone: "America/New_York",
	}
}

// LoadConfig reads a yaml file and unmarshals it over the defaults, so a
// partial file only overrides what it names.
func LoadConfig(configFilepath string) (*PipelineConfig, error) {
	configFile, err := os.ReadFile(configFilepath)
	if err != nil {
		return nil, fmt.Errorf("error reading pipeline config file: %w", err)
	}

	pipelineConfig := Default()
	err = yaml.Unmarshal(configFile, pipelineConfig)
	if err != nil {
		return nil, fmt.Errorf("error parsing pipeline config file: %w", err)
	}

	return pipelineConfig, nil
}

func (c *PipelineConfig) Validate() error {
	if c.DurationQuantile <= 0 || c.DurationQuantile > 1 {
		return fmt.Errorf("duration_quantile %v outside (0, 1]", c.DurationQuantile)
	}
	if c.SpeedMinKmh < 0 || c.SpeedMaxKmh <= c.SpeedMinKmh {
		return fmt.Errorf("speed bounds (%v, %v) are not an increasing non-negative pair", c.SpeedMinKmh, c.SpeedMaxKmh)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	if _, err := c.location(); err != nil {
		return err
	}
	return nil
}

// Calendar builds the temporal calendar from the configured holidays and
// rush-hour windows.
func (c *PipelineConfig) Calendar() (temporal.Calendar, error) {
	location, err := c.location()
	if err != nil {
		return temporal.Calendar{}, err
	}

	holidays := make([]time.Time, 0, len(c.Holidays))
	for _, raw := range c.Holidays {
		day, err := time.ParseInLocation(holidayDateLayout, raw, location)
		if err != nil {
			return temporal.Calendar{}, fmt.Errorf("error parsing holiday %q: %w", raw, err)
		}
		holidays = append(holidays, day)
	}

	return temporal.NewCalendar(
		holidays,
		toHourWindows(c.WeekdayRushWindows),
		toHourWindows(c.WeekendRushWindows),
	), nil
}

func (c *PipelineConfig) SpeedBounds() filters.SpeedBounds {
	return filters.SpeedBounds{Min: c.SpeedMinKmh, Max: c.SpeedMaxKmh}
}

func (c *PipelineConfig) location() (*time.Location, error) {
	location, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("error loading timezone %q: %w", c.Timezone, err)
	}
	return location, nil
}

func toHourWindows(windows []HourWindow) []temporal.HourWindow {
	out := make([]temporal.HourWindow, len(windows))
	for i, w := range windows {
		out[i] = temporal.HourWindow{After: w.After, Before: w.Before}
	}
	return out
}
