// Package calendar decides whether the equity market is open. It is pure local
// computation over a configured session and a holiday list.
package calendar

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/MikeRez0/pointsweep/internal/adapter/config"
	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

//go:embed holidays.yaml
var defaultHolidays []byte

type holidayFile struct {
	Holidays    []string `yaml:"holidays"`
	EarlyCloses []struct {
		Date  string `yaml:"date"`
		Close string `yaml:"close"`
	} `yaml:"early_closes"`
}

type MarketCalendar struct {
	loc         *time.Location
	open        int
	close       int
	holidays    map[string]struct{}
	earlyCloses map[string]int
}

func NewMarketCalendar(cfg *config.Calendar) (*MarketCalendar, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("market timezone: %w", err)
	}
	open, err := parseClock(cfg.Open)
	if err != nil {
		return nil, fmt.Errorf("market open: %w", err)
	}
	closeAt, err := parseClock(cfg.Close)
	if err != nil {
		return nil, fmt.Errorf("market close: %w", err)
	}
	if closeAt <= open {
		return nil, fmt.Errorf("market close %s is not after open %s", cfg.Close, cfg.Open)
	}

	data := defaultHolidays
	if cfg.HolidaysFile != "" {
		data, err = os.ReadFile(cfg.HolidaysFile)
		if err != nil {
			return nil, fmt.Errorf("read holidays file: %w", err)
		}
	}

	c := &MarketCalendar{
		loc:         loc,
		open:        open,
		close:       closeAt,
		holidays:    make(map[string]struct{}),
		earlyCloses: make(map[string]int),
	}
	if err := c.load(data); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *MarketCalendar) load(data []byte) error {
	var f holidayFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse holidays: %w", err)
	}
	for _, d := range f.Holidays {
		if _, err := time.Parse(dateLayout, d); err != nil {
			return fmt.Errorf("holiday %q: %w", d, err)
		}
		c.holidays[d] = struct{}{}
	}
	for _, e := range f.EarlyCloses {
		if _, err := time.Parse(dateLayout, e.Date); err != nil {
			return fmt.Errorf("early close %q: %w", e.Date, err)
		}
		m, err := parseClock(e.Close)
		if err != nil {
			return fmt.Errorf("early close %q: %w", e.Date, err)
		}
		c.earlyCloses[e.Date] = m
	}
	return nil
}

// parseClock turns HH:MM into minutes after midnight.
func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func (c *MarketCalendar) tradingDay(t time.Time) bool {
	if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}
	_, holiday := c.holidays[t.Format(dateLayout)]
	return !holiday
}

func (c *MarketCalendar) closeFor(t time.Time) int {
	if m, ok := c.earlyCloses[t.Format(dateLayout)]; ok {
		return m
	}
	return c.close
}

func (c *MarketCalendar) IsOpen(now time.Time) bool {
	t := now.In(c.loc)
	if !c.tradingDay(t) {
		return false
	}
	m := t.Hour()*60 + t.Minute()
	return m >= c.open && m < c.closeFor(t)
}

// NextOpen returns the start of the first session strictly after now.
func (c *MarketCalendar) NextOpen(now time.Time) time.Time {
	t := now.In(c.loc)
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.loc)
	for i := 0; i < 366; i++ {
		d := day.AddDate(0, 0, i)
		start := time.Date(d.Year(), d.Month(), d.Day(), c.open/60, c.open%60, 0, 0, c.loc)
		if c.tradingDay(d) && start.After(now) {
			return start
		}
	}
	return time.Date(t.Year()+1, t.Month(), t.Day(), c.open/60, c.open%60, 0, 0, c.loc)
}
