package service

import (
	"fmt"
	"time"

	"studyaid/internal/config"
)

const (
	GreetingModeTime    = "time"
	GreetingModeTagline = "tagline"
)

var greetingDecorations = [4]string{"✨", "🎧", "🚀", "🌈"}

// GreetingService produces the banner text shown at the top of the page
type GreetingService struct {
	mode     string
	tagline  string
	location *time.Location
	now      func() time.Time
}

// NewGreetingService creates a greeting service from config
func NewGreetingService(cfg config.GreetingConfig) (*GreetingService, error) {
	loc, err := time.LoadLocation(cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("invalid greeting location %q: %w", cfg.Location, err)
	}
	mode := cfg.Mode
	if mode == "" {
		mode = GreetingModeTime
	}
	return &GreetingService{
		mode:     mode,
		tagline:  cfg.Tagline,
		location: loc,
		now:      time.Now,
	}, nil
}

// Render returns the greeting for the current time
func (s *GreetingService) Render() string {
	return s.At(s.now())
}

// At returns the greeting for t, evaluated in the configured location
func (s *GreetingService) At(t time.Time) string {
	if s.mode == GreetingModeTagline {
		return s.tagline
	}
	hour := t.In(s.location).Hour()
	return fmt.Sprintf("%s — let's code with good vibes %s", salutation(hour), greetingDecorations[hour%4])
}

func salutation(hour int) string {
	switch {
	case hour < 12:
		return "Good morning"
	case hour < 18:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}
