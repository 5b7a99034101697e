package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyaid/internal/config"
)

func TestGreetingBands(t *testing.T) {
	svc, err := NewGreetingService(config.GreetingConfig{Mode: GreetingModeTime, Location: "UTC"})
	require.NoError(t, err)

	tests := []struct {
		hour int
		want string
	}{
		{hour: 0, want: "Good morning — let's code with good vibes ✨"},
		{hour: 5, want: "Good morning — let's code with good vibes 🎧"},
		{hour: 11, want: "Good morning — let's code with good vibes 🌈"},
		{hour: 12, want: "Good afternoon — let's code with good vibes ✨"},
		{hour: 17, want: "Good afternoon — let's code with good vibes 🎧"},
		{hour: 18, want: "Good evening — let's code with good vibes 🚀"},
		{hour: 23, want: "Good evening — let's code with good vibes 🌈"},
	}

	for _, tt := range tests {
		at := time.Date(2026, 3, 1, tt.hour, 30, 0, 0, time.UTC)
		assert.Equal(t, tt.want, svc.At(at), "hour %d", tt.hour)
	}
}

func TestGreetingUsesConfiguredLocation(t *testing.T) {
	svc, err := NewGreetingService(config.GreetingConfig{Mode: GreetingModeTime, Location: "Asia/Tokyo"})
	require.NoError(t, err)

	// 03:00 UTC is 12:00 in Tokyo
	at := time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC)
	assert.Contains(t, svc.At(at), "Good afternoon")
}

func TestGreetingTaglineVariant(t *testing.T) {
	svc, err := NewGreetingService(config.GreetingConfig{Mode: GreetingModeTagline, Tagline: "You've got this.", Location: "UTC"})
	require.NoError(t, err)

	assert.Equal(t, "You've got this.", svc.At(time.Now()))
	assert.Equal(t, "You've got this.", svc.Render())
}

func TestGreetingInvalidLocation(t *testing.T) {
	_, err := NewGreetingService(config.GreetingConfig{Location: "Nowhere/Special"})
	assert.Error(t, err)
}
