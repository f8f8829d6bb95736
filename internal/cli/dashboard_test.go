package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pmlite/pmlite/internal/clock"
	"github.com/pmlite/pmlite/internal/store"
)

// TestGreeting verifies the time-of-day salutation and the name fallback.
func TestGreeting(t *testing.T) {
	t.Parallel()

	signedIn := store.Session{Authenticated: true, Email: "alex@example.com"}

	tests := []struct {
		name     string
		hour     int
		session  store.Session
		expected string
	}{
		{name: "morning", hour: 8, session: signedIn, expected: "Good morning, alex!"},
		{name: "afternoon", hour: 13, session: signedIn, expected: "Good afternoon, alex!"},
		{name: "evening", hour: 21, session: signedIn, expected: "Good evening, alex!"},
		{name: "signed out", hour: 8, session: store.Session{}, expected: "Good morning, there!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := clock.Fixed(time.Date(2025, time.April, 10, tt.hour, 0, 0, 0, time.UTC))
			assert.Equal(t, tt.expected, greeting(c, tt.session))
		})
	}
}

// TestGreetingName covers the email local-part extraction.
func TestGreetingName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "sam", greetingName(store.Session{Authenticated: true, Email: "sam@pmlite.dev"}))
	assert.Equal(t, "there", greetingName(store.Session{Authenticated: true}))
	assert.Equal(t, "there", greetingName(store.Session{Email: "sam@pmlite.dev"}))
}
