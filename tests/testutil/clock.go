package testutil

import (
	"time"

	"github.com/light-bringer/inventory-service/internal/pkg/clock"
)

// Epoch is the start time of every test clock.
var Epoch = time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

// NewMockClock creates a mock clock starting at Epoch.
func NewMockClock() *clock.MockClock {
	return clock.NewMockClock(Epoch)
}
