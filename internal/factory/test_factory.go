package factory

import (
	"time"

	"github.com/rfallows/campgrounds/internal/dependencies/mocks"
	"github.com/rfallows/campgrounds/internal/services/auth"
	"github.com/rfallows/campgrounds/internal/storage/memory"
	"github.com/rfallows/campgrounds/internal/testutil"
	"github.com/rfallows/campgrounds/internal/upload"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock   *mocks.MockClock
	MemoryStore *upload.MemoryStore
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	objects := upload.NewMemoryStore()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	app := newWithDependencies(store, objects, mockClock, auth.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:         app,
		MockClock:   mockClock,
		MemoryStore: objects,
	}
}
