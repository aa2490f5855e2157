package config

import "sync"

// RenderSettings holds the settings the frame loop reads every frame.
type RenderSettings struct {
	mu       sync.RWMutex
	fpsLimit int // 0 = uncapped
}

var globalRenderSettings = &RenderSettings{}

// MaxFPSLimit is the highest cap SetFPSLimit accepts.
const MaxFPSLimit = 1000

// GetFPSLimit returns the current frame rate cap; 0 means uncapped.
func GetFPSLimit() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fpsLimit
}

// SetFPSLimit sets the frame rate cap. Negative values mean uncapped and
// values above MaxFPSLimit are clamped.
func SetFPSLimit(limit int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	if limit < 0 {
		limit = 0
	}
	if limit > MaxFPSLimit {
		limit = MaxFPSLimit
	}

	globalRenderSettings.fpsLimit = limit
}

// Apply publishes the process-wide parts of c.
func (c Config) Apply() {
	SetFPSLimit(c.FPSLimit)
}
