package logger

import "github.com/rs/zerolog"

// Reset forgets the current logger so each test can call Init again.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	instance = zerolog.Logger{}
	initialized = false
}
