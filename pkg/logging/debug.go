//go:build debug
// +build debug

package logging

import "go.uber.org/zap/zapcore"

// buildLevel forces debug output in debug builds.
func buildLevel(_ zapcore.Level) zapcore.Level {
	return zapcore.DebugLevel
}
