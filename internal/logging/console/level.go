package console

import "strings"

// Level orders entry severities; entries below a provider's minimum are
// dropped.
type Level uint8

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = [...]string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

// String returns the upper-case label; out of range values print as INFO.
func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return levelNames[LevelInfo]
}

// ParseLevel reads a config value such as "debug" or "WARNING". Unknown
// values return LevelInfo and false.
func ParseLevel(value string) (Level, bool) {
	key := strings.ToUpper(strings.TrimSpace(value))
	if key == "WARNING" {
		key = "WARN"
	}
	for i, name := range levelNames {
		if name == key {
			return Level(i), true
		}
	}
	return LevelInfo, false
}
