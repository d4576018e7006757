package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config captures environment driven configuration values for the scheduler
// service.
type Config struct {
	HTTPPort     int
	SQLitePath   string
	WorkDayStart int
	WorkDayEnd   int
}

// Load parses configuration values from the current process environment. A
// .env file in the working directory is read first when present; real
// environment variables win over file entries.
//
// Optional fields fall back to sensible defaults; malformed values are
// reported together in a single error.
func Load() (Config, error) {
	// godotenv never overrides variables that are already set, so the
	// process environment stays authoritative.
	_ = godotenv.Load()

	cfg := Config{
		HTTPPort:     8080,
		SQLitePath:   "scheduler.db",
		WorkDayStart: 9,
		WorkDayEnd:   17,
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("SCHEDULER_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "SCHEDULER_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if path := strings.TrimSpace(os.Getenv("SCHEDULER_SQLITE_PATH")); path != "" {
		cfg.SQLitePath = path
	}

	if startValue := strings.TrimSpace(os.Getenv("SCHEDULER_WORK_DAY_START")); startValue != "" {
		start, err := strconv.Atoi(startValue)
		if err != nil || start < 0 || start > 23 {
			invalid = append(invalid, "SCHEDULER_WORK_DAY_START")
		} else {
			cfg.WorkDayStart = start
		}
	}

	if endValue := strings.TrimSpace(os.Getenv("SCHEDULER_WORK_DAY_END")); endValue != "" {
		end, err := strconv.Atoi(endValue)
		if err != nil || end < 1 || end > 24 {
			invalid = append(invalid, "SCHEDULER_WORK_DAY_END")
		} else {
			cfg.WorkDayEnd = end
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	if cfg.WorkDayStart >= cfg.WorkDayEnd {
		return Config{}, fmt.Errorf("SCHEDULER_WORK_DAY_START must be before SCHEDULER_WORK_DAY_END")
	}

	return cfg, nil
}
