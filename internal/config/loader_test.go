package config

import (
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"SCHEDULER_HTTP_PORT",
		"SCHEDULER_SQLITE_PATH",
		"SCHEDULER_WORK_DAY_START",
		"SCHEDULER_WORK_DAY_END",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.HTTPPort != 8080 {
		t.Fatalf("unexpected default port %d", cfg.HTTPPort)
	}
	if cfg.SQLitePath != "scheduler.db" {
		t.Fatalf("unexpected default database path %q", cfg.SQLitePath)
	}
	if cfg.WorkDayStart != 9 || cfg.WorkDayEnd != 17 {
		t.Fatalf("unexpected default working hours %d-%d", cfg.WorkDayStart, cfg.WorkDayEnd)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SCHEDULER_HTTP_PORT", "9090")
	t.Setenv("SCHEDULER_SQLITE_PATH", "/tmp/test.db")
	t.Setenv("SCHEDULER_WORK_DAY_START", "8")
	t.Setenv("SCHEDULER_WORK_DAY_END", "18")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.HTTPPort != 9090 || cfg.SQLitePath != "/tmp/test.db" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.WorkDayStart != 8 || cfg.WorkDayEnd != 18 {
		t.Fatalf("working hours not applied: %+v", cfg)
	}
}

func TestLoad_ReportsAllInvalidValues(t *testing.T) {
	t.Setenv("SCHEDULER_HTTP_PORT", "zero")
	t.Setenv("SCHEDULER_WORK_DAY_START", "25")

	_, err := Load()
	if err == nil {
		t.Fatal("expected an error for invalid values")
	}
	if !strings.Contains(err.Error(), "SCHEDULER_HTTP_PORT") || !strings.Contains(err.Error(), "SCHEDULER_WORK_DAY_START") {
		t.Fatalf("error must name every invalid variable: %v", err)
	}
}

func TestLoad_RejectsInvertedWorkingDay(t *testing.T) {
	t.Setenv("SCHEDULER_WORK_DAY_START", "18")
	t.Setenv("SCHEDULER_WORK_DAY_END", "9")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error when the working day is inverted")
	}
}
