package config

import (
	"os"
	"strconv"
	"strings"
)

func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvBool("WEEKLY_MOUSE"); ok {
		cfg.Mouse = v
	}
	if v, ok := getEnvBool("WEEKLY_ALT_SCREEN"); ok {
		cfg.AltScreen = v
	}
	if v, ok := getEnvInt("WEEKLY_COLUMN_WIDTH"); ok && v > 0 {
		cfg.ColumnWidth = v
	}
	if v := strings.TrimSpace(os.Getenv("WEEKLY_LOG_FILE")); v != "" {
		cfg.LogFile = v
	}
	if v := strings.TrimSpace(os.Getenv("WEEKLY_LOG_LEVEL")); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	// https://no-color.org: any non-empty value disables color.
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		cfg.NoColor = true
	}
	return cfg
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
