package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// LMS: параметры подключения к удалённому веб-сервису.
type LMS struct {
	URL     string
	Token   string
	Timeout time.Duration // 0 = без таймаута
	Workers int
}

// Configured reports whether both connection parameters are set.
// When false every read is served from the demo fixtures.
func (l LMS) Configured() bool {
	return strings.TrimSpace(l.URL) != "" && strings.TrimSpace(l.Token) != ""
}

type Config struct {
	LMS           LMS
	HTTPAddr      string
	LogLevel      string
	Env           string // dev|prod
	SentryDSN     string
	CORSOrigins   []string
	ProbeInterval time.Duration
}

func Load() (*Config, error) {
	timeout, err := parseDuration("LMS_TIMEOUT", 0)
	if err != nil {
		return nil, err
	}
	probe, err := parseDuration("LMS_PROBE_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}
	workers, err := parseInt("LMS_WORKERS", 4)
	if err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = 1
	}

	cfg := &Config{
		LMS: LMS{
			URL:     strings.TrimRight(strings.TrimSpace(os.Getenv("LMS_URL")), "/"),
			Token:   strings.TrimSpace(os.Getenv("LMS_TOKEN")),
			Timeout: timeout,
			Workers: workers,
		},
		HTTPAddr:      getenv("HTTP_ADDR", ":8080"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		Env:           getenv("ENV", "dev"),
		SentryDSN:     os.Getenv("SENTRY_DSN"),
		CORSOrigins:   parseList(getenv("CORS_ORIGINS", "http://localhost:5173")),
		ProbeInterval: probe,
	}
	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func parseDuration(k string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def, nil
	}
	// голые числа трактуем как секунды
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	return d, nil
}

func parseInt(k string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: bad number %q: %w", k, v, err)
	}
	return n, nil
}

func parseList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
