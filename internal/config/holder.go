package config

import (
	"errors"
	"io/fs"
	"sync/atomic"

	"github.com/joho/godotenv"
)

// Holder keeps the current configuration and lets it be swapped at runtime
// (SIGHUP). Readers always see a complete snapshot.
type Holder struct {
	cur atomic.Pointer[Config]
}

func NewHolder(cfg *Config) *Holder {
	h := &Holder{}
	h.cur.Store(cfg)
	return h
}

func (h *Holder) Get() *Config { return h.cur.Load() }

// LMS is the credentials accessor handed to the dashboard resolver.
func (h *Holder) LMS() LMS { return h.cur.Load().LMS }

func (h *Holder) Set(cfg *Config) { h.cur.Store(cfg) }

// Reload re-reads the given env files (overriding the process environment)
// and then the environment itself. A missing file is skipped, so env-only
// deployments reload from the environment alone. Keys removed from a file
// stay set in the process. On error the previous snapshot is kept.
func (h *Holder) Reload(files ...string) (*Config, error) {
	for _, f := range files {
		if err := godotenv.Overload(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
	}
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	h.Set(cfg)
	return cfg, nil
}
