package envconfig

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type engineEnv struct {
	ConfirmMaxAttempts  int           `env:"CONFIRM_MAX_ATTEMPTS" envDefault:"3"`
	ConfirmLockout      time.Duration `env:"CONFIRM_LOCKOUT" envDefault:"15m"`
	VehicleExpiryWindow time.Duration `env:"VEHICLE_EXPIRY_WINDOW" envDefault:"720h"`
	CatalogFetchTimeout time.Duration `env:"CATALOG_FETCH_TIMEOUT" envDefault:"5s"`
}

type engine struct {
	raw engineEnv
}

func NewEngineConfig() (*engine, error) {
	var raw engineEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &engine{raw: raw}, nil
}

func (cfg *engine) ConfirmMaxAttempts() int            { return cfg.raw.ConfirmMaxAttempts }
func (cfg *engine) ConfirmLockout() time.Duration      { return cfg.raw.ConfirmLockout }
func (cfg *engine) VehicleExpiryWindow() time.Duration { return cfg.raw.VehicleExpiryWindow }
func (cfg *engine) CatalogFetchTimeout() time.Duration { return cfg.raw.CatalogFetchTimeout }
