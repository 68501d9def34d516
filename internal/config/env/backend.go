package envconfig

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type backendEnv struct {
	BaseURL        string        `env:"BACKEND_BASE_URL,required"`
	RequestTimeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"10s"`
	ReadTimeout    time.Duration `env:"BACKEND_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout   time.Duration `env:"BACKEND_WRITE_TIMEOUT" envDefault:"10s"`
}

type backend struct {
	raw backendEnv
}

func NewBackendConfig() (*backend, error) {
	var raw backendEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &backend{raw: raw}, nil
}

func (cfg *backend) BaseURL() string               { return cfg.raw.BaseURL }
func (cfg *backend) RequestTimeout() time.Duration { return cfg.raw.RequestTimeout }
func (cfg *backend) ReadTimeout() time.Duration    { return cfg.raw.ReadTimeout }
func (cfg *backend) WriteTimeout() time.Duration   { return cfg.raw.WriteTimeout }
