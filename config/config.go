package config

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

var ErrNoInstances = errors.New("no instances configured")

type Config struct {
	Server    Server     `json:"server" yaml:"server" mapstructure:"server"`
	Instances []Instance `json:"instances" yaml:"instances" mapstructure:"instances" validate:"unique=ID,dive"`
	Manager   Manager    `json:"manager" yaml:"manager" mapstructure:"manager"`
	HTTP      HTTP       `json:"http" yaml:"http" mapstructure:"http"`
}

type Server struct {
	Port int `json:"port" yaml:"port" mapstructure:"port" validate:"gte=0,lte=65535"`
}

// Instance is one Sonarr or Radarr installation whose queue is aggregated
type Instance struct {
	ID       string `json:"id" yaml:"id" mapstructure:"id" validate:"required"`
	Name     string `json:"name" yaml:"name" mapstructure:"name"`
	Service  string `json:"service" yaml:"service" mapstructure:"service" validate:"required,oneof=sonarr radarr"`
	Scheme   string `json:"scheme" yaml:"scheme" mapstructure:"scheme" validate:"omitempty,oneof=http https"`
	Host     string `json:"host" yaml:"host" mapstructure:"host" validate:"required"`
	BasePath string `json:"basePath" yaml:"basePath" mapstructure:"basePath"`
	APIKey   string `json:"apiKey" yaml:"apiKey" mapstructure:"apiKey" validate:"required"`
}

// DisplayName falls back to the id when no name is configured
func (i Instance) DisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	return i.ID
}

// URL returns the base url of the instance api, defaulting to http
func (i Instance) URL() url.URL {
	scheme := i.Scheme
	if scheme == "" {
		scheme = "http"
	}

	return url.URL{
		Scheme: scheme,
		Host:   i.Host,
		Path:   path.Join("/", i.BasePath),
	}
}

// Manager houses configuration related to refreshing the aggregated queue
type Manager struct {
	RefreshInterval time.Duration `json:"refreshInterval" yaml:"refreshInterval" mapstructure:"refreshInterval"`
	PageSize        int           `json:"pageSize" yaml:"pageSize" mapstructure:"pageSize" validate:"gte=0"`
}

// HTTP configures the client used to talk to every instance
type HTTP struct {
	MaxRetries  int           `json:"maxRetries" yaml:"maxRetries" mapstructure:"maxRetries" validate:"gte=0"`
	BaseBackoff time.Duration `json:"baseBackoff" yaml:"baseBackoff" mapstructure:"baseBackoff"`
	Timeout     time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

type ConfigUnmarshaler interface {
	ReadInConfig() error
	Unmarshal(any, ...viper.DecoderConfigOption) error
	ConfigFileUsed() string
}

// New reads a new configuration and validates it
func New(cu ConfigUnmarshaler) (Config, error) {
	var c Config

	if cu.ConfigFileUsed() != "" {
		err := cu.ReadInConfig()
		if err != nil {
			return c, err
		}
	}

	err := cu.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	return c, c.Validate()
}

// Validate checks the configuration is usable
func (c Config) Validate() error {
	if len(c.Instances) == 0 {
		return ErrNoInstances
	}

	err := validator.New().Struct(c)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}
