package config

import (
	"github.com/StricklySoft/stricklysoft-results/pkg/paging"
	"github.com/StricklySoft/stricklysoft-results/pkg/query"
	"github.com/StricklySoft/stricklysoft-results/pkg/resultlog"
)

// Settings groups the tunables of the results toolkit. With prefix
// "RESULTS" the env names are RESULTS_PAGING_*, RESULTS_LOGGING_* and
// RESULTS_DATABASE_*.
//
//	paging:
//	  default_page_size: 20
//	  max_page_size: 50
//	logging:
//	  area: orders
//	  severity: warning
//	database:
//	  uri: postgres://localhost/orders
type Settings struct {
	Paging   paging.Policy     `env:"PAGING" yaml:"paging" json:"paging"`
	Logging  resultlog.Options `env:"LOGGING" yaml:"logging" json:"logging"`
	Database query.Config      `env:"DATABASE" yaml:"database" json:"database"`
}

// DefaultSettings returns the values the envDefault tags describe.
func DefaultSettings() Settings {
	return Settings{
		Paging:   paging.DefaultPolicy(),
		Logging:  resultlog.DefaultOptions(),
		Database: query.DefaultConfig(),
	}
}

// Validate checks every section.
func (s *Settings) Validate() error {
	for _, v := range []Validator{s.Paging, s.Logging, s.Database} {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// LoadSettings runs loader into a fresh Settings.
func LoadSettings(loader *Loader) (Settings, error) {
	var s Settings
	if loader == nil {
		loader = New()
	}
	if err := loader.Load(&s); err != nil {
		return Settings{}, err
	}
	return s, nil
}
