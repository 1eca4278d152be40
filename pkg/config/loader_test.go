package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StricklySoft/stricklysoft-results/internal/testutil"
	sserr "github.com/StricklySoft/stricklysoft-results/pkg/errors"
)

type label string

type basicConfig struct {
	Host    string        `env:"HOST" envDefault:"localhost" yaml:"host" json:"host"`
	Port    int           `env:"PORT" envDefault:"8080" yaml:"port" json:"port"`
	Debug   bool          `env:"DEBUG" envDefault:"false" yaml:"debug" json:"debug"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s" yaml:"timeout" json:"timeout"`
	Ratio   float64       `env:"RATIO" envDefault:"0.5" yaml:"ratio" json:"ratio"`
	Retries uint8         `env:"RETRIES" envDefault:"3" yaml:"retries" json:"retries"`
	Label   label         `env:"LABEL" yaml:"label" json:"label"`
	Tags    []string      `env:"TAGS" envDefault:"a, b ,c" yaml:"tags" json:"tags"`
}

type requiredConfig struct {
	Name string `env:"NAME" required:"true"`
	DB   struct {
		URI string `env:"URI" required:"true"`
	} `env:"DB"`
}

type portRange struct {
	Port int `env:"PORT" envDefault:"8080" yaml:"port"`
}

func (p portRange) Validate() error {
	if p.Port < 1 || p.Port > 65535 {
		return sserr.Newf(sserr.CodeValidation, "port %d is out of range", p.Port)
	}
	return nil
}

type serverConfig struct {
	Name   string    `env:"NAME" envDefault:"api" yaml:"name"`
	Listen portRange `env:"LISTEN" yaml:"listen"`
}

type plainValidated struct {
	Name string `env:"NAME"`
}

func (c *plainValidated) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

func TestLoad_Defaults(t *testing.T) {
	var cfg basicConfig
	require.NoError(t, New().WithEnvPrefix("CFGDEF").Load(&cfg))

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.Debug)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.InDelta(t, 0.5, cfg.Ratio, 1e-9)
	assert.Equal(t, uint8(3), cfg.Retries)
	assert.Equal(t, label(""), cfg.Label)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.Tags)
}

func TestLoad_DefaultsKeepPresetValues(t *testing.T) {
	cfg := basicConfig{Host: "db.internal", Port: 5432}
	require.NoError(t, New().WithEnvPrefix("CFGPRESET").Load(&cfg))

	assert.Equal(t, "db.internal", cfg.Host)
	assert.Equal(t, 5432, cfg.Port)
}

func TestLoad_Precedence(t *testing.T) {
	path := testutil.TempConfigFile(t, "host: file-host\nport: 9000\ntimeout: 1m\n", ".yaml")
	testutil.SetEnv(t, "CFGPREC_PORT", "9100")

	var cfg basicConfig
	require.NoError(t, New().WithEnvPrefix("cfgprec").WithFile(path).Load(&cfg))

	assert.Equal(t, "file-host", cfg.Host, "file overrides default")
	assert.Equal(t, 9100, cfg.Port, "env overrides file")
	assert.Equal(t, time.Minute, cfg.Timeout)
	assert.Equal(t, 0.5, cfg.Ratio, "default survives when nothing overrides it")
}

func TestLoad_JSONFile(t *testing.T) {
	path := testutil.TempConfigFile(t, `{"host":"json-host","debug":true,"tags":["x"]}`, ".json")

	var cfg basicConfig
	require.NoError(t, New().WithEnvPrefix("CFGJSON").WithFile(path).Load(&cfg))

	assert.Equal(t, "json-host", cfg.Host)
	assert.True(t, cfg.Debug)
	assert.Equal(t, []string{"x"}, cfg.Tags)
}

func TestLoad_EnvKinds(t *testing.T) {
	testutil.SetEnv(t, "CFGENV_DEBUG", "true")
	testutil.SetEnv(t, "CFGENV_TIMEOUT", "250ms")
	testutil.SetEnv(t, "CFGENV_RATIO", "0.75")
	testutil.SetEnv(t, "CFGENV_RETRIES", "7")
	testutil.SetEnv(t, "CFGENV_LABEL", "blue")
	testutil.SetEnv(t, "CFGENV_TAGS", "one,two")

	var cfg basicConfig
	require.NoError(t, New().WithEnvPrefix("CFGENV").Load(&cfg))

	assert.True(t, cfg.Debug)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
	assert.InDelta(t, 0.75, cfg.Ratio, 1e-9)
	assert.Equal(t, uint8(7), cfg.Retries)
	assert.Equal(t, label("blue"), cfg.Label)
	assert.Equal(t, []string{"one", "two"}, cfg.Tags)
}

func TestLoad_EnvParseErrors(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"CFGBAD_PORT", "eighty"},
		{"CFGBAD_DEBUG", "maybe"},
		{"CFGBAD_TIMEOUT", "soon"},
		{"CFGBAD_RETRIES", "300"},
		{"CFGBAD_RATIO", "half"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			testutil.SetEnv(t, tt.key, tt.value)
			var cfg basicConfig
			err := New().WithEnvPrefix("CFGBAD").Load(&cfg)
			testutil.RequireErrorCode(t, err, sserr.CodeInternalConfiguration)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoad_InvalidTargets(t *testing.T) {
	testutil.AssertErrorCode(t, New().Load(nil), sserr.CodeInternalConfiguration)
	testutil.AssertErrorCode(t, New().Load((*basicConfig)(nil)), sserr.CodeInternalConfiguration)
	testutil.AssertErrorCode(t, New().Load(basicConfig{}), sserr.CodeInternalConfiguration)

	n := 3
	testutil.AssertErrorCode(t, New().Load(&n), sserr.CodeInternalConfiguration)
}

func TestLoad_FileErrors(t *testing.T) {
	t.Run("missing file is skipped", func(t *testing.T) {
		var cfg basicConfig
		require.NoError(t, New().WithEnvPrefix("CFGMISS").WithFile(t.TempDir()+"/absent.yaml").Load(&cfg))
		assert.Equal(t, "localhost", cfg.Host)
	})

	t.Run("traversal", func(t *testing.T) {
		var cfg basicConfig
		err := New().WithFile("../secrets.yaml").Load(&cfg)
		testutil.RequireErrorCode(t, err, sserr.CodeInternalConfiguration)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := testutil.TempConfigFile(t, "host = 'x'", ".toml")
		var cfg basicConfig
		err := New().WithFile(path).Load(&cfg)
		testutil.RequireErrorCode(t, err, sserr.CodeInternalConfiguration)
		assert.Contains(t, err.Error(), ".toml")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := testutil.TempConfigFile(t, "port: [unclosed", ".yml")
		var cfg basicConfig
		err := New().WithFile(path).Load(&cfg)
		testutil.RequireErrorCode(t, err, sserr.CodeInternalConfiguration)
	})
}

func TestLoad_Required(t *testing.T) {
	var cfg requiredConfig
	err := New().WithEnvPrefix("CFGREQ").Load(&cfg)
	se := testutil.RequireErrorCode(t, err, sserr.CodeValidationRequired)
	assert.Equal(t, "Name", se.Details["field"])

	testutil.SetEnv(t, "CFGREQ_NAME", "orders")
	err = New().WithEnvPrefix("CFGREQ").Load(&cfg)
	se = testutil.RequireErrorCode(t, err, sserr.CodeValidationRequired)
	assert.Equal(t, "DB.URI", se.Details["field"])

	testutil.SetEnv(t, "CFGREQ_DB_URI", "postgres://localhost/orders")
	require.NoError(t, New().WithEnvPrefix("CFGREQ").Load(&cfg))
	assert.Equal(t, "postgres://localhost/orders", cfg.DB.URI)
}

func TestLoad_NestedValidator(t *testing.T) {
	testutil.SetEnv(t, "CFGNEST_LISTEN_PORT", "70000")

	var cfg serverConfig
	err := New().WithEnvPrefix("CFGNEST").Load(&cfg)
	se := testutil.RequireErrorCode(t, err, sserr.CodeValidation)
	assert.Equal(t, "Listen", se.Details["field"])
}

func TestLoad_TopLevelValidatorWrapsPlainErrors(t *testing.T) {
	var cfg plainValidated
	err := New().WithEnvPrefix("CFGPLAIN").Load(&cfg)
	se := testutil.RequireErrorCode(t, err, sserr.CodeValidation)
	assert.EqualError(t, se.Cause, "name is required")
}

func TestMustLoad(t *testing.T) {
	cfg := MustLoad[basicConfig](New().WithEnvPrefix("CFGMUST"))
	assert.Equal(t, 8080, cfg.Port)

	assert.Panics(t, func() {
		MustLoad[requiredConfig](New().WithEnvPrefix("CFGMUSTREQ"))
	})
}

func TestLoader_EnvPrefix(t *testing.T) {
	assert.Equal(t, "APP", New().WithEnvPrefix(" app ").EnvPrefix())
	assert.Empty(t, New().EnvPrefix())
}
