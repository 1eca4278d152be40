// Package config loads the results toolkit settings from struct tag
// defaults, an optional YAML or JSON file and environment variables.
// Later layers win:
//
//	envDefault struct tags
//	YAML/JSON config file
//	environment variables
//
// # Struct Tags
//
//   - `env:"NAME"` maps a field to an environment variable. On a nested
//     struct it becomes the prefix for the children.
//   - `envDefault:"value"` applies when the field is still zero.
//   - `required:"true"` fails validation when the field stays zero.
//
// File loading goes through the `yaml` and `json` tags.
//
// # Usage
//
//	settings, err := config.LoadSettings(
//	    config.New().WithEnvPrefix("RESULTS").WithFile("results.yaml"),
//	)
//
// RESULTS_PAGING_MAX_PAGE_SIZE=50 then overrides paging.max_page_size.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	sserr "github.com/StricklySoft/stricklysoft-results/pkg/errors"
)

// time.Duration has Kind Int64 but parses from "30s" style strings.
var durationType = reflect.TypeOf(time.Duration(0))

// Loader resolves configuration layers into a struct. It is not safe
// for concurrent use.
type Loader struct {
	envPrefix string
	filePath  string
}

// New returns a Loader that reads environment variables only.
func New() *Loader {
	return &Loader{}
}

// WithEnvPrefix prepends prefix and "_" to every env name. The prefix is
// uppercased; an empty prefix disables prefixing.
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.envPrefix = strings.ToUpper(strings.TrimSpace(prefix))
	return l
}

// WithFile sets a .yaml, .yml or .json file to read. A missing file is
// skipped. Paths containing ".." are rejected by [Loader.Load].
func (l *Loader) WithFile(path string) *Loader {
	l.filePath = path
	return l
}

// EnvPrefix returns the configured prefix.
func (l *Loader) EnvPrefix() string {
	return l.envPrefix
}

// Load fills cfg, which must be a non-nil pointer to a struct, and then
// validates it: required tags first, then every [Validator] found on
// nested structs, then cfg itself.
//
// Loading failures carry [sserr.CodeInternalConfiguration]; validation
// failures carry [sserr.CodeValidationRequired] or [sserr.CodeValidation].
func (l *Loader) Load(cfg any) error {
	rv := reflect.ValueOf(cfg)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return sserr.New(sserr.CodeInternalConfiguration,
			"config: Load requires a non-nil pointer to a struct")
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return sserr.Newf(sserr.CodeInternalConfiguration,
			"config: Load requires a pointer to a struct, got %s", rv.Kind())
	}

	if err := applyDefaults(rv); err != nil {
		return err
	}
	if l.filePath != "" {
		if err := l.loadFile(cfg); err != nil {
			return err
		}
	}
	if err := applyEnv(rv, l.envPrefix); err != nil {
		return err
	}
	return validate(cfg, rv)
}

// MustLoad loads a T and panics on failure. Intended for main.
func MustLoad[T any](loader *Loader) T {
	var cfg T
	if err := loader.Load(&cfg); err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}

func (l *Loader) loadFile(cfg any) error {
	if strings.Contains(l.filePath, "..") {
		return sserr.New(sserr.CodeInternalConfiguration,
			"config: file path must not contain directory traversal (..) sequences").
			WithDetail("path", l.filePath)
	}

	data, err := os.ReadFile(l.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return sserr.Wrapf(err, sserr.CodeInternalConfiguration,
			"config: failed to read file %q", l.filePath)
	}

	switch ext := strings.ToLower(filepath.Ext(l.filePath)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".json":
		err = json.Unmarshal(data, cfg)
	default:
		return sserr.Newf(sserr.CodeInternalConfiguration,
			"config: unsupported file extension %q (use .yaml, .yml, or .json)", ext)
	}
	if err != nil {
		return sserr.Wrapf(err, sserr.CodeInternalConfiguration,
			"config: failed to parse file %q", l.filePath)
	}
	return nil
}

// isNested reports whether a field is a struct the loader descends into.
func isNested(field reflect.Value) bool {
	return field.Kind() == reflect.Struct && field.Type() != durationType
}

func applyDefaults(rv reflect.Value) error {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field, sf := rv.Field(i), rt.Field(i)
		if !field.CanSet() {
			continue
		}
		if isNested(field) {
			if err := applyDefaults(field); err != nil {
				return err
			}
			continue
		}

		tag, ok := sf.Tag.Lookup("envDefault")
		if !ok || tag == "" || !field.IsZero() {
			continue
		}
		if err := setField(field, tag); err != nil {
			return sserr.Wrapf(err, sserr.CodeInternalConfiguration,
				"config: failed to apply default for field %q", sf.Name)
		}
	}
	return nil
}

func applyEnv(rv reflect.Value, prefix string) error {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field, sf := rv.Field(i), rt.Field(i)
		if !field.CanSet() {
			continue
		}
		envTag := sf.Tag.Get("env")

		if isNested(field) {
			if err := applyEnv(field, joinEnv(prefix, envTag)); err != nil {
				return err
			}
			continue
		}
		if envTag == "" {
			continue
		}

		envKey := joinEnv(prefix, envTag)
		val, ok := os.LookupEnv(envKey)
		if !ok {
			continue
		}
		if err := setField(field, val); err != nil {
			return sserr.Wrapf(err, sserr.CodeInternalConfiguration,
				"config: failed to set field %q from env var %q", sf.Name, envKey)
		}
	}
	return nil
}

func joinEnv(prefix, name string) string {
	switch {
	case prefix == "":
		return name
	case name == "":
		return prefix
	default:
		return prefix + "_" + name
	}
}

// setField converts value with cast and stores it in field. Supported
// kinds: string (including named string types such as
// resultlog.Severity), bool, signed and unsigned integers, floats,
// time.Duration and comma-separated []string.
func setField(field reflect.Value, value string) error {
	if field.Type() == durationType {
		d, err := time.ParseDuration(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("cannot parse duration %q: %w", value, err)
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Bool:
		b, err := cast.ToBoolE(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("cannot parse bool %q: %w", value, err)
		}
		field.SetBool(b)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := cast.ToInt64E(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("cannot parse integer %q: %w", value, err)
		}
		if field.OverflowInt(n) {
			return fmt.Errorf("integer %q overflows %s", value, field.Type())
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := cast.ToUint64E(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("cannot parse unsigned integer %q: %w", value, err)
		}
		if field.OverflowUint(n) {
			return fmt.Errorf("unsigned integer %q overflows %s", value, field.Type())
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		f, err := cast.ToFloat64E(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("cannot parse float %q: %w", value, err)
		}
		field.SetFloat(f)

	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice element type %s", field.Type().Elem().Kind())
		}
		parts := strings.Split(value, ",")
		// MakeSlice keeps named slice types assignable.
		slice := reflect.MakeSlice(field.Type(), len(parts), len(parts))
		for i, p := range parts {
			slice.Index(i).SetString(strings.TrimSpace(p))
		}
		field.Set(slice)

	default:
		return fmt.Errorf("unsupported field type %s", field.Kind())
	}
	return nil
}
