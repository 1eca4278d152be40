package config

import (
	"reflect"

	sserr "github.com/StricklySoft/stricklysoft-results/pkg/errors"
)

// Validator is implemented by configuration structs with checks beyond
// the required tag. [Loader.Load] calls it on nested structs and on the
// loaded struct itself. Errors that are not already [*sserr.Error] are
// wrapped with [sserr.CodeValidation].
//
// paging.Policy, resultlog.Options and query.Config all implement it.
type Validator interface {
	Validate() error
}

var validatorType = reflect.TypeOf((*Validator)(nil)).Elem()

func validate(cfg any, rv reflect.Value) error {
	if err := validateRequired(rv, ""); err != nil {
		return err
	}
	if err := validateNested(rv, ""); err != nil {
		return err
	}
	if v, ok := cfg.(Validator); ok {
		return checkValidator(v, "")
	}
	return nil
}

// validateRequired returns the first field tagged required:"true" that
// is still zero, naming it by dotted path ("Database.URI").
func validateRequired(rv reflect.Value, path string) error {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field, sf := rv.Field(i), rt.Field(i)
		if !field.CanSet() {
			continue
		}
		fieldPath := joinPath(path, sf.Name)

		if isNested(field) {
			if err := validateRequired(field, fieldPath); err != nil {
				return err
			}
			continue
		}
		if sf.Tag.Get("required") == "true" && field.IsZero() {
			return sserr.Newf(sserr.CodeValidationRequired,
				"config: required field %q is empty", fieldPath).
				WithDetail("field", fieldPath)
		}
	}
	return nil
}

// validateNested runs Validate on nested struct fields, innermost first.
func validateNested(rv reflect.Value, path string) error {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field, sf := rv.Field(i), rt.Field(i)
		if !field.CanSet() || !isNested(field) {
			continue
		}
		fieldPath := joinPath(path, sf.Name)
		if err := validateNested(field, fieldPath); err != nil {
			return err
		}

		ptr := field.Addr()
		if !ptr.Type().Implements(validatorType) {
			continue
		}
		if err := checkValidator(ptr.Interface().(Validator), fieldPath); err != nil {
			return err
		}
	}
	return nil
}

func checkValidator(v Validator, path string) error {
	err := v.Validate()
	if err == nil {
		return nil
	}
	se, ok := sserr.AsError(err)
	if !ok {
		se = sserr.Wrap(err, sserr.CodeValidation, "config: custom validation failed")
	}
	if path != "" {
		se = se.WithDetail("field", path)
	}
	return se
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
