package config

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	shellpipeerrors "github.com/alexisbeaulieu97/shellpipe/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	keyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// bindingKey exists only to let validator.Struct run its tag machinery
// against a single key=value pair, mirroring the teacher's pattern of
// validating one struct field at a time rather than hand-rolling checks.
type bindingKey struct {
	Key string `validate:"required,alphanum_underscore"`
}

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("alphanum_underscore", func(fl validator.FieldLevel) bool {
			return keyPattern.MatchString(fl.Field().String())
		})
		validateInst = v
	})
	return validateInst
}

// Binding is one `key=value` CLI positional, seeded into the global context
// before the pipeline document is parsed.
type Binding struct {
	Key   string
	Value string
}

// ParseBindings validates and splits each `key=value` argument. A malformed
// binding (missing `=`, or a key that is not a valid identifier) is a
// Startup error.
func ParseBindings(args []string) ([]Binding, error) {
	v := validatorInstance()
	bindings := make([]Binding, 0, len(args))

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, shellpipeerrors.NewValidationError(arg, "binding must be of the form key=value", nil)
		}
		if err := v.Struct(bindingKey{Key: key}); err != nil {
			return nil, shellpipeerrors.NewValidationError(key, fmt.Sprintf("invalid binding key %q", key), err)
		}
		bindings = append(bindings, Binding{Key: key, Value: value})
	}

	return bindings, nil
}

// ToMap flattens bindings into the seed map internal/config.Load and the
// root GlobalContext both expect.
func ToMap(bindings []Binding) map[string]string {
	m := make(map[string]string, len(bindings))
	for _, b := range bindings {
		m[b.Key] = b.Value
	}
	return m
}
