package validate

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once sync.Once
	v    *validator.Validate
)

// Get returns the shared validator; validator.Validate caches struct
// metadata and is safe for concurrent use.
func Get() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
	})
	return v
}

func Email(s string) bool {
	return Get().Var(s, "required,email") == nil
}
