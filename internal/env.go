package internal

import (
	"lkv/internal/pkg/validate"

	"github.com/pkg/errors"
)

type settings struct {
	Env                 string `validate:"oneof=development test production"`
	LogLevel            string `validate:"oneof=trace debug info warn error"`
	HealthPort          int    `validate:"min=0,max=65535"`
	Port                int    `validate:"min=1,max=65535"`
	MaxGoroutines       int    `validate:"min=0"`
	ClientDialTimeoutMS int    `validate:"min=0"`
}

// ValidateEnv checks the settings read from flags and the environment.
func ValidateEnv() error {
	s := settings{
		Env:                 Env,
		LogLevel:            LogLevel,
		HealthPort:          HealthPort,
		Port:                Port,
		MaxGoroutines:       MaxGoroutines,
		ClientDialTimeoutMS: ClientDialTimeoutMS,
	}
	return errors.Wrap(validate.Validate().Struct(s), "invalid settings")
}
