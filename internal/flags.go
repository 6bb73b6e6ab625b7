// Package internal holds the process-wide settings shared by the lkv commands.
//
// Every setting is a command line flag whose default is read from an LKV_* environment variable.
package internal

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Settings bound to the flags below.
var (
	Env        = "development"
	LogLevel   = "error"
	ConfigFile = ""

	HealthPort = 0
	Port       = 7000

	MaxGoroutines = 0

	ClientDialTimeoutMS = 5000
)

// Flag is a command line flag backed by an environment variable.
type Flag struct {
	Name   string
	EnvVar string
	Usage  string
	// Value points at the setting the flag is bound to: *string or *int.
	Value interface{}
}

// Flag definitions.
var (
	EnvFlag = Flag{
		Name:   "env",
		EnvVar: "LKV_ENV",
		Usage:  "deployment environment: development, test or production",
		Value:  &Env,
	}
	LogLevelFlag = Flag{
		Name:   "log-level",
		EnvVar: "LKV_LOG_LEVEL",
		Usage:  "log level: trace, debug, info, warn or error",
		Value:  &LogLevel,
	}
	ConfigFileFlag = Flag{
		Name:   "config",
		EnvVar: "LKV_CONFIG",
		Usage:  "path to a TOML config file",
		Value:  &ConfigFile,
	}

	HealthPortFlag = Flag{
		Name:   "health-port",
		EnvVar: "LKV_HEALTH_PORT",
		Usage:  "port of the gRPC health service, 0 disables it",
		Value:  &HealthPort,
	}
	PortFlag = Flag{
		Name:   "port",
		EnvVar: "LKV_PORT",
		Usage:  "port of the key-value server",
		Value:  &Port,
	}

	MaxGoroutinesFlag = Flag{
		Name:   "max-goroutines",
		EnvVar: "LKV_MAX_GOROUTINES",
		Usage:  "maximum number of concurrent client sessions, 0 for no limit",
		Value:  &MaxGoroutines,
	}

	ClientDialTimeoutMSFlag = Flag{
		Name:   "dial-timeout-ms",
		EnvVar: "LKV_CLIENT_DIAL_TIMEOUT_MS",
		Usage:  "client connection and request timeout in milliseconds",
		Value:  &ClientDialTimeoutMS,
	}
)

// RegisterCommandFlags registers flags as persistent flags of cmd.
// A flag's default is taken from its environment variable when that is set.
func RegisterCommandFlags(cmd *cobra.Command, flags []*Flag) error {
	for _, f := range flags {
		if err := register(cmd.PersistentFlags(), f); err != nil {
			return errors.Wrapf(err, "register flag %s failed", f.Name)
		}
	}
	return nil
}

func register(fs *pflag.FlagSet, f *Flag) error {
	env, fromEnv := os.LookupEnv(f.EnvVar)
	usage := f.Usage + " [$" + f.EnvVar + "]"
	switch v := f.Value.(type) {
	case *string:
		def := *v
		if fromEnv {
			def = env
		}
		fs.StringVar(v, f.Name, def, usage)
	case *int:
		def := *v
		if fromEnv {
			n, err := strconv.Atoi(env)
			if err != nil {
				return errors.Wrapf(err, "parse %s failed", f.EnvVar)
			}
			def = n
		}
		fs.IntVar(v, f.Name, def, usage)
	default:
		return errors.Errorf("unsupported flag type %T", f.Value)
	}
	return nil
}

// Changed reports whether f was set explicitly on the command line of cmd or one of its parents.
func Changed(cmd *cobra.Command, f *Flag) bool {
	pf := cmd.Flag(f.Name)
	return pf != nil && pf.Changed
}
