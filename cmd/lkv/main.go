// Package main is the lkv application entrypoint.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"lkv/internal"
	"lkv/internal/app/apps"
	"lkv/internal/app/cfg"
	"lkv/internal/pkg/log"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CLI command definitions.
var (
	logger logrus.FieldLogger = logrus.StandardLogger()

	rootCmd = &cobra.Command{
		Use:           "lkv",
		Short:         "A line-oriented key-value server and client.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	clientCmd = &cobra.Command{
		Use:   "client [client_id]",
		Short: "Runs a scripted session against an lkv server.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCmd,
	}

	serverCmd = &cobra.Command{
		Use:   "server",
		Short: "Starts an lkv server.",
		Args:  cobra.NoArgs,
		RunE:  runCmd,
	}
)

func loadFile() (*cfg.FileCfg, error) {
	if internal.ConfigFile == "" {
		return nil, nil
	}
	return cfg.LoadFile(internal.ConfigFile)
}

func serverCfgs(cmd *cobra.Command, file *cfg.FileCfg) []apps.ServerAppCfg {
	cfgs := []apps.ServerAppCfg{
		cfg.PortFromEnv(),
		cfg.HealthPortFromEnv(),
		cfg.MaxSessionsFromEnv(),
	}
	if file == nil {
		return cfgs
	}
	// flags given on the command line win over the file
	cfgs = append(cfgs, file)
	if internal.Changed(cmd, &internal.PortFlag) {
		cfgs = append(cfgs, cfg.PortFromEnv())
	}
	if internal.Changed(cmd, &internal.HealthPortFlag) {
		cfgs = append(cfgs, cfg.HealthPortFromEnv())
	}
	if internal.Changed(cmd, &internal.MaxGoroutinesFlag) {
		cfgs = append(cfgs, cfg.MaxSessionsFromEnv())
	}
	return cfgs
}

func clientCfgs(cmd *cobra.Command, file *cfg.FileCfg) []apps.ClientAppCfg {
	cfgs := []apps.ClientAppCfg{
		cfg.PortFromEnv(),
		cfg.DialTimeoutFromEnv(),
	}
	if file == nil {
		return cfgs
	}
	cfgs = append(cfgs, file)
	if internal.Changed(cmd, &internal.PortFlag) {
		cfgs = append(cfgs, cfg.PortFromEnv())
	}
	if internal.Changed(cmd, &internal.ClientDialTimeoutMSFlag) {
		cfgs = append(cfgs, cfg.DialTimeoutFromEnv())
	}
	return cfgs
}

func newApp(_ context.Context, cmd *cobra.Command) (apps.App, error) {
	file, err := loadFile()
	if err != nil {
		return nil, errors.Wrap(err, "load config file failed")
	}
	switch cmd.Name() {
	case "client":
		app, err := apps.NewClientApp(clientCfgs(cmd, file)...)
		if err != nil {
			return nil, errors.Wrap(err, "new client app failed")
		}
		return app, nil
	case "server":
		app, err := apps.NewServerApp(serverCfgs(cmd, file)...)
		if err != nil {
			return nil, errors.Wrap(err, "new server app failed")
		}
		return app, nil
	default:
		return nil, fmt.Errorf("unknown command: %s", cmd.Name())
	}
}

func runCmd(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if err := chainedCheck(
		ctx,
		envCheck,
	); err != nil {
		return errors.Wrap(err, "chained check failed")
	}
	app, err := newApp(ctx, cmd)
	if err != nil {
		return errors.Wrapf(err, "new %s app failed", cmd.Name())
	}
	return errors.Wrap(app.Run(ctx, args), "run app failed")
}

func envCheck(ctx context.Context) error {
	err := internal.ValidateEnv()
	if err != nil {
		return errors.Wrap(err, "validate env failed")
	}
	log.SetLogger(internal.LogLevel)
	return nil
}

func chainedCheck(ctx context.Context, checks ...func(context.Context) error) error {
	for _, check := range checks {
		err := check(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}

func init() {
	err := internal.RegisterCommandFlags(rootCmd, []*internal.Flag{
		&internal.EnvFlag,
		&internal.LogLevelFlag,
		&internal.ConfigFileFlag,

		&internal.PortFlag,
	})
	if err != nil {
		logger.Fatalln(err)
	}

	err = internal.RegisterCommandFlags(clientCmd, []*internal.Flag{
		&internal.ClientDialTimeoutMSFlag,
	})
	if err != nil {
		logger.Fatalln(err)
	}

	err = internal.RegisterCommandFlags(serverCmd, []*internal.Flag{
		&internal.HealthPortFlag,
		&internal.MaxGoroutinesFlag,
	})
	if err != nil {
		logger.Fatalln(err)
	}

	rootCmd.AddCommand(
		clientCmd,
		serverCmd,
	)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error(errors.Wrap(err, "execute root command failed"))
		stop()
		os.Exit(1)
	}
}
