// Package cli implements the cuebridge command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lydakis/cuebridge/internal/graphql"
	"github.com/spf13/pflag"
)

type options struct {
	configPath  string
	endpoint    string
	fingerprint string
	transport   string
	listen      string
	logLevel    string
	name        string
	help        bool
	version     bool
}

func newFlagSet(opts *options) *pflag.FlagSet {
	fs := pflag.NewFlagSet("cuebridge", pflag.ContinueOnError)
	fs.SetOutput(rootStderr)
	fs.StringVar(&opts.configPath, "config", "", "config file path")
	fs.StringVar(&opts.endpoint, "endpoint", "", "GraphQL endpoint URL")
	fs.StringVar(&opts.fingerprint, "fingerprint", "", "device fingerprint to present")
	fs.StringVar(&opts.transport, "transport", "", "MCP transport: stdio or http")
	fs.StringVar(&opts.listen, "listen", "", "listen address for the http transport")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&opts.name, "name", "", "device name (device register only)")
	fs.BoolVarP(&opts.help, "help", "h", false, "show help")
	fs.BoolVarP(&opts.version, "version", "V", false, "show version")
	return fs
}

// Run is the main CLI entry point. Returns an exit code.
func Run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx, args)
}

func run(ctx context.Context, args []string) int {
	var opts options
	fs := newFlagSet(&opts)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printRootHelp(rootStdout, fs.FlagUsages())
			return ExitOK
		}
		return ExitUsageErr
	}
	if opts.help {
		printRootHelp(rootStdout, fs.FlagUsages())
		return ExitOK
	}
	if opts.version {
		fmt.Fprintf(rootStdout, "cuebridge %s\n", buildVersion)
		return ExitOK
	}

	command, err := parseCommand(fs.Args())
	if err != nil {
		fmt.Fprintf(rootStderr, "cuebridge: %v\n", err)
		return ExitUsageErr
	}
	if opts.name != "" && command != cmdDeviceRegister {
		fmt.Fprintln(rootStderr, "cuebridge: --name only applies to device register")
		return ExitUsageErr
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(rootStderr, "cuebridge: %v\n", err)
		return ExitUsageErr
	}
	rt, err := newApp(cfg)
	if err != nil {
		fmt.Fprintf(rootStderr, "cuebridge: %v\n", err)
		return ExitInternal
	}

	switch command {
	case cmdServe:
		err = runServe(ctx, rt)
	case cmdDeviceStatus:
		err = runDeviceStatus(ctx, rt)
	case cmdDeviceRegister:
		err = runDeviceRegister(ctx, rt, opts.name)
	case cmdAuthSettings:
		err = runAuthSettings(ctx, rt)
	}
	if err != nil {
		fmt.Fprintf(rootStderr, "cuebridge: %v\n", err)
		return exitCode(err)
	}
	return ExitOK
}

type command int

const (
	cmdServe command = iota
	cmdDeviceStatus
	cmdDeviceRegister
	cmdAuthSettings
)

func parseCommand(args []string) (command, error) {
	if len(args) == 0 {
		return cmdServe, nil
	}
	switch args[0] {
	case "serve":
		if len(args) > 1 {
			return 0, fmt.Errorf("serve takes no arguments")
		}
		return cmdServe, nil
	case "auth-settings":
		if len(args) > 1 {
			return 0, fmt.Errorf("auth-settings takes no arguments")
		}
		return cmdAuthSettings, nil
	case "device":
		if len(args) != 2 {
			return 0, fmt.Errorf("usage: cuebridge device <status|register>")
		}
		switch args[1] {
		case "status":
			return cmdDeviceStatus, nil
		case "register":
			return cmdDeviceRegister, nil
		}
		return 0, fmt.Errorf("unknown device command: %s", args[1])
	default:
		return 0, fmt.Errorf("unknown command: %s", args[0])
	}
}

// exitCode maps backend failures and rejections to ExitBackendErr and everything else to
// ExitInternal.
func exitCode(err error) int {
	var gqlErr *graphql.Error
	if errors.As(err, &gqlErr) || errors.Is(err, errRegistrationRejected) {
		return ExitBackendErr
	}
	return ExitInternal
}
