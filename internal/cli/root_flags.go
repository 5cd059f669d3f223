package cli

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/lydakis/cuebridge/internal/config"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitBackendErr = 1
	ExitUsageErr   = 2
	ExitInternal   = 3
)

var (
	rootStdout   io.Writer = os.Stdout
	rootStderr   io.Writer = os.Stderr
	buildVersion           = "dev"
)

func init() {
	buildVersion = resolveBuildVersion(buildVersion)
}

// Version returns the resolved build version.
func Version() string {
	return buildVersion
}

func resolveBuildVersion(defaultVersion string) string {
	if defaultVersion != "" && defaultVersion != "dev" {
		return defaultVersion
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return defaultVersion
	}
	if info.Main.Version == "" || info.Main.Version == "(devel)" {
		return defaultVersion
	}
	return info.Main.Version
}

func printRootHelp(out io.Writer, flagUsages string) {
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintln(out, "  cuebridge [serve] [FLAGS]")
	fmt.Fprintln(out, "  cuebridge device status [FLAGS]")
	fmt.Fprintln(out, "  cuebridge device register [--name NAME] [FLAGS]")
	fmt.Fprintln(out, "  cuebridge auth-settings [FLAGS]")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Flags:")
	fmt.Fprint(out, flagUsages)
	fmt.Fprintln(out, "")
	fmt.Fprintf(out, "Config file: %s\n", config.ExampleConfigPath())
}
