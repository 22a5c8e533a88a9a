package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"stegano/domain/app"
	"stegano/domain/mode"
	palSignal "stegano/infrastructure/PAL/signal"
	infraLogging "stegano/infrastructure/logging"
	"stegano/presentation/cli"
	"stegano/presentation/mode_selection"
	"stegano/presentation/runners/version"
	"stegano/presentation/signals/shutdown"
	"stegano/settings/json_file_configuration"
)

func main() {
	os.Exit(run())
}

func run() int {
	appCtx, appCtxCancel := context.WithCancel(context.Background())
	defer appCtxCancel()

	logger := infraLogging.NewLogLogger()
	shutdown.NewHandler(
		appCtx,
		appCtxCancel,
		palSignal.NewDefaultProvider(),
		shutdown.NewNotifier(),
		logger,
	).Handle()

	am := mode_selection.NewArgsAppMode(os.Args)
	selectedMode, selectedModeErr := am.Mode()
	if selectedModeErr != nil {
		fmt.Fprintln(os.Stderr, selectedModeErr)
		printUsage()
		return 2
	}
	if selectedMode == mode.Version {
		version.NewRunner().Run(appCtx)
		return 0
	}

	configuration, configurationErr := json_file_configuration.NewManager().Configuration()
	if configurationErr != nil {
		fmt.Fprintln(os.Stderr, configurationErr)
		return 1
	}

	deps, depsErr := cli.NewDependencies(appCtx, *configuration, logger, func(line string) {
		fmt.Fprintln(os.Stderr, line)
	})
	if depsErr != nil {
		fmt.Fprintln(os.Stderr, depsErr)
		return 1
	}
	defer deps.Close()

	runner := cli.NewRunner(deps.Codec(), configuration.Strategy, os.Stdin, os.Stdout, os.Stderr)
	if runErr := runner.Run(appCtx, selectedMode, am.Arguments()); runErr != nil {
		if errors.Is(runErr, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(os.Stderr, runErr)
		return 1
	}
	return 0
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: %s <command> [flags]
Commands:
  hide-text    (ht)  - hide a message:  -in carrier -out result [-text msg] [-strategy s]
  reveal-text  (rt)  - print a message: -in carrier [-strategy s]
  hide-file    (hf)  - hide a file:     -in carrier -out result -file path [-name n] [-strategy s]
  reveal-file  (rf)  - extract a file:  -in carrier [-dir d] [-strategy s]
  capacity     (cap) - report how much a carrier holds: -in carrier
  version            - print the version
`, app.Name)
}
