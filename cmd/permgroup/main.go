// Command permgroup drives the permutation-group engine's end-to-end
// scenarios and exposes a CPU-profiling entrypoint. It takes no
// third-party CLI framework dependency, matching the rest of this module's
// preference for flag over a heavier option.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/permgroup/engine/internal/diag"
)

func newLogger() zerolog.Logger {
	out := os.Stderr
	var writer = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	if isatty.IsTerminal(out.Fd()) {
		writer.Out = colorable.NewColorable(out)
	}
	return zerolog.New(writer).With().Timestamp().Logger()
}

func main() {
	log := newLogger()
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: permgroup <scenarios|profile> [flags]")
		os.Exit(2)
	}

	switch os.Args[1] {
	case "scenarios":
		runScenariosCmd(log, os.Args[2:])
	case "profile":
		runProfileCmd(log, os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n", os.Args[1])
		os.Exit(2)
	}
}

func runScenariosCmd(log zerolog.Logger, args []string) {
	fs := flag.NewFlagSet("scenarios", flag.ExitOnError)
	only := fs.String("only", "", "comma-separated scenario names to run (default: all)")
	_ = fs.Parse(args)

	results, err := RunScenarios(log, parseOnly(*only))
	if err != nil {
		log.Fatal().Err(err).Msg("scenario run failed")
	}
	for _, r := range results {
		fmt.Println(r.String())
	}
}

func runProfileCmd(log zerolog.Logger, args []string) {
	fs := flag.NewFlagSet("profile", flag.ExitOnError)
	_ = fs.Parse(args)

	_, report, err := diag.CaptureCPUProfile(func() error {
		_, err := RunScenarios(log, nil)
		return err
	})
	if err != nil {
		log.Fatal().Err(err).Msg("profile run failed")
	}
	fmt.Println("top CPU consumers across the scenario suite:")
	fmt.Println(report)
}

func parseOnly(s string) map[string]bool {
	if s == "" {
		return nil
	}
	out := make(map[string]bool)
	for _, name := range strings.Split(s, ",") {
		if name != "" {
			out[name] = true
		}
	}
	return out
}
