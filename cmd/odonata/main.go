// main.go is Odonata's entrypoint: it prints the startup banner the
// teacher's main.go prints, optionally loads a TOML configuration file,
// and hands stdin/stdout to the UCI session loop.
//
// Grounded on the teacher's zurichess/main.go (banner line, bufio reader
// over stdin feeding a command dispatch loop) adapted to read a
// -config flag into engine.LoadConfig and to log through zerolog instead
// of the standard log package.

package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/odonata-engine/odonata/internal/logging"
	"github.com/odonata-engine/odonata/internal/uci"
)

var (
	configPath = flag.String("config", "", "path to a TOML configuration file")
	logLevel   = flag.String("log-level", "info", "zerolog level (debug, info, warn, error)")
	version    = flag.Bool("version", false, "print version and exit")
)

const buildVersion = "(devel)"

func main() {
	fmt.Printf("Odonata %s, built with %s, running on %s/%s\n",
		buildVersion, runtime.Version(), runtime.GOOS, runtime.GOARCH)

	flag.Parse()
	if *version {
		return
	}

	log := logging.New(*logLevel)

	session := uci.New(os.Stdout, log)
	if *configPath != "" {
		if err := session.LoadConfigFile(*configPath); err != nil {
			log.Error().Err(err).Str("path", *configPath).Msg("failed to load configuration")
			os.Exit(1)
		}
	}

	session.Run(os.Stdin)
}
