package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/graphwalker/graphwalker-go/internal/machine"
	"github.com/graphwalker/graphwalker-go/internal/modelio"
)

// runOffline implements "graphwalker offline <INPUT> [--seed N]
// [--profile-out PATH]": load a model document, run Walk to completion, and
// emit each Step as a line of JSON on stdout. If --profile-out is given, the
// full Profile is also written there in msgpack form once the walk
// completes.
func runOffline(log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("offline", flag.ContinueOnError)
	seed := fs.Uint64("seed", 1, "deterministic RNG seed")
	profileOut := fs.String("profile-out", "", "also write the completed Profile here in msgpack form")
	// Accept flags after INPUT as well as before it.
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		args = append(append([]string{}, args[1:]...), args[0])
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("offline requires exactly one INPUT path")
	}

	set, err := modelio.ReadJSONFile(fs.Arg(0))
	if err != nil {
		return err
	}

	m := machine.New(log)
	m.Seed(*seed)
	if err := m.LoadModels(set); err != nil {
		return err
	}

	log.Info().Uint64("seed", *seed).Msg("starting offline walk")
	if err := m.Walk(os.Stdout); err != nil {
		return err
	}

	log.Info().Int("steps", m.Profile().Len()).Str("runId", m.RunID()).Msg("walk complete")

	if *profileOut != "" {
		f, err := os.Create(*profileOut)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := modelio.WriteProfileMsgpack(f, m.Profile()); err != nil {
			return err
		}
	}
	return nil
}
