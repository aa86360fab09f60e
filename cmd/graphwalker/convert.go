package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/graphwalker/graphwalker-go/internal/modelio"
)

// runConvert implements "graphwalker convert <INPUT> --format {json|dot}":
// read a model document in its JSON wire form and rewrite it either as
// pretty-printed JSON (round trip) or as DOT.
func runConvert(log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	format := fs.String("format", "json", "output format: json or dot")
	output := fs.String("out", "", "output path (default: stdout)")
	// Accept flags after INPUT as well as before it.
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		args = append(append([]string{}, args[1:]...), args[0])
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("convert requires exactly one INPUT path")
	}
	input := fs.Arg(0)

	set, err := modelio.ReadJSONFile(input)
	if err != nil {
		return err
	}
	log.Info().Str("input", input).Int("models", len(set.Models())).Msg("model document loaded")

	sink := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return err
		}
		defer f.Close()
		sink = f
	}

	switch *format {
	case "json":
		return modelio.WriteJSON(sink, set)
	case "dot":
		return modelio.WriteDOT(sink, set)
	default:
		return fmt.Errorf("unknown format %q, expected json or dot", *format)
	}
}
