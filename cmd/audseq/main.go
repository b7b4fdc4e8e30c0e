// SPDX-License-Identifier: EPL-2.0

// Command audseq renders or plays a YAML scene.
//
//	audseq render [flags] scene.yaml out.wav
//	audseq play [flags] scene.yaml
//
// Defaults come from AUDSEQ_* environment variables (see internal/config);
// flags override them.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/ik5/audseq/internal/config"
)

var errUsage = errors.New("usage: audseq render|play [flags] scene.yaml [out.wav]")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		log.Printf("audseq: %v", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) < 1 {
		return errUsage
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.IntVar(&cfg.Output.Rate, "rate", cfg.Output.Rate, "output sample rate, 0 keeps the scene's")
	fs.IntVar(&cfg.Output.Channels, "channels", cfg.Output.Channels, "output channels, 0 keeps the scene's")
	fs.TextVar(&cfg.Quality, "quality", cfg.Quality, "resampling quality: linear or cubic")
	fs.Float64Var(&cfg.Duration, "duration", cfg.Duration, "seconds to render, 0 uses the scene length")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "log device errors")

	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	switch args[0] {
	case "render":
		if fs.NArg() != 2 {
			return errUsage
		}
		return render(cfg, fs.Arg(0), fs.Arg(1), stdout)

	case "play":
		if fs.NArg() != 1 {
			return errUsage
		}
		return play(ctx, cfg, fs.Arg(0))

	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
}
