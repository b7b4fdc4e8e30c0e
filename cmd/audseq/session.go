// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/ik5/audseq/internal/config"
	"github.com/ik5/audseq/scene"
	"github.com/ik5/audseq/sequence"
)

// session is a loaded scene ready to render.
type session struct {
	reader *sequence.Reader
	frames int
}

func open(cfg config.Config, path string) (*session, error) {
	sc, err := scene.Load(path)
	if err != nil {
		return nil, err
	}

	if cfg.Output.Rate > 0 {
		sc.Specs.Rate = cfg.Output.Rate
	}
	if cfg.Output.Channels > 0 {
		sc.Specs.Channels = cfg.Output.Channels
	}

	seq, err := sc.Build()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", path, err)
	}

	logger := log.New(io.Discard, "", 0)
	if cfg.Verbose {
		logger = log.New(os.Stderr, "audseq: ", log.LstdFlags)
	}

	r, err := sequence.NewReader(seq,
		sequence.WithQuality(cfg.Quality),
		sequence.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	seconds := cfg.Duration
	if seconds <= 0 {
		seconds = sc.Length()
	}

	return &session{
		reader: r,
		frames: int(math.Ceil(seconds * float64(sc.Specs.Rate))),
	}, nil
}
