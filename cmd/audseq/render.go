// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ik5/audseq"
	"github.com/ik5/audseq/internal/config"
)

func render(cfg config.Config, scenePath, outPath string, stdout io.Writer) error {
	s, err := open(cfg, scenePath)
	if err != nil {
		return err
	}
	defer s.reader.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	if err := audseq.WriteWAV(out, s.reader, s.frames); err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	specs := s.reader.Specs()
	fmt.Fprintf(stdout, "wrote %s: %.2fs, %d Hz, %d ch\n",
		outPath, specs.Seconds(s.frames), specs.Rate, specs.Channels)

	return nil
}
