// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/ik5/audseq"
	"github.com/ik5/audseq/internal/config"
)

const pollInterval = 50 * time.Millisecond

// play streams the scene to the default output until it ends or ctx is
// cancelled.
func play(ctx context.Context, cfg config.Config, scenePath string) error {
	s, err := open(cfg, scenePath)
	if err != nil {
		return err
	}
	defer s.reader.Close()

	specs := s.reader.Specs()
	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   specs.Rate,
		ChannelCount: specs.Channels,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}
	<-ready

	player := otoCtx.NewPlayer(audseq.NewPCM16Reader(s.reader, s.frames))
	defer player.Close()

	log.Printf("playing %s: %.2fs, %d Hz, %d ch", scenePath, specs.Seconds(s.frames), specs.Rate, specs.Channels)
	player.Play()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			return nil
		case <-ticker.C:
		}
	}

	if err := player.Err(); err != nil {
		return fmt.Errorf("playback: %w", err)
	}

	return nil
}
