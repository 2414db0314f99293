package cmd

import (
	"fmt"

	"songbook/config"
	"songbook/services"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// RunExport writes a songs.json index of the songs directory to output
func RunExport(cfg *config.Config, output string) error {
	if !services.DirExists(cfg.SongsDirectory) {
		return fmt.Errorf("%w: %s", services.ErrDirectoryNotFound, cfg.SongsDirectory)
	}

	total, err := services.CountSongFiles(cfg.SongsDirectory)
	if err != nil {
		return err
	}

	bar := progressbar.Default(int64(total), "indexing songs")
	index, err := services.BuildIndex(cfg.SongsDirectory, func(string) {
		bar.Add(1)
	})
	if err != nil {
		return err
	}
	bar.Finish()

	if err := services.WriteIndex(output, index); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	color.Green("Successfully generated %s with %d songs.", output, len(index))
	return nil
}
