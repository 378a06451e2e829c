package cli

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/happyhackingspace/wakachi"
)

func (c *CLI) newExtractCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <corpus> <featurefile>",
		Short: "Extract boundary features from a gold-segmented corpus",
		Args:  cobra.ExactArgs(2),
		Example: `  wakachi extract corpus.txt features.txt
  wakachi extract data/ features.txt --dedupe`,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := normalizeKeys(map[string]string{keyDedupe: "dedupe"})
			if err := c.bindFlags(cmd, keys); err != nil {
				return err
			}
			config, err := c.trainConfig()
			if err != nil {
				return err
			}

			corpusPath, featuresPath := args[0], args[1]
			sentences, err := c.readCorpus(corpusPath)
			if err != nil {
				return err
			}
			slog.Info("Extracting features", "corpus", corpusPath, "sentences", len(sentences), "output", featuresPath)

			f, err := os.Create(featuresPath)
			if err != nil {
				return fmt.Errorf("create feature file: %w", err)
			}
			w := bufio.NewWriter(f)

			start := time.Now()
			n, err := wakachi.Extract(cmd.Context(), sentences, w, config)
			if err == nil {
				err = w.Flush()
			}
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
			slog.Info("Features extracted", "instances", n, "path", featuresPath, "duration", time.Since(start))
			return nil
		},
	}

	cmd.Flags().Bool("dedupe", false, "Drop duplicate sentences")
	addNormalizeFlags(cmd)
	return cmd
}
