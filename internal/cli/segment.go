package cli

import (
	"bufio"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/happyhackingspace/wakachi"
)

func (c *CLI) newSegmentCommand() *cobra.Command {
	var asHTML bool

	cmd := &cobra.Command{
		Use:   "segment [url-or-file]",
		Short: "Segment text from a file, URL, or stdin into words",
		Args:  cobra.MaximumNArgs(1),
		Example: `  # Segment a text file, one sentence per line
  wakachi segment input.txt --model model.txt

  # Pipe text through
  echo "これはテストです。" | wakachi segment --model model.txt

  # Segment the visible text of a web page
  wakachi segment https://example.jp/ --model model.txt

  # Treat a local file as HTML
  wakachi segment page.txt --html --model model.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := normalizeKeys(map[string]string{
				keyModel:    "model",
				keyPoolSize: "workers",
			})
			if err := c.bindFlags(cmd, keys); err != nil {
				return err
			}

			var in *input
			var err error
			if len(args) == 0 {
				if isStdinTerminal() {
					return cmd.Help()
				}
				in, err = readStdin(cmd.InOrStdin())
			} else {
				in, err = readTarget(args[0])
			}
			if err != nil {
				return err
			}
			lines, err := in.lines(asHTML)
			if err != nil {
				return err
			}
			slog.Debug("Input read", "source", in.source, "bytes", len(in.data), "lines", len(lines))

			s, err := c.loadSegmenter()
			if err != nil {
				return err
			}

			start := time.Now()
			results, err := s.SegmentLines(cmd.Context(), lines)
			if err != nil {
				return err
			}
			slog.Debug("Segmentation completed", "lines", len(lines), "duration", time.Since(start))

			w := bufio.NewWriter(cmd.OutOrStdout())
			for _, words := range results {
				_, _ = w.WriteString(strings.Join(words, " "))
				_ = w.WriteByte('\n')
			}
			return w.Flush()
		},
	}

	cmd.Flags().String("model", "", "Path to model file (default: search for "+wakachi.DefaultModelName+")")
	cmd.Flags().Int("workers", 0, "Lines segmented concurrently (default: number of CPUs)")
	cmd.Flags().BoolVar(&asHTML, "html", false, "Treat the input as HTML and segment its visible text")
	addNormalizeFlags(cmd)
	return cmd
}

func (c *CLI) loadSegmenter() (*wakachi.Segmenter, error) {
	opts, err := c.segmenterOptions()
	if err != nil {
		return nil, err
	}
	path := c.config.GetString(keyModel)
	start := time.Now()
	s, err := wakachi.New(path, opts...)
	if err != nil {
		return nil, err
	}
	slog.Debug("Model loaded", "path", path, "features", s.Model().NumFeatures(), "duration", time.Since(start))
	return s, nil
}
