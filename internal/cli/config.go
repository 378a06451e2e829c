package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/happyhackingspace/wakachi"
	"github.com/happyhackingspace/wakachi/internal/storage"
	"github.com/happyhackingspace/wakachi/segmenter"
)

// Config keys. Nested keys map to WAKACHI_TRAIN_THRESHOLD style variables.
const (
	keyModel      = "model"
	keyNormalize  = "normalize"
	keyCharTypes  = "char_types"
	keyDedupe     = "corpus.dedupe"
	keyThreshold  = "train.threshold"
	keyIterations = "train.iterations"
	keyWorkers    = "train.workers"
	keyPoolSize   = "segment.workers"
)

// initConfig reads the config file and the WAKACHI_* environment.
func (c *CLI) initConfig() error {
	v := c.config
	if c.cfgFile != "" {
		v.SetConfigFile(c.cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
		v.SetConfigType("yaml")
		v.SetConfigName(".wakachi")
	}

	v.SetEnvPrefix("wakachi")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if c.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
		return nil
	}
	slog.Debug("Using config file", "path", v.ConfigFileUsed())
	return nil
}

// bindFlags binds config keys to flags of cmd. Binding happens when the
// command runs, since several commands share keys.
func (c *CLI) bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for key, name := range keys {
		if err := c.config.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

func addNormalizeFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("normalize", false, "NFKC-normalize and collapse whitespace before processing")
	cmd.Flags().String("char-types", "default", "Character type set: default or extended")
}

func normalizeKeys(keys map[string]string) map[string]string {
	keys[keyNormalize] = "normalize"
	keys[keyCharTypes] = "char-types"
	return keys
}

// charTypes resolves a character type set name.
func charTypes(name string) ([]segmenter.Pattern, error) {
	switch strings.ToLower(name) {
	case "", "default":
		return segmenter.DefaultPatterns, nil
	case "extended":
		return segmenter.ExtendedPatterns, nil
	}
	return nil, fmt.Errorf("unknown character type set %q (want default or extended)", name)
}

// trainConfig builds the training config from flags, config file and
// environment.
func (c *CLI) trainConfig() (wakachi.TrainConfig, error) {
	config := wakachi.DefaultTrainConfig()
	patterns, err := charTypes(c.config.GetString(keyCharTypes))
	if err != nil {
		return config, err
	}
	config.CharTypes = patterns
	config.Normalize = c.config.GetBool(keyNormalize)
	config.Trainer.Threshold = c.config.GetFloat64(keyThreshold)
	config.Trainer.Iterations = c.config.GetInt(keyIterations)
	config.Trainer.Workers = c.config.GetInt(keyWorkers)
	config.Logger = slog.Default()
	return config, nil
}

// segmenterOptions builds facade options from flags, config file and
// environment.
func (c *CLI) segmenterOptions() ([]wakachi.Option, error) {
	patterns, err := charTypes(c.config.GetString(keyCharTypes))
	if err != nil {
		return nil, err
	}
	return []wakachi.Option{
		wakachi.WithCharTypes(patterns...),
		wakachi.WithNormalization(c.config.GetBool(keyNormalize)),
		wakachi.WithPoolSize(c.config.GetInt(keyPoolSize)),
		wakachi.WithLogger(slog.Default()),
	}, nil
}

// readCorpus reads gold sentences from a file or a folder of *.txt files.
func (c *CLI) readCorpus(path string) ([]string, error) {
	opts := storage.DefaultIterOptions()
	opts.DropDuplicates = c.config.GetBool(keyDedupe)
	opts.Normalize = c.config.GetBool(keyNormalize)
	opts.Verbose = c.verbose
	sentences, err := storage.NewStorage(path).IterSentences(opts)
	if err != nil {
		return nil, err
	}
	if len(sentences) == 0 {
		return nil, fmt.Errorf("no sentences found in %s", path)
	}
	return sentences, nil
}
