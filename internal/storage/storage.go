// Package storage reads gold-segmented corpora: one sentence per line,
// words separated by single spaces.
package storage

import (
	"bufio"
	"crypto/md5"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/happyhackingspace/wakachi/internal/textutil"
)

// Storage wraps a corpus location: a single text file or a folder of
// *.txt files.
type Storage struct {
	Folder string
}

// NewStorage creates a Storage for the given file or folder.
func NewStorage(folder string) *Storage {
	return &Storage{Folder: folder}
}

// IterOptions controls sentence iteration behavior.
type IterOptions struct {
	DropEmpty      bool
	DropDuplicates bool
	Normalize      bool // NFKC width folding and whitespace collapsing
	Verbose        bool
}

// DefaultIterOptions returns the default options for iterating sentences.
func DefaultIterOptions() IterOptions {
	return IterOptions{
		DropEmpty: true,
	}
}

// Files returns the corpus files in lexical order. A Storage pointing at a
// regular file yields just that file.
func (s *Storage) Files() ([]string, error) {
	info, err := os.Stat(s.Folder)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{s.Folder}, nil
	}

	files, err := filepath.Glob(filepath.Join(s.Folder, "*.txt"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// IterSentences reads every corpus file in order and returns its sentences.
// Duplicate detection spans all files.
func (s *Storage) IterSentences(opts IterOptions) ([]string, error) {
	files, err := s.Files()
	if err != nil {
		return nil, fmt.Errorf("list corpus files: %w", err)
	}

	f := newFilter(opts)
	for _, path := range files {
		if opts.Verbose {
			slog.Info("Reading corpus file", "path", path)
		}
		if err := f.readFile(path); err != nil {
			return nil, err
		}
	}
	slog.Debug("Corpus loaded", "files", len(files), "sentences", len(f.sentences), "dropped", f.dropped)
	return f.sentences, nil
}

// ReadSentences reads sentences from r with the same filtering as
// IterSentences.
func ReadSentences(r io.Reader, opts IterOptions) ([]string, error) {
	f := newFilter(opts)
	if err := f.read(r); err != nil {
		return nil, err
	}
	return f.sentences, nil
}

type filter struct {
	opts      IterOptions
	seen      map[[md5.Size]byte]bool
	sentences []string
	dropped   int
}

func newFilter(opts IterOptions) *filter {
	return &filter{opts: opts, seen: make(map[[md5.Size]byte]bool)}
}

func (f *filter) readFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := f.read(file); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

func (f *filter) read(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		f.add(scanner.Text())
	}
	return scanner.Err()
}

func (f *filter) add(line string) {
	if f.opts.Normalize {
		line = textutil.Normalize(line)
	} else {
		line = strings.TrimSpace(line)
	}

	if f.opts.DropEmpty && line == "" {
		f.dropped++
		return
	}

	// Deduplication by sentence content hash
	if f.opts.DropDuplicates {
		hash := md5.Sum([]byte(line))
		if f.seen[hash] {
			f.dropped++
			return
		}
		f.seen[hash] = true
	}

	f.sentences = append(f.sentences, line)
}
