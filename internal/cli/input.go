package cli

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"strings"

	"github.com/happyhackingspace/wakachi/internal/htmlutil"
)

// input is text to segment along with where it came from.
type input struct {
	data   []byte
	source string
	html   bool // served or declared as HTML
}

func isStdinTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// readTarget reads a URL or a local file.
func readTarget(target string) (*input, error) {
	if isURL(target) {
		return fetchURL(target)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	lower := strings.ToLower(target)
	return &input{
		data:   data,
		source: target,
		html:   strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm"),
	}, nil
}

func fetchURL(target string) (*input, error) {
	slog.Debug("Fetching URL", "url", target)
	resp, err := http.Get(target)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch URL: HTTP %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	return &input{
		data:   body,
		source: target,
		html:   mediaType == "text/html" || mediaType == "application/xhtml+xml",
	}, nil
}

// readStdin reads stdin. A single URL line is fetched instead.
func readStdin(r io.Reader) (*input, error) {
	slog.Debug("Reading from stdin")
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	if content := strings.TrimSpace(string(body)); isURL(content) && !strings.ContainsAny(content, " \n") {
		slog.Debug("Stdin contains URL", "url", content)
		return fetchURL(content)
	}
	return &input{data: body, source: "stdin"}, nil
}

// lines splits the input into segmentable lines. HTML is reduced to its
// visible text blocks.
func (in *input) lines(asHTML bool) ([]string, error) {
	if asHTML || in.html {
		blocks, err := htmlutil.ReadText(bytes.NewReader(in.data))
		if err != nil {
			return nil, fmt.Errorf("parse HTML: %w", err)
		}
		return blocks, nil
	}

	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(in.data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	return lines, scanner.Err()
}
