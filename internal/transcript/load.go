package transcript

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ciricc/go-transcript-player/internal/model/word"
	"github.com/ciricc/go-transcript-player/internal/validate"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidWord       = errors.New("invalid transcript word")
	ErrUnsupportedFormat = errors.New("unsupported transcript format")
)

// Format of a transcript document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// maxMillis is the largest millisecond value representable as a time.Duration.
const maxMillis = math.MaxInt64 / int64(time.Millisecond)

// record is the on-disk shape of a word. Times are integer milliseconds.
type record struct {
	Word      string `json:"word" yaml:"word"`
	Text      string `json:"text" yaml:"text"`
	StartTime int64  `json:"start_time" yaml:"start_time"`
	Duration  int64  `json:"duration" yaml:"duration"`
}

// LoadFile reads a transcript from path, choosing the decoder by extension.
func LoadFile(path string) ([]word.Word, error) {
	format, err := formatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()

	return Load(f, format)
}

// Load decodes and checks a transcript document.
func Load(r io.Reader, format Format) ([]word.Word, error) {
	var records []record

	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&records); err != nil {
			return nil, fmt.Errorf("decode json transcript: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&records); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml transcript: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	words := make([]word.Word, 0, len(records))
	for i, rec := range records {
		text := rec.Word
		if text == "" {
			text = rec.Text
		}

		if err := validate.Word(text); err != nil {
			return nil, fmt.Errorf("%w %d: %w", ErrInvalidWord, i, err)
		}
		if rec.StartTime < 0 || rec.Duration < 0 {
			return nil, fmt.Errorf("%w %d: negative timing", ErrInvalidWord, i)
		}
		if rec.StartTime > maxMillis || rec.Duration > maxMillis-rec.StartTime {
			return nil, fmt.Errorf("%w %d: timing exceeds %d ms", ErrInvalidWord, i, maxMillis)
		}

		words = append(words, word.Word{
			Text:     text,
			Start:    time.Duration(rec.StartTime) * time.Millisecond,
			Duration: time.Duration(rec.Duration) * time.Millisecond,
		})
	}

	return words, nil
}

func formatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}
