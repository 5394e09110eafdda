package file

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/hedwig/internal/core/domain"
)

//go:embed keywords.toml
var defaultKeywords []byte

// keywordsFile is the TOML layout:
//
//	[[groups]]
//	name = "JPG"
//	patterns = ["JPG|JPEG|libjpeg-turbo"]
type keywordsFile struct {
	Groups []struct {
		Name     string   `toml:"name"`
		Patterns []string `toml:"patterns"`
	} `toml:"groups"`
}

// DefaultKeywords returns the built-in keyword table.
func DefaultKeywords() *domain.KeywordTable {
	table, err := ParseKeywords(defaultKeywords)
	if err != nil {
		panic(fmt.Sprintf("embedded keywords: %v", err))
	}
	return table
}

// LoadKeywords reads a keyword table. An empty path returns the built-in
// table. Files ending in .json use the ordered JSON layout; anything else is
// parsed as TOML.
func LoadKeywords(path string) (*domain.KeywordTable, error) {
	if path == "" {
		return DefaultKeywords(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keywords: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseKeywordsJSON(data)
	}
	return ParseKeywords(data)
}

// ParseKeywords parses the TOML layout.
func ParseKeywords(data []byte) (*domain.KeywordTable, error) {
	var f keywordsFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: parse keywords: %w", domain.ErrInvalidKeywords, err)
	}

	groups := make([]domain.KeywordGroup, 0, len(f.Groups))
	for _, g := range f.Groups {
		groups = append(groups, domain.NewKeywordGroup(g.Name, g.Patterns...))
	}
	return domain.NewKeywordTable(groups...)
}

// ParseKeywordsJSON parses a JSON object of groups, keeping document order.
// A group is either a list of patterns or an object keyed by pattern:
//
//	{"JPG": ["JPG|JPEG"], "PNG": {"PNG": 0}}
//
// Counter values in the object form are ignored; every run starts at zero.
func ParseKeywordsJSON(data []byte) (*domain.KeywordTable, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var groups []domain.KeywordGroup
	for dec.More() {
		name, err := stringToken(dec)
		if err != nil {
			return nil, err
		}
		patterns, err := readPatterns(dec)
		if err != nil {
			return nil, fmt.Errorf("%w: group %q: %w", domain.ErrInvalidKeywords, name, err)
		}
		groups = append(groups, domain.NewKeywordGroup(name, patterns...))
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	if err := expectEOF(dec); err != nil {
		return nil, err
	}
	return domain.NewKeywordTable(groups...)
}

// readPatterns reads a group value: an array of strings or an object whose
// keys are patterns.
func readPatterns(dec *json.Decoder) ([]string, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	var patterns []string
	switch tok {
	case json.Delim('['):
		for dec.More() {
			p, err := stringToken(dec)
			if err != nil {
				return nil, err
			}
			patterns = append(patterns, p)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
	case json.Delim('{'):
		for dec.More() {
			p, err := stringToken(dec)
			if err != nil {
				return nil, err
			}
			var ignored json.RawMessage
			if err := dec.Decode(&ignored); err != nil {
				return nil, err
			}
			patterns = append(patterns, p)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New("expected a list or an object of patterns")
	}
	return patterns, nil
}

func stringToken(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", keywordsSyntax(err)
	}
	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("%w: expected a string, got %v", domain.ErrInvalidKeywords, tok)
	}
	return s, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return keywordsSyntax(err)
	}
	if tok != want {
		return fmt.Errorf("%w: expected %q, got %v", domain.ErrInvalidKeywords, want, tok)
	}
	return nil
}

// expectEOF rejects anything but whitespace after the top-level object.
func expectEOF(dec *json.Decoder) error {
	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: trailing content: %w", domain.ErrInvalidKeywords, err)
	}
	return fmt.Errorf("%w: trailing content %v after keyword object", domain.ErrInvalidKeywords, tok)
}

func keywordsSyntax(err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("%w: parse keywords: %w", domain.ErrInvalidKeywords, err)
}
