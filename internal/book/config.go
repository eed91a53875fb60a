package book

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the book metadata written to book.toml.
type Config struct {
	Title string
}

type bookFile struct {
	Book bookSection `toml:"book"`
}

type bookSection struct {
	Authors      []string `toml:"authors"`
	Language     string   `toml:"language"`
	Multilingual bool     `toml:"multilingual"`
	Src          string   `toml:"src"`
	Title        string   `toml:"title,omitempty"`
}

// SourceDir is the book source directory below the staging root.
const SourceDir = "src"

// EncodeConfig renders book.toml.
func EncodeConfig(cfg Config) ([]byte, error) {
	f := bookFile{Book: bookSection{
		Authors:  []string{},
		Language: "en",
		Src:      SourceDir,
		Title:    cfg.Title,
	}}
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.Indent = ""
	if err := enc.Encode(f); err != nil {
		return nil, fmt.Errorf("encode book.toml: %w", err)
	}
	return buf.Bytes(), nil
}
