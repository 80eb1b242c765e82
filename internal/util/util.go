// Package util provides content hashing and markdown front matter parsing.
package util

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/gomarkdown/markdown"
	"github.com/mmarkdown/mmark/v2/mast"
)

// PostMeta is the TOML front matter of an imported markdown file.
type PostMeta struct {
	*mast.TitleData

	// Consumed is the byte offset where the front matter block ends, so the
	// body can be sliced off for the editor.
	Consumed int
}

// FirstAuthor returns the full name of the first listed author, if any.
func (m *PostMeta) FirstAuthor() string {
	if m == nil || len(m.Author) == 0 {
		return ""
	}
	return m.Author[0].Fullname
}

func ContentHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

func ContentHashString(content string) string {
	return ContentHash([]byte(content))
}

// GetFrontMatter parses a leading %%%-delimited TOML block.
func GetFrontMatter(md []byte) (*PostMeta, error) {
	md = markdown.NormalizeNewlines(md)
	md = bytes.TrimLeft(md, "\n \t\r")

	delimiter := []byte("%%%")

	if len(md) < 2*len(delimiter) {
		return nil, fmt.Errorf("invalid front matter format")
	}

	first := bytes.Index(md[:len(delimiter)+1], delimiter)
	if first == -1 {
		return nil, fmt.Errorf("invalid front matter format")
	}

	second := bytes.Index(md[first+len(delimiter):], delimiter)
	if second == -1 {
		return nil, fmt.Errorf("invalid front matter format")
	}

	end := second + 2*len(delimiter) + 1
	if end > len(md) {
		return nil, fmt.Errorf("invalid front matter format")
	}

	frontMatter := md[len(delimiter) : end-len(delimiter)-1]
	info := &PostMeta{
		TitleData: &mast.TitleData{},
	}

	if _, err := toml.Decode(string(frontMatter), info); err != nil {
		return nil, fmt.Errorf("failed to decode front matter: %w", err)
	}

	info.Consumed = end
	return info, nil
}

// SplitFrontMatter parses the front matter and returns it alongside the
// markdown body that follows it.
func SplitFrontMatter(md []byte) (*PostMeta, []byte, error) {
	md = markdown.NormalizeNewlines(md)
	md = bytes.TrimLeft(md, "\n \t\r")

	meta, err := GetFrontMatter(md)
	if err != nil {
		return nil, nil, err
	}
	return meta, md[meta.Consumed:], nil
}
