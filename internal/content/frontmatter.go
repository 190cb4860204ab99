package content

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// frontMatter is the optional YAML header of a content file.
type frontMatter struct {
	Title       string `yaml:"title"`
	Slug        string `yaml:"slug"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
	Section     string `yaml:"section"`
	Order       int    `yaml:"order"`
	TOC         bool   `yaml:"toc"`
}

var fmDelim = []byte("---")

// splitFrontMatter separates a leading `---` delimited YAML block from the
// markdown body. Files without one return a zero frontMatter and the input.
func splitFrontMatter(src []byte) (frontMatter, []byte, error) {
	var fm frontMatter
	trimmed := bytes.TrimPrefix(src, []byte("\ufeff"))
	if !bytes.HasPrefix(trimmed, fmDelim) {
		return fm, src, nil
	}
	rest := trimmed[len(fmDelim):]
	nl := bytes.IndexByte(rest, '\n')
	if nl < 0 || len(bytes.TrimSpace(rest[:nl])) != 0 {
		return fm, src, nil
	}
	rest = rest[nl+1:]

	end := bytes.Index(rest, append([]byte("\n"), fmDelim...))
	var header, body []byte
	switch {
	case bytes.HasPrefix(rest, fmDelim):
		header, body = nil, rest[len(fmDelim):]
	case end >= 0:
		header, body = rest[:end], rest[end+1+len(fmDelim):]
	default:
		return fm, src, fmt.Errorf("unterminated front matter")
	}
	if i := bytes.IndexByte(body, '\n'); i >= 0 && len(bytes.TrimSpace(body[:i])) == 0 {
		body = body[i+1:]
	}

	if err := yaml.Unmarshal(header, &fm); err != nil {
		return fm, src, fmt.Errorf("parsing front matter: %w", err)
	}
	return fm, body, nil
}
