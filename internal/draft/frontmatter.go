// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package draft

import (
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/contentforge/pkg/types"
)

const frontMatterDelim = "---"

// rawFrontMatter accepts anahtar_kelimeler as either a list or a
// comma-separated string.
type rawFrontMatter struct {
	Title       string              `yaml:"baslik"`
	Description string              `yaml:"aciklama"`
	Keywords    yaml.Node           `yaml:"anahtar_kelimeler"`
	ReadingTime string              `yaml:"okuma_suresi"`
	Format      types.ContentFormat `yaml:"format"`
}

// ParseFrontMatter splits a leading "---" delimited YAML block from content.
// It returns the decoded front matter and the remaining body. When content
// has no block, or the block is not valid YAML, it returns the zero
// FrontMatter and content unchanged.
func ParseFrontMatter(content string) (types.FrontMatter, string) {
	trimmed := strings.TrimLeft(content, " \t\r\n")
	if !strings.HasPrefix(trimmed, frontMatterDelim+"\n") && !strings.HasPrefix(trimmed, frontMatterDelim+"\r\n") {
		return types.FrontMatter{}, content
	}
	rest := trimmed[strings.Index(trimmed, "\n")+1:]

	end := -1
	if strings.HasPrefix(rest, frontMatterDelim) {
		end = 0
	} else if i := strings.Index(rest, "\n"+frontMatterDelim); i >= 0 {
		end = i + 1
	}
	if end < 0 {
		return types.FrontMatter{}, content
	}
	block := rest[:end]
	body := rest[end+len(frontMatterDelim):]
	body = strings.TrimLeft(body, "\r\n")

	var raw rawFrontMatter
	if err := yaml.Unmarshal([]byte(block), &raw); err != nil {
		return types.FrontMatter{}, content
	}
	return types.FrontMatter{
		Title:       raw.Title,
		Description: raw.Description,
		Keywords:    keywords(&raw.Keywords),
		ReadingTime: raw.ReadingTime,
		Format:      raw.Format,
	}, body
}

func keywords(n *yaml.Node) []string {
	switch n.Kind {
	case yaml.SequenceNode:
		var out []string
		for _, item := range n.Content {
			if s := strings.TrimSpace(item.Value); s != "" {
				out = append(out, s)
			}
		}
		return out
	case yaml.ScalarNode:
		var out []string
		for _, part := range strings.Split(n.Value, ",") {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
