// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package draft

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/cockroachdb/errors"
)

const slugRunes = 40

// Slug reduces topic to letters, digits and hyphens for use in a file name:
// other characters are dropped, spaces become hyphens and the result is
// lower-cased and cut to 40 characters.
func Slug(topic string) string {
	var b strings.Builder
	for _, r := range topic {
		switch {
		case r == ' ':
			b.WriteRune('-')
		case r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		}
	}
	return truncate(strings.ToLower(b.String()), slugRunes)
}

// SaveMarkdown writes content to dir/<slug>_<YYYYMMDD_HHMMSS>.md, creating
// dir when needed, and returns the file path.
func SaveMarkdown(dir, topic, content string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "creating %s", dir)
	}
	path := filepath.Join(dir, Slug(topic)+"_"+now.Format("20060102_150405")+".md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", errors.Wrapf(err, "writing %s", path)
	}
	return path, nil
}
