package pipeline

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/alnah/go-mdpdf/internal/yamlutil"
)

// ErrMetadata indicates a metadata block that is not a YAML mapping.
var ErrMetadata = errors.New("invalid metadata block")

const frontMatterFence = "---"

// Metadata holds document properties read from a leading metadata block.
type Metadata struct {
	Title       string
	Author      string
	Date        string
	Description string
	Keywords    string
	// Extra holds every other scalar key.
	Extra map[string]string
}

// ExtraKeys returns the Extra keys in sorted order.
func (m Metadata) ExtraKeys() []string {
	keys := make([]string, 0, len(m.Extra))
	for k := range m.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SplitFrontMatter separates a leading "---" block from the Markdown body.
// The block must open on the first line and close with "---" or "..." on a
// line of its own. Content is expected to use "\n" line endings.
func SplitFrontMatter(content string) (block, body string, ok bool) {
	if !strings.HasPrefix(content, frontMatterFence+"\n") {
		return "", content, false
	}

	rest := content[len(frontMatterFence)+1:]
	offset := 0
	for {
		end := strings.IndexByte(rest[offset:], '\n')
		var line string
		if end == -1 {
			line = rest[offset:]
		} else {
			line = rest[offset : offset+end]
		}

		if trimmed := strings.TrimRight(line, " \t"); trimmed == frontMatterFence || trimmed == "..." {
			block = rest[:offset]
			if end == -1 {
				return block, "", true
			}
			return block, rest[offset+end+1:], true
		}

		if end == -1 {
			return "", content, false
		}
		offset += end + 1
	}
}

// metadataFields maps lower-cased keys to a field and a rank. When several
// keys fill one field, the lowest rank wins: the canonical key, then its
// alias. Ties go to the first key in sorted order.
var metadataFields = map[string]struct {
	field string
	rank  int
}{
	"title":       {"title", 0},
	"author":      {"author", 0},
	"authors":     {"author", 2},
	"date":        {"date", 0},
	"description": {"description", 0},
	"subject":     {"description", 2},
	"keywords":    {"keywords", 0},
	"tags":        {"keywords", 2},
}

// ParseMetadata decodes a metadata block. Well-known keys are mapped to
// fields (subject aliases description, tags aliases keywords); the rest go
// to Extra. An empty block yields empty metadata.
func ParseMetadata(block string) (Metadata, error) {
	var meta Metadata
	if strings.TrimSpace(block) == "" {
		return meta, nil
	}

	values, err := yamlutil.StringMap([]byte(block))
	if err != nil {
		return meta, fmt.Errorf("%w: %v", ErrMetadata, err)
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	best := make(map[string]int)
	for _, key := range keys {
		f, ok := metadataFields[strings.ToLower(key)]
		if !ok {
			if meta.Extra == nil {
				meta.Extra = make(map[string]string)
			}
			meta.Extra[key] = values[key]
			continue
		}

		rank := f.rank
		if key != strings.ToLower(key) {
			rank++ // "Title" loses to "title"
		}
		if r, seen := best[f.field]; seen && r <= rank {
			continue
		}
		best[f.field] = rank

		switch f.field {
		case "title":
			meta.Title = values[key]
		case "author":
			meta.Author = values[key]
		case "date":
			meta.Date = values[key]
		case "description":
			meta.Description = values[key]
		case "keywords":
			meta.Keywords = values[key]
		}
	}
	return meta, nil
}
