package categories

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/clippings/internal/domain"
)

// Loader reads the category enumeration offered by the filter and upload selectors.
type Loader struct {
	filePath string
}

// NewLoader creates a loader. An empty path selects the built-in enumeration.
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and normalizes the category file: names are trimmed, blanks and
// duplicates dropped, file order kept.
func (l *Loader) Load() (domain.Categories, error) {
	if l.filePath == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read category file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse category yaml: %w", err)
	}

	out := normalize(f.Categories)
	if len(out) == 0 {
		return nil, fmt.Errorf("category file %s lists no categories", l.filePath)
	}
	return out, nil
}

// Default returns a copy of the built-in 12 categories.
func Default() domain.Categories {
	return append(domain.Categories(nil), domain.DefaultCategories...)
}

func normalize(in []string) domain.Categories {
	seen := make(map[string]struct{}, len(in))
	out := make(domain.Categories, 0, len(in))
	for _, name := range in {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
