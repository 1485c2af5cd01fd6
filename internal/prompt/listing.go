package prompt

import (
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// WorkDirListing returns up to max entry names from dir for inclusion in the
// prompt context. Directories carry a trailing slash. Entries matching any of
// the ignore globs are skipped; an unreadable dir yields nil.
func WorkDirListing(dir string, ignore []string, max int) []string {
	if max <= 0 {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if ignored(name, ignore) {
			continue
		}
		if entry.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}

	sort.Strings(names)
	if len(names) > max {
		names = names[:max]
	}
	return names
}

func ignored(name string, patterns []string) bool {
	for _, pattern := range patterns {
		// An invalid pattern never matches; the listing is advisory
		// context, not worth failing a request over.
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}
