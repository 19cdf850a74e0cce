package poster

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// Suggest lists up to limit image files in the scope directory whose names
// fuzzily resemble title, best match first. It helps spot posters that
// exist under a slightly different name than the collection.
func (r *Resolver) Suggest(scope Scope, title string, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, nil
	}
	entries, err := os.ReadDir(r.ScopeDir(scope))
	if err != nil {
		return nil, err
	}

	var files, stems []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		if _, ok := imageExtensions[strings.ToLower(ext)]; !ok {
			continue
		}
		files = append(files, name)
		stems = append(stems, strings.TrimSuffix(strings.TrimSuffix(name, ext), " Collection"))
	}
	if len(files) == 0 {
		return nil, nil
	}

	// Score both directions: the title may abbreviate a longer file name, or
	// a short file name may abbreviate a longer title.
	scores := make(map[int]int)
	record := func(index, score int) {
		if current, ok := scores[index]; !ok || score > current {
			scores[index] = score
		}
	}
	for _, match := range fuzzy.Find(title, stems) {
		record(match.Index, match.Score)
	}
	target := []string{title}
	for i, stem := range stems {
		if matches := fuzzy.Find(stem, target); len(matches) > 0 {
			record(i, matches[0].Score)
		}
	}

	ranked := make([]int, 0, len(scores))
	for index := range scores {
		ranked = append(ranked, index)
	}
	sort.Slice(ranked, func(a, b int) bool {
		if scores[ranked[a]] != scores[ranked[b]] {
			return scores[ranked[a]] > scores[ranked[b]]
		}
		return files[ranked[a]] < files[ranked[b]]
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]string, len(ranked))
	for i, index := range ranked {
		out[i] = files[index]
	}
	return out, nil
}
