package moderation

import (
	"bufio"
	"bytes"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// CensoredData carries the result of the loading process including metadata for logging.
type CensoredData struct {
	Words     []string
	Languages []string
}

// CensoredLoader reads blacklisted words from a directory of per-language
// dictionaries ("fr.txt", "en.txt", one word per line).
type CensoredLoader struct {
	fs fs.FS
}

func NewCensoredLoader(f fs.FS) *CensoredLoader {
	return &CensoredLoader{fs: f}
}

// LoadAll parses every .txt file of dir and merges the configured extra words.
// The result holds unique words sorted alphabetically.
func (l *CensoredLoader) LoadAll(dir string, extra []string) (CensoredData, error) {
	unique := make(map[string]struct{})
	for _, word := range extra {
		if word = strings.TrimSpace(word); word != "" {
			unique[word] = struct{}{}
		}
	}

	var languages []string
	if l.fs != nil {
		entries, err := fs.ReadDir(l.fs, dir)
		if err != nil {
			return CensoredData{}, err
		}
		for _, entry := range entries {
			if entry.IsDir() || path.Ext(entry.Name()) != ".txt" {
				continue
			}
			languages = append(languages, strings.TrimSuffix(entry.Name(), ".txt"))

			data, err := fs.ReadFile(l.fs, path.Join(dir, entry.Name()))
			if err != nil {
				return CensoredData{}, err
			}

			// Scanner handles \n and \r\n line endings
			scanner := bufio.NewScanner(bytes.NewReader(data))
			for scanner.Scan() {
				if line := strings.TrimSpace(scanner.Text()); line != "" {
					unique[line] = struct{}{}
				}
			}
			if err := scanner.Err(); err != nil {
				return CensoredData{}, err
			}
		}
	}

	words := lo.Keys(unique)
	slices.Sort(words)
	return CensoredData{Words: words, Languages: languages}, nil
}
