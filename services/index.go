package services

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"songbook/types"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// IndexDefaultLanguage is used for exported songs without a [LANGUAGE] header
const IndexDefaultLanguage = "English"

var (
	numberHeader   = regexp.MustCompile(`(?i)\[NUMBER\]\s*(\d+)`)
	titleHeader    = regexp.MustCompile(`(?i)\[TITLE\]\s*(.+)`)
	languageHeader = regexp.MustCompile(`(?i)\[LANGUAGE\]\s*(.+)`)

	headerLines = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\[NUMBER\].*\n?`),
		regexp.MustCompile(`(?i)\[TITLE\].*\n?`),
		regexp.MustCompile(`(?i)\[LANGUAGE\].*\n?`),
	}

	numberedFilename = regexp.MustCompile(`^(\d+)\s*-\s*(.*)$`)
)

// songHeaders holds the metadata found at the top of a song file
type songHeaders struct {
	ID       *int
	Title    string
	Language string
	Lyrics   string
}

// parseHeaders extracts [NUMBER], [TITLE] and [LANGUAGE] headers and
// returns the remaining text as lyrics
func parseHeaders(content string) songHeaders {
	var h songHeaders

	if m := numberHeader.FindStringSubmatch(content); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			h.ID = &n
		}
	}
	if m := titleHeader.FindStringSubmatch(content); m != nil {
		h.Title = strings.TrimSpace(m[1])
	}
	if m := languageHeader.FindStringSubmatch(content); m != nil {
		h.Language = strings.TrimSpace(m[1])
	}

	lyrics := content
	for _, re := range headerLines {
		lyrics = re.ReplaceAllString(lyrics, "")
	}
	h.Lyrics = strings.TrimSpace(lyrics)

	return h
}

// indexEntry builds the exported entry for one song file
func indexEntry(filename, content string) types.IndexedSong {
	h := parseHeaders(content)

	base := strings.TrimSuffix(filename, SongExtension)
	if h.Title == "" {
		if m := numberedFilename.FindStringSubmatch(base); m != nil {
			if h.ID == nil {
				if n, err := strconv.Atoi(m[1]); err == nil {
					h.ID = &n
				}
			}
			h.Title = strings.TrimSpace(m[2])
		} else {
			h.Title = strings.TrimSpace(base)
		}
	}

	if h.Language == "" {
		h.Language = IndexDefaultLanguage
	}

	return types.IndexedSong{
		ID:       h.ID,
		Title:    h.Title,
		File:     filename,
		Language: h.Language,
		Lyrics:   h.Lyrics,
	}
}

// BuildIndex reads every song file in dir and returns the songs.json index.
// onFile, when set, is called once per song file processed.
func BuildIndex(dir string, onFile func(name string)) ([]types.IndexedSong, error) {
	if !DirExists(dir) {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	index := make([]types.IndexedSong, 0, len(entries))
	for _, entry := range entries {
		if !IsSongFile(entry.Name()) {
			continue
		}

		content := ""
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			log.Printf("Warning: Could not read %s: %v", entry.Name(), err)
		} else {
			content = string(data)
		}

		song := indexEntry(entry.Name(), content)
		if song.Title != "" {
			index = append(index, song)
		}

		if onFile != nil {
			onFile(entry.Name())
		}
	}

	sortIndex(index)
	return index, nil
}

// sortIndex orders numbered songs by id, then the rest by collated title
func sortIndex(index []types.IndexedSong) {
	col := collate.New(language.Und)
	sort.SliceStable(index, func(i, j int) bool {
		a, b := index[i], index[j]
		switch {
		case a.ID != nil && b.ID != nil:
			return *a.ID < *b.ID
		case a.ID != nil:
			return true
		case b.ID != nil:
			return false
		}
		return col.CompareString(a.Title, b.Title) < 0
	})
}

// CountSongFiles returns the number of song files in dir
func CountSongFiles(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, entry := range entries {
		if IsSongFile(entry.Name()) {
			count++
		}
	}
	return count, nil
}

// WriteIndex writes the index as indented JSON to path
func WriteIndex(path string, index []types.IndexedSong) error {
	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
