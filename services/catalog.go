package services

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"songbook/types"
)

const (
	// SongExtension is the only file extension treated as a song
	SongExtension = ".txt"
	// TitleSeparator splits the category from the title in a filename
	TitleSeparator = " - "
	// DefaultLanguage is used when a filename has no category segment
	DefaultLanguage = "Misc"
)

// newlines translates CRLF and lone CR line endings to LF
var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// ErrDirectoryNotFound is returned when the songs directory does not exist
var ErrDirectoryNotFound = errors.New("songs directory not found")

// ErrInvalidEncoding is returned for song files that are not valid UTF-8
var ErrInvalidEncoding = errors.New("invalid UTF-8 content")

// Catalog interface defines methods for reading songs from disk
type Catalog interface {
	ListSongs(dir string) ([]types.Song, error)
	ReadSong(dir, filename string) (types.Song, error)
}

// catalog implements the Catalog interface
type catalog struct{}

// NewCatalog creates a new catalog
func NewCatalog() Catalog {
	return &catalog{}
}

// IsSongFile reports whether a directory entry name is eligible as a song
func IsSongFile(name string) bool {
	return strings.HasSuffix(name, SongExtension)
}

// ParseFilename splits "Category - Title.txt" into its language and title.
// Every ".txt" in the name is removed, not only the trailing one. Names
// without a separator fall back to the default language.
func ParseFilename(filename string) (language, title string) {
	name := strings.ReplaceAll(filename, SongExtension, "")
	parts := strings.Split(name, TitleSeparator)
	if len(parts) > 1 {
		return parts[0], strings.Join(parts[1:], TitleSeparator)
	}
	return DefaultLanguage, name
}

// DirExists reports whether path exists and is a directory
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ListSongs scans dir and returns one song per readable .txt file, in
// filename order. Files that cannot be read are logged and skipped.
func (c *catalog) ListSongs(dir string) ([]types.Song, error) {
	if !DirExists(dir) {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
	}

	// os.ReadDir returns entries sorted by filename
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	songs := make([]types.Song, 0, len(entries))
	for _, entry := range entries {
		if !IsSongFile(entry.Name()) {
			continue
		}

		song, err := c.ReadSong(dir, entry.Name())
		if err != nil {
			log.Printf("Could not process file %s: %v", entry.Name(), err)
			continue
		}
		songs = append(songs, song)
	}

	return songs, nil
}

// ReadSong parses the filename and reads the lyrics of a single song file.
// Line endings are normalised to "\n".
func (c *catalog) ReadSong(dir, filename string) (types.Song, error) {
	language, title := ParseFilename(filename)

	data, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		return types.Song{}, err
	}
	if !utf8.Valid(data) {
		return types.Song{}, ErrInvalidEncoding
	}

	return types.Song{
		Language: language,
		Title:    title,
		Lyrics:   newlines.Replace(string(data)),
	}, nil
}
