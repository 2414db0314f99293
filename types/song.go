package types

// Song represents a single song file from the songs directory
type Song struct {
	Language string `json:"language"`
	Title    string `json:"title"`
	Lyrics   string `json:"lyrics"`
}

// IndexedSong is an entry of the exported songs.json index
type IndexedSong struct {
	ID       *int   `json:"id"`
	Title    string `json:"title"`
	File     string `json:"file"`
	Language string `json:"language"`
	Lyrics   string `json:"lyrics"`
}
