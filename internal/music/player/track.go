package player

// Track is a playable item. URL is the opaque reference handed to the transport.
type Track struct {
	Title  string
	URL    string
	Source string
}

// DisplayTitle returns the title, falling back to the URL.
func (t Track) DisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	if t.URL != "" {
		return t.URL
	}
	return "Unknown track"
}
