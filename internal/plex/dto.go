package plex

// apiResponse is the JSON envelope of every Plex library response.
type apiResponse struct {
	MediaContainer mediaContainer `json:"MediaContainer"`
}

type mediaContainer struct {
	Size      int         `json:"size"`
	Directory []directory `json:"Directory,omitempty"`
	Metadata  []metadata  `json:"Metadata,omitempty"`
}

// directory is a library section.
type directory struct {
	Key   string `json:"key"`
	Type  string `json:"type"`
	Title string `json:"title"`
}

// metadata is either a collection (from a section's collection listing) or
// an image (from a poster listing, where ratingKey is the image id).
type metadata struct {
	RatingKey  string `json:"ratingKey"`
	Type       string `json:"type,omitempty"`
	Subtype    string `json:"subtype,omitempty"`
	Title      string `json:"title,omitempty"`
	TitleSort  string `json:"titleSort,omitempty"`
	ChildCount int    `json:"childCount,omitempty"`
	Selected   bool   `json:"selected,omitempty"`
	Provider   string `json:"provider,omitempty"`
}
