package model

import "encoding/json"

// DefaultThumbnail is used when a presentation has no slide to derive one from.
const DefaultThumbnail = "#f3f4f6"

// DefaultSlideContent is the stored content of a freshly created slide.
const DefaultSlideContent = `{"background":"#ffffff"}`

// SlideContent is the parsed background state of a slide. A legacy elements
// array may appear inside stored content; it is not authoritative and is
// ignored on read (element rows are).
type SlideContent struct {
	Background      string `json:"background,omitempty"`
	BackgroundImage string `json:"backgroundImage,omitempty"`
}

// ThumbnailFromContent derives a presentation list thumbnail from the first
// slide's content: background image if set, else background color, else the
// default gray.
func ThumbnailFromContent(content string) string {
	if content == "" {
		return DefaultThumbnail
	}
	var sc SlideContent
	if err := json.Unmarshal([]byte(content), &sc); err != nil {
		return DefaultThumbnail
	}
	if sc.BackgroundImage != "" {
		return sc.BackgroundImage
	}
	if sc.Background != "" {
		return sc.Background
	}
	return DefaultThumbnail
}
