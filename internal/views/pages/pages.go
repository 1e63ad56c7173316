package pages

import (
	"platecheck/internal/views/theme"
	"platecheck/internal/workspace"
)

const pageTitle = "PlateCheck"

// Message is a one-line notice shown above the results.
type Message struct {
	Kind string
	Text string
}

// PageData is everything the scan page needs to render.
type PageData struct {
	Snapshot      workspace.Snapshot
	Palette       theme.Palette
	UploadField   string
	UploadEnabled bool
	Message       Message
}

func emptyStateText(scanned bool) string {
	if scanned {
		return "No foods with nutrition data were found in that photo."
	}
	return "Upload a photo of your meal to see its nutrition."
}
