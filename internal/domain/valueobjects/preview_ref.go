package valueobjects

// PreviewRef identifies a previewable copy of the currently selected image.
// The zero value means "no preview".
type PreviewRef string

func (r PreviewRef) IsZero() bool {
	return r == ""
}

// URL is the path the page loads the preview from.
func (r PreviewRef) URL() string {
	if r.IsZero() {
		return ""
	}
	return "/preview/" + string(r)
}
