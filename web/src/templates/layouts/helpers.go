package layouts

const siteName = "Goby Auth"

// PageTitle suffixes title with the site name; an empty title yields the
// site name alone.
func PageTitle(title string) string {
	if title == "" {
		return siteName
	}
	return title + " - " + siteName
}
