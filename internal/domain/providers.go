package domain

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// The two social providers offered on the sign-in page.
const (
	ProviderGitHub = "github"
	ProviderGoogle = "google"
)

// SocialProviders lists the providers in the order their buttons appear.
var SocialProviders = []string{ProviderGitHub, ProviderGoogle}

var providerLabels = map[string]string{
	ProviderGitHub: "GitHub",
}

// IsSocialProvider reports whether name is one of the fixed providers.
func IsSocialProvider(name string) bool {
	for _, p := range SocialProviders {
		if p == name {
			return true
		}
	}
	return false
}

// ProviderLabel returns the display name used on a provider's button.
func ProviderLabel(name string) string {
	if label, ok := providerLabels[name]; ok {
		return label
	}
	return cases.Title(language.English).String(name)
}
