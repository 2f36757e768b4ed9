package core

import "fmt"

// SiteURLs builds public site URLs for a ModHaven instance. It implements
// client.URLBuilder.
type SiteURLs struct {
	BaseURL   string
	Community string
}

// Page returns the package or version page URL within the community.
func (s *SiteURLs) Page(namespace, name, version string) string {
	if version != "" {
		return fmt.Sprintf("%s/c/%s/p/%s/%s/v/%s/", s.BaseURL, s.Community, namespace, name, version)
	}
	return fmt.Sprintf("%s/c/%s/p/%s/%s/", s.BaseURL, s.Community, namespace, name)
}

// Download returns the archive download URL. Empty without a version.
func (s *SiteURLs) Download(namespace, name, version string) string {
	if version == "" {
		return ""
	}
	return fmt.Sprintf("%s/package/download/%s/%s/%s/", s.BaseURL, namespace, name, version)
}

// PURL returns the package URL string for the package or version.
func (s *SiteURLs) PURL(namespace, name, version string) string {
	if version != "" {
		return fmt.Sprintf("pkg:modhaven/%s/%s@%s", namespace, name, version)
	}
	return fmt.Sprintf("pkg:modhaven/%s/%s", namespace, name)
}
