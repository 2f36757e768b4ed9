package client

import "fmt"

// URLBuilder constructs public-facing URLs for a package. version may be
// empty when only the package-level URL is wanted.
type URLBuilder interface {
	Page(namespace, name, version string) string
	Download(namespace, name, version string) string
	PURL(namespace, name, version string) string
}

// BaseURLs provides a default URLBuilder implementation.
type BaseURLs struct {
	PageFn     func(namespace, name, version string) string
	DownloadFn func(namespace, name, version string) string
	PURLFn     func(namespace, name, version string) string
}

func (b *BaseURLs) Page(namespace, name, version string) string {
	if b.PageFn != nil {
		return b.PageFn(namespace, name, version)
	}
	return ""
}

func (b *BaseURLs) Download(namespace, name, version string) string {
	if b.DownloadFn != nil {
		return b.DownloadFn(namespace, name, version)
	}
	return ""
}

func (b *BaseURLs) PURL(namespace, name, version string) string {
	if b.PURLFn != nil {
		return b.PURLFn(namespace, name, version)
	}
	if version != "" {
		return fmt.Sprintf("pkg:modhaven/%s/%s@%s", namespace, name, version)
	}
	return fmt.Sprintf("pkg:modhaven/%s/%s", namespace, name)
}

// BuildURLs returns a map of all non-empty URLs for a package.
// Keys are "page", "download", and "purl".
func BuildURLs(urls URLBuilder, namespace, name, version string) map[string]string {
	result := make(map[string]string)
	if v := urls.Page(namespace, name, version); v != "" {
		result["page"] = v
	}
	if v := urls.Download(namespace, name, version); v != "" {
		result["download"] = v
	}
	if v := urls.PURL(namespace, name, version); v != "" {
		result["purl"] = v
	}
	return result
}
