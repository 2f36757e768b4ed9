// Package modhaven provides a client for the ModHaven mod hosting API.
//
// Packages are addressed by compact identifiers of the form
// "namespace-name" and "namespace-name-version"; the ident subpackage
// implements them and every operation accepts the flexible shapes its
// conversion functions support.
//
// Basic usage:
//
//	api := modhaven.New("", nil)
//
//	pkg, err := api.GetPackage(ctx, "Evaisa-LethalLib")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(pkg.Ident.Name(), pkg.TotalDownloads)
//
// Operations that need authentication, such as publishing, take the token
// from the client:
//
//	c := modhaven.NewClient(modhaven.WithToken(os.Getenv("MODHAVEN_TOKEN")))
//	api := modhaven.New(modhaven.StagingBaseURL, c)
//
//	meta := modhaven.NewPackageMetadata("Evaisa", "lethal-company")
//	result, err := api.PublishFile(ctx, "mod.zip", meta)
package modhaven

import (
	"github.com/git-pkgs/purl"

	"github.com/modhaven/modhaven-go/client"
	"github.com/modhaven/modhaven-go/ident"
	"github.com/modhaven/modhaven-go/internal/core"
)

// API executes typed operations against a ModHaven instance.
type API = core.API

// New creates an API bound to the given base URL.
// If baseURL is empty, DefaultBaseURL is used.
// If c is nil, DefaultClient() is used.
func New(baseURL string, c *Client) *API {
	return core.New(baseURL, c)
}

const (
	// DefaultBaseURL is the main ModHaven instance.
	DefaultBaseURL = core.DefaultBaseURL

	// StagingBaseURL is the staging instance. Packages published there are
	// periodically wiped, which makes it the place to test upload flows.
	StagingBaseURL = core.StagingBaseURL
)

// Re-export identifier types from ident
type (
	// PackageIdent identifies a package as "namespace-name".
	PackageIdent = ident.PackageIdent

	// VersionIdent identifies a package version as "namespace-name-version".
	VersionIdent = ident.VersionIdent

	// VersionParts identifies a version by its separate components.
	VersionParts = ident.VersionParts
)

// Identifier constructors
var (
	NewPackage   = ident.NewPackage
	ParsePackage = ident.ParsePackage
	NewVersion   = ident.NewVersion
	ParseVersion = ident.ParseVersion
	AsPackage    = ident.AsPackage
	AsVersion    = ident.AsVersion
)

// Re-export model types from internal/core
type (
	// Package is the experimental-API view of a package.
	Package = core.Package

	// PackageVersion is the experimental-API view of a package version.
	PackageVersion = core.PackageVersion

	// PackageListing describes how a package is listed in one community.
	PackageListing = core.PackageListing

	// ReviewStatus is the moderation state of a community listing.
	ReviewStatus = core.ReviewStatus

	// PackageV1 is the v1-API view of a package.
	PackageV1 = core.PackageV1

	// PackageVersionV1 is the v1-API view of a package version.
	PackageVersionV1 = core.PackageVersionV1

	// PackageStream iterates over a community listing incrementally.
	PackageStream = core.PackageStream

	// IndexEntry is one line of the NDJSON package index.
	IndexEntry = core.IndexEntry

	// IndexStream iterates over the package index incrementally.
	IndexStream = core.IndexStream

	// PackageMetrics holds package-level download counts.
	PackageMetrics = core.PackageMetrics

	// Community describes a community hosted on the instance.
	Community = core.Community

	// CommunityCategory is a category available within a community.
	CommunityCategory = core.CommunityCategory

	// CursorState navigates paginated endpoints.
	CursorState = core.CursorState

	// UserMedia describes an uploaded (or in-progress) file.
	UserMedia = core.UserMedia

	// UploadPartURL tells the client where to PUT one chunk of an upload.
	UploadPartURL = core.UploadPartURL

	// CompletedPart records the ETag returned by one part upload.
	CompletedPart = core.CompletedPart

	// InitiateUploadResponse is returned when a new upload is opened.
	InitiateUploadResponse = core.InitiateUploadResponse

	// PackageMetadata describes a package submission.
	PackageMetadata = core.PackageMetadata

	// SubmissionResult is returned when a submission is accepted.
	SubmissionResult = core.SubmissionResult

	// Wiki is a package wiki with its pages.
	Wiki = core.Wiki

	// WikiPage is a single wiki page.
	WikiPage = core.WikiPage
)

// Review statuses
const (
	ReviewUnreviewed = core.ReviewUnreviewed
	ReviewApproved   = core.ReviewApproved
	ReviewRejected   = core.ReviewRejected
)

// NewPackageMetadata creates submission metadata for the given author
// namespace and target communities.
func NewPackageMetadata(author string, communities ...string) *PackageMetadata {
	return core.NewPackageMetadata(author, communities...)
}

// Re-export types from client
type (
	// Client is an HTTP client with retry logic for the ModHaven API.
	Client = client.Client

	// URLBuilder constructs public-facing URLs for a package.
	URLBuilder = client.URLBuilder
)

// Re-export errors
var (
	ErrNotFound     = client.ErrNotFound
	ErrUnauthorized = client.ErrUnauthorized
	ErrInvalidIdent = ident.ErrInvalidIdent
)

// Error types
type (
	HTTPError      = client.HTTPError
	NotFoundError  = client.NotFoundError
	RateLimitError = client.RateLimitError
)

// DefaultClient returns a client with sensible defaults:
// - 30s timeout
// - 5 retries with exponential backoff
// - Retry on 429 and 5xx responses
func DefaultClient() *Client {
	return client.DefaultClient()
}

// NewClient creates a new client with the given options.
func NewClient(opts ...Option) *Client {
	return client.NewClient(opts...)
}

// Option configures a Client.
type Option = client.Option

// WithTimeout sets the HTTP client timeout.
var WithTimeout = client.WithTimeout

// WithMaxRetries sets the maximum number of retries.
var WithMaxRetries = client.WithMaxRetries

// WithToken sets the API token sent on authenticated operations.
var WithToken = client.WithToken

// WithUserAgent sets the User-Agent header.
var WithUserAgent = client.WithUserAgent

// BuildURLs returns a map of all non-empty URLs for a package.
// Keys are "page", "download", and "purl".
func BuildURLs(urls URLBuilder, namespace, name, version string) map[string]string {
	return client.BuildURLs(urls, namespace, name, version)
}

// PURL represents a parsed Package URL.
type PURL = purl.PURL

// ParsePURL parses a Package URL string into its components.
// Supports both package PURLs (pkg:modhaven/Evaisa/LethalLib) and version
// PURLs (pkg:modhaven/Evaisa/LethalLib@0.16.0).
func ParsePURL(purlStr string) (*PURL, error) {
	return purl.Parse(purlStr)
}

// PackageFromPURL converts a ModHaven Package URL to a package identifier.
func PackageFromPURL(purlStr string) (PackageIdent, error) {
	p, err := purl.Parse(purlStr)
	if err != nil {
		return PackageIdent{}, err
	}
	if p.Type != "modhaven" || p.Namespace == "" {
		return PackageIdent{}, ErrInvalidIdent
	}
	return ident.NewPackage(p.Namespace, p.Name), nil
}

// VersionFromPURL converts a ModHaven Package URL with a version to a
// version identifier.
func VersionFromPURL(purlStr string) (VersionIdent, error) {
	p, err := purl.Parse(purlStr)
	if err != nil {
		return VersionIdent{}, err
	}
	if p.Type != "modhaven" || p.Namespace == "" || p.Version == "" {
		return VersionIdent{}, ErrInvalidIdent
	}
	return ident.NewVersion(p.Namespace, p.Name, p.Version), nil
}
