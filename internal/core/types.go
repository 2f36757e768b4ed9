package core

import (
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"

	"github.com/modhaven/modhaven-go/ident"
)

// Package is the experimental-API view of a package.
type Package struct {
	Ident             ident.PackageIdent `json:"full_name"`
	PackageURL        string             `json:"package_url"`
	DateCreated       time.Time          `json:"date_created"`
	DateUpdated       time.Time          `json:"date_updated"`
	RatingScore       int                `json:"rating_score"`
	IsPinned          bool               `json:"is_pinned"`
	IsDeprecated      bool               `json:"is_deprecated"`
	TotalDownloads    int64              `json:"total_downloads"`
	Latest            PackageVersion     `json:"latest"`
	CommunityListings []PackageListing   `json:"community_listings"`
}

// PackageVersion is the experimental-API view of a package version.
type PackageVersion struct {
	Ident        ident.VersionIdent   `json:"full_name"`
	Description  string               `json:"description"`
	Icon         string               `json:"icon"`
	Dependencies []ident.VersionIdent `json:"dependencies"`
	DownloadURL  string               `json:"download_url"`
	Downloads    int64                `json:"downloads"`
	DateCreated  time.Time            `json:"date_created"`
	WebsiteURL   string               `json:"website_url"`
	IsActive     bool                 `json:"is_active"`
}

// PackageListing describes how a package is listed in one community.
type PackageListing struct {
	HasNSFWContent bool         `json:"has_nsfw_content"`
	Categories     []string     `json:"categories"`
	Community      string       `json:"community"`
	ReviewStatus   ReviewStatus `json:"review_status"`
}

// ReviewStatus is the moderation state of a community listing.
type ReviewStatus string

const (
	ReviewUnreviewed ReviewStatus = "unreviewed"
	ReviewApproved   ReviewStatus = "approved"
	ReviewRejected   ReviewStatus = "rejected"
)

// PackageV1 is the v1-API view of a package, returned by the per-community
// listing endpoint.
type PackageV1 struct {
	UUID           uuid.UUID          `json:"uuid4"`
	Namespace      string             `json:"owner"`
	Name           string             `json:"name"`
	Ident          ident.PackageIdent `json:"full_name"`
	Categories     []string           `json:"categories"`
	DateCreated    time.Time          `json:"date_created"`
	DateUpdated    time.Time          `json:"date_updated"`
	DonationLink   string             `json:"donation_link"`
	HasNSFWContent bool               `json:"has_nsfw_content"`
	IsDeprecated   bool               `json:"is_deprecated"`
	IsPinned       bool               `json:"is_pinned"`
	PackageURL     string             `json:"package_url"`
	RatingScore    int                `json:"rating_score"`
	Versions       []PackageVersionV1 `json:"versions"`
}

// Latest returns the most recent version. The API orders versions newest
// first; the listing always contains at least one.
func (p *PackageV1) Latest() *PackageVersionV1 {
	return &p.Versions[0]
}

// IsModpack reports whether the package is categorized as a modpack.
func (p *PackageV1) IsModpack() bool {
	for _, c := range p.Categories {
		if c == "Modpacks" {
			return true
		}
	}
	return false
}

// VersionByUUID returns the version with the given UUID, or nil.
func (p *PackageV1) VersionByUUID(id uuid.UUID) *PackageVersionV1 {
	for i := range p.Versions {
		if p.Versions[i].UUID == id {
			return &p.Versions[i]
		}
	}
	return nil
}

// VersionByNumber returns the version with the given number, or nil.
func (p *PackageV1) VersionByNumber(v *semver.Version) *PackageVersionV1 {
	for i := range p.Versions {
		if p.Versions[i].Number != nil && p.Versions[i].Number.Equal(v) {
			return &p.Versions[i]
		}
	}
	return nil
}

// TotalDownloads sums the download counts of all versions.
func (p *PackageV1) TotalDownloads() int64 {
	var total int64
	for i := range p.Versions {
		total += p.Versions[i].Downloads
	}
	return total
}

// PackageVersionV1 is the v1-API view of a package version.
type PackageVersionV1 struct {
	UUID         uuid.UUID            `json:"uuid4"`
	Name         string               `json:"name"`
	Number       *semver.Version      `json:"version_number"`
	Ident        ident.VersionIdent   `json:"full_name"`
	DateCreated  time.Time            `json:"date_created"`
	Dependencies []ident.VersionIdent `json:"dependencies"`
	Description  string               `json:"description"`
	DownloadURL  string               `json:"download_url"`
	Downloads    int64                `json:"downloads"`
	FileSize     int64                `json:"file_size"`
	Icon         string               `json:"icon"`
	IsActive     bool                 `json:"is_active"`
	WebsiteURL   string               `json:"website_url"`
}

// PackageMetrics holds package-level download counts.
type PackageMetrics struct {
	Downloads int64 `json:"downloads"`
}

// VersionMetrics holds version-level download counts.
type VersionMetrics struct {
	Downloads int64 `json:"downloads"`
}

// IndexEntry is one line of the NDJSON package index.
type IndexEntry struct {
	Namespace     string          `json:"namespace"`
	Name          string          `json:"name"`
	VersionNumber *semver.Version `json:"version_number"`
	FileFormat    string          `json:"file_format"`
	FileSize      int64           `json:"file_size"`
	Dependencies  []string        `json:"dependencies"`
}

// Ident assembles the entry's version identifier.
func (e *IndexEntry) Ident() ident.VersionIdent {
	return ident.NewVersion(e.Namespace, e.Name, e.VersionNumber.String())
}

// Community describes a community hosted on the instance.
type Community struct {
	Ident                         string `json:"identifier"`
	Name                          string `json:"name"`
	DiscordURL                    string `json:"discord_url"`
	WikiURL                       string `json:"wiki_url"`
	RequirePackageListingApproval bool   `json:"require_package_listing_approval"`
}

// CommunityCategory is a category available within a community.
type CommunityCategory struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Pagination carries the next/previous links of a paginated response.
type Pagination struct {
	NextLink     string `json:"next_link"`
	PreviousLink string `json:"previous_link"`
}

type paginated[T any] struct {
	Pagination Pagination `json:"pagination"`
	Results    []T        `json:"results"`
}

// UserMediaStatus is the lifecycle state of an upload.
type UserMediaStatus string

const (
	UploadInitial   UserMediaStatus = "initial"
	UploadInitiated UserMediaStatus = "upload_initiated"
	UploadCreated   UserMediaStatus = "upload_created"
	UploadError     UserMediaStatus = "upload_error"
	UploadComplete  UserMediaStatus = "upload_complete"
	UploadAborted   UserMediaStatus = "upload_aborted"
)

// UserMedia describes an uploaded (or in-progress) file.
type UserMedia struct {
	UUID        uuid.UUID       `json:"uuid"`
	Name        string          `json:"filename"`
	Size        int64           `json:"size"`
	DateCreated time.Time       `json:"datetime_created"`
	Expiry      time.Time       `json:"expiry"`
	Status      UserMediaStatus `json:"status"`
}

// UploadPartURL tells the client where to PUT one chunk of an upload.
type UploadPartURL struct {
	Number int    `json:"part_number"`
	URL    string `json:"url"`
	Offset int64  `json:"offset"`
	Length int64  `json:"length"`
}

// CompletedPart records the ETag returned by one part upload.
type CompletedPart struct {
	Tag    string `json:"ETag"`
	Number int    `json:"PartNumber"`
}

// InitiateUploadResponse is returned when a new upload is opened.
type InitiateUploadResponse struct {
	UserMedia  UserMedia       `json:"user_media"`
	UploadURLs []UploadPartURL `json:"upload_urls"`
}

type initiateUploadParams struct {
	Name string `json:"filename"`
	Size int64  `json:"file_size_bytes"`
}

type finishUploadParams struct {
	Parts []CompletedPart `json:"parts"`
}

// SubmissionResult is returned when a package submission is accepted.
type SubmissionResult struct {
	PackageVersion       PackageVersion       `json:"package_version"`
	AvailableCommunities []AvailableCommunity `json:"available_communities"`
}

// AvailableCommunity lists a community a submitted package appears in.
type AvailableCommunity struct {
	Community  Community           `json:"community"`
	Categories []CommunityCategory `json:"categories"`
	URL        string              `json:"url"`
}

// WikisResponse is a cursor page of package wikis.
type WikisResponse struct {
	Results []ListedWiki `json:"results"`
	Cursor  time.Time    `json:"cursor"`
	HasMore bool         `json:"has_more"`
}

// ListedWiki pairs a wiki with its owning package coordinates.
type ListedWiki struct {
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
	Wiki      Wiki   `json:"wiki"`
}

// Wiki is a package wiki with its pages.
type Wiki struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Slug      string     `json:"slug"`
	CreatedAt time.Time  `json:"datetime_created"`
	UpdatedAt time.Time  `json:"datetime_updated"`
	Pages     []WikiPage `json:"pages"`
}

// WikiPage is a single wiki page. Content is only populated when a page
// is fetched individually.
type WikiPage struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"datetime_created"`
	UpdatedAt time.Time `json:"datetime_updated"`
	Content   string    `json:"markdown_content,omitempty"`
}

type wikiPageUpsert struct {
	ID      string `json:"id,omitempty"`
	Title   string `json:"title"`
	Content string `json:"markdown_content"`
}

type wikiPageDelete struct {
	ID string `json:"id"`
}

type markdownResponse struct {
	Markdown string `json:"markdown"`
}

type renderMarkdownParams struct {
	Markdown string `json:"markdown"`
}

type renderMarkdownResponse struct {
	HTML string `json:"html"`
}

type profileCreateResponse struct {
	Key uuid.UUID `json:"key"`
}

type iconValidatorParams struct {
	IconData string `json:"icon_data"`
}

type manifestValidatorParams struct {
	Namespace    string `json:"namespace"`
	ManifestData string `json:"manifest_data"`
}

type readmeValidatorParams struct {
	ReadmeData string `json:"readme_data"`
}

type validatorResponse struct {
	Success bool `json:"success"`
}
