package core

import (
	"context"
	"encoding/base64"

	"github.com/google/uuid"
)

// PackageMetadata describes a submission: who publishes it, which
// communities list it, and how it is categorized. Build one with
// NewPackageMetadata and the chainable With methods.
type PackageMetadata struct {
	Author              string              `json:"author_name"`
	Communities         []string            `json:"communities"`
	GlobalCategories    []string            `json:"categories"`
	CommunityCategories map[string][]string `json:"community_categories"`
	HasNSFWContent      bool                `json:"has_nsfw_content"`
	UploadUUID          *uuid.UUID          `json:"upload_uuid"`
}

// NewPackageMetadata creates submission metadata for the given author
// namespace and target communities.
func NewPackageMetadata(author string, communities ...string) *PackageMetadata {
	return &PackageMetadata{
		Author:              author,
		Communities:         communities,
		GlobalCategories:    []string{},
		CommunityCategories: map[string][]string{},
	}
}

// WithGlobalCategories adds categories applied in every listed community.
func (m *PackageMetadata) WithGlobalCategories(categories ...string) *PackageMetadata {
	m.GlobalCategories = append(m.GlobalCategories, categories...)
	return m
}

// InCommunity adds a target community.
func (m *PackageMetadata) InCommunity(community string) *PackageMetadata {
	m.Communities = append(m.Communities, community)
	return m
}

// InCommunities adds several target communities.
func (m *PackageMetadata) InCommunities(communities ...string) *PackageMetadata {
	m.Communities = append(m.Communities, communities...)
	return m
}

// WithCategories adds categories applied only within one community.
func (m *PackageMetadata) WithCategories(community string, categories ...string) *PackageMetadata {
	m.CommunityCategories[community] = append(m.CommunityCategories[community], categories...)
	return m
}

// WithNSFWContent flags the package as containing NSFW content.
func (m *PackageMetadata) WithNSFWContent(nsfw bool) *PackageMetadata {
	m.HasNSFWContent = nsfw
	return m
}

// Submit submits a finished upload for review. The upload must have been
// completed first, either through Upload or FinishUpload.
func (a *API) Submit(ctx context.Context, uploadID uuid.UUID, meta *PackageMetadata) (*SubmissionResult, error) {
	meta.UploadUUID = &uploadID
	var result SubmissionResult
	if err := a.http.PostJSON(ctx, a.experimentalURL("submission/submit"), meta, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ValidateIcon checks whether icon would be accepted as a package icon.
// The service expects a 256x256 PNG.
func (a *API) ValidateIcon(ctx context.Context, icon []byte) (bool, error) {
	params := iconValidatorParams{IconData: base64.StdEncoding.EncodeToString(icon)}
	return a.validate(ctx, "icon", params)
}

// ValidateManifest checks a manifest.json against the rules for the given
// author namespace.
func (a *API) ValidateManifest(ctx context.Context, namespace, manifest string) (bool, error) {
	params := manifestValidatorParams{Namespace: namespace, ManifestData: manifest}
	return a.validate(ctx, "manifest-v1", params)
}

// ValidateReadme checks a README.md for submission.
func (a *API) ValidateReadme(ctx context.Context, readme string) (bool, error) {
	params := readmeValidatorParams{ReadmeData: readme}
	return a.validate(ctx, "readme", params)
}

func (a *API) validate(ctx context.Context, kind string, params any) (bool, error) {
	var resp validatorResponse
	url := a.experimentalURL("submission/validate/" + kind)
	if err := a.http.PostJSON(ctx, url, params, &resp); err != nil {
		return false, err
	}
	return resp.Success, nil
}
