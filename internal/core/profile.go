package core

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

// profileDataPrefix marks base64-encoded profile payloads. Mod managers
// reject payloads without it.
const profileDataPrefix = "#modhaven\n"

// ErrInvalidProfileData is returned when downloaded profile data is not in
// the expected prefixed base64 format.
var ErrInvalidProfileData = errors.New("invalid profile data")

// CreateProfile uploads a profile and returns its key.
//
// data is expected to be a ZIP archive holding a mod list and any config
// files, though the service accepts arbitrary bytes. The key is used to
// retrieve the profile with Profile.
func (a *API) CreateProfile(ctx context.Context, data []byte) (uuid.UUID, error) {
	payload := make([]byte, 0, len(profileDataPrefix)+base64.StdEncoding.EncodedLen(len(data)))
	payload = append(payload, profileDataPrefix...)
	payload = base64.StdEncoding.AppendEncode(payload, data)

	return a.CreateProfileRaw(ctx, payload)
}

// CreateProfileRaw uploads already-encoded profile data and returns its
// key. Most callers want CreateProfile, which applies the expected prefix
// and base64 encoding.
func (a *API) CreateProfileRaw(ctx context.Context, data []byte) (uuid.UUID, error) {
	url := a.experimentalURL("legacyprofile/create")
	resp, err := a.http.Post(ctx, url, "application/octet-stream", data)
	if err != nil {
		return uuid.Nil, err
	}
	defer resp.Body.Close()

	var created profileCreateResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return uuid.Nil, fmt.Errorf("decoding profile response: %w", err)
	}
	return created.Key, nil
}

// Profile downloads and decodes the profile with the given key.
// Data that is missing the expected prefix fails with
// ErrInvalidProfileData.
func (a *API) Profile(ctx context.Context, key uuid.UUID) ([]byte, error) {
	raw, err := a.ProfileRaw(ctx, key)
	if err != nil {
		return nil, err
	}

	text := string(raw)
	encoded, ok := strings.CutPrefix(text, profileDataPrefix)
	if !ok {
		return nil, ErrInvalidProfileData
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProfileData, err)
	}
	return data, nil
}

// ProfileRaw downloads the profile with the given key without decoding.
func (a *API) ProfileRaw(ctx context.Context, key uuid.UUID) ([]byte, error) {
	url := a.experimentalURL("legacyprofile/get/" + key.String())
	return a.http.GetBody(ctx, url)
}

// SaveProfile downloads and decodes a profile, writing it to path.
func (a *API) SaveProfile(ctx context.Context, key uuid.UUID, path string) error {
	data, err := a.Profile(ctx, key)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
