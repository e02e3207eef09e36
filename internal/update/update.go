// Package update checks GitHub releases for newer stevedore builds and can
// swap the running binary in place.
package update

import (
	"context"
	"fmt"
	"runtime"

	"github.com/creativeprojects/go-selfupdate"
)

// GitHub repository the releases are published under.
const (
	repoOwner = "cameronsjo"
	repoName  = "stevedore"
)

// Release describes a published version newer than the running one.
type Release struct {
	Version     string
	ReleaseURL  string
	PublishedAt string
	Changelog   string
}

// detectLatest resolves the newest published release. A nil release with nil
// error means the current version is already the newest.
func detectLatest(ctx context.Context, currentVersion string) (*selfupdate.Updater, *selfupdate.Release, error) {
	source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return nil, nil, fmt.Errorf("create update source: %w", err)
	}
	updater, err := selfupdate.NewUpdater(selfupdate.Config{Source: source})
	if err != nil {
		return nil, nil, fmt.Errorf("create updater: %w", err)
	}

	latest, found, err := updater.DetectLatest(ctx, selfupdate.NewRepositorySlug(repoOwner, repoName))
	if err != nil {
		return nil, nil, fmt.Errorf("detect latest version: %w", err)
	}
	if !found || latest.LessOrEqual(currentVersion) {
		return updater, nil, nil
	}
	return updater, latest, nil
}

func releaseInfo(latest *selfupdate.Release) *Release {
	return &Release{
		Version:     latest.Version(),
		ReleaseURL:  latest.URL,
		PublishedAt: latest.PublishedAt.Format("2006-01-02"),
		Changelog:   latest.ReleaseNotes,
	}
}

// CheckForUpdate reports whether a newer release exists.
func CheckForUpdate(currentVersion string) (*Release, bool, error) {
	_, latest, err := detectLatest(context.Background(), currentVersion)
	if err != nil || latest == nil {
		return nil, false, err
	}
	return releaseInfo(latest), true, nil
}

// Update replaces the running binary with the newest release. A nil Release
// with nil error means the binary is already current.
func Update(currentVersion string) (*Release, error) {
	ctx := context.Background()
	updater, latest, err := detectLatest(ctx, currentVersion)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return nil, fmt.Errorf("locate executable: %w", err)
	}
	if err := updater.UpdateTo(ctx, latest, exe); err != nil {
		return nil, fmt.Errorf("apply update: %w", err)
	}

	return releaseInfo(latest), nil
}

// PlatformInfo returns the os/arch pair release assets are matched against.
func PlatformInfo() string {
	return fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
}
