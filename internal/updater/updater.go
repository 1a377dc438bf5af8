// Package updater replaces the running binary with the latest GitHub release.
package updater

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/rs/zerolog/log"
)

// Repository is the GitHub slug releases are published under
const Repository = "guiyumin/linkparse"

// ErrDevBuild is returned when the running binary has no release version
var ErrDevBuild = errors.New("development build cannot be self-updated")

// Update upgrades the binary if a newer release exists.
// It returns the version that is installed afterwards.
func Update(ctx context.Context, current string) (string, error) {
	if current == "" || current == "dev" {
		return current, ErrDevBuild
	}

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(Repository))
	if err != nil {
		return current, fmt.Errorf("failed to detect latest release: %w", err)
	}
	if !found {
		return current, fmt.Errorf("no release found for %s/%s", runtime.GOOS, runtime.GOARCH)
	}

	if latest.LessOrEqual(current) {
		log.Debug().Str("current", current).Str("latest", latest.Version()).Msg("already up to date")
		return current, nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return current, fmt.Errorf("could not locate executable path: %w", err)
	}

	log.Info().Str("from", current).Str("to", latest.Version()).Str("asset", latest.AssetName).Msg("updating")
	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return current, fmt.Errorf("failed to update binary: %w", err)
	}

	return latest.Version(), nil
}
