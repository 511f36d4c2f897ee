package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-version"
	"go.uber.org/zap"
)

// AppVersion is the running build's version, stamped via -ldflags.
var AppVersion = "v0.1.0"

const releaseURL = "https://api.github.com/repos/nirmaan-tech/procure-api/releases/latest"

type githubRelease struct {
	TagName string `json:"tag_name"`
}

// CheckForUpdates logs a warning when the running build lags behind the
// latest published release. Any failure is silent; this must never block or
// fail startup.
func CheckForUpdates(log *zap.Logger) {
	latest, err := fetchLatestTag(releaseURL)
	if err != nil {
		return
	}

	outdated, err := isOutdated(AppVersion, latest)
	if err != nil || !outdated {
		return
	}

	log.Warn("running an outdated release, pull the latest image",
		zap.String("current", AppVersion),
		zap.String("latest", latest),
	)
}

func fetchLatestTag(url string) (string, error) {
	client := http.Client{Timeout: 2 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("release lookup returned %d", resp.StatusCode)
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}
	return release.TagName, nil
}

// isOutdated reports whether current is strictly older than latest. Both
// must parse as semantic versions; a leading "v" is fine.
func isOutdated(current, latest string) (bool, error) {
	cur, err := version.NewVersion(current)
	if err != nil {
		return false, err
	}
	lat, err := version.NewVersion(latest)
	if err != nil {
		return false, err
	}
	return cur.LessThan(lat), nil
}
