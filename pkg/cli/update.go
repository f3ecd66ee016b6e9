package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"regexp"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
)

const updateRepo = "Fepozopo/imgscale"

// githubAPI is the releases endpoint root; tests point it at a local server.
var githubAPI = "https://api.github.com"

type githubRelease struct {
	TagName    string `json:"tag_name"`
	Name       string `json:"name"`
	Draft      bool   `json:"draft"`
	Prerelease bool   `json:"prerelease"`
	Assets     []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

// semverRe finds a version like v1.2.3 or 1.2.3 inside a tag or release name.
var semverRe = regexp.MustCompile(`v?\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?`)

// detectLatestFallback queries the GitHub Releases API directly. It is more
// tolerant of tag naming than selfupdate.DetectLatest.
func detectLatestFallback(repo string) (*selfupdate.Release, bool, error) {
	apiURL := fmt.Sprintf("%s/repos/%s/releases", githubAPI, repo)
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(apiURL)
	if err != nil {
		return nil, false, fmt.Errorf("github API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("failed reading github response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("github API returned status %d: %s", resp.StatusCode, string(body))
	}

	var releases []githubRelease
	if err := json.Unmarshal(body, &releases); err != nil {
		return nil, false, fmt.Errorf("failed to decode github releases: %w", err)
	}
	rel, ok := latestRelease(releases)
	return rel, ok, nil
}

// latestRelease picks the highest published, non-prerelease version. Releases
// whose tag and name carry no semver are skipped.
func latestRelease(releases []githubRelease) (*selfupdate.Release, bool) {
	var best *selfupdate.Release
	for _, r := range releases {
		if r.Draft || r.Prerelease {
			continue
		}
		match := semverRe.FindString(r.TagName)
		if match == "" {
			match = semverRe.FindString(r.Name)
			if match == "" {
				continue
			}
		}
		v, err := semver.Parse(strings.TrimPrefix(match, "v"))
		if err != nil {
			continue
		}
		if best != nil && !v.GT(best.Version) {
			continue
		}
		best = &selfupdate.Release{Version: v, AssetURL: pickAsset(r)}
	}
	return best, best != nil
}

// pickAsset prefers the asset built for this platform, then anything that
// looks like a binary, then the first asset.
func pickAsset(r githubRelease) string {
	fallback := ""
	for _, a := range r.Assets {
		name := strings.ToLower(a.Name)
		if strings.Contains(name, runtime.GOOS) && strings.Contains(name, runtime.GOARCH) {
			return a.BrowserDownloadURL
		}
		if fallback == "" && binaryAssetRe.MatchString(name) {
			fallback = a.BrowserDownloadURL
		}
	}
	if fallback == "" && len(r.Assets) > 0 {
		fallback = r.Assets[0].BrowserDownloadURL
	}
	return fallback
}

var binaryAssetRe = regexp.MustCompile(`darwin|linux|windows|amd64|arm64`)

// promptLine writes prompt to out and reads one trimmed line from in.
func promptLine(in *bufio.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	line, err := in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// CheckForUpdates reports the latest release and, after confirmation on in,
// replaces the running executable with it and restarts.
func CheckForUpdates(in io.Reader, out io.Writer) error {
	latest, found, err := detectLatestFallback(updateRepo)
	fmt.Fprintf(out, "Current version: %s\n", Version)
	if err != nil {
		return fmt.Errorf("update check failed: %w", err)
	}
	if !found {
		fmt.Fprintf(out, "No releases found for %s.\n", updateRepo)
		return nil
	}
	fmt.Fprintf(out, "Latest version: %s\n", latest.Version)

	currentVer, perr := semver.Parse(strings.TrimPrefix(Version, "v"))
	if perr != nil {
		fmt.Fprintf(out, "warning: could not parse current version %q: %v\n", Version, perr)
	} else if latest.Version.LTE(currentVer) {
		fmt.Fprintf(out, "You are already running the latest version: %s.\n", currentVer)
		return nil
	}

	if latest.AssetURL == "" {
		fmt.Fprintf(out, "A new version (%s) is available but there is no downloadable asset.\n", latest.Version)
		fmt.Fprintln(out, "Please visit the project releases page to download the new version.")
		return nil
	}

	answer, err := promptLine(bufio.NewReader(in), out, fmt.Sprintf("A new version (%s) is available. Update now? (y/N): ", latest.Version))
	if err != nil {
		return fmt.Errorf("failed reading input: %w", err)
	}
	answer = strings.ToLower(answer)
	if answer != "y" && answer != "yes" {
		fmt.Fprintln(out, "Update cancelled.")
		return nil
	}

	fmt.Fprintln(out, "Updating...")
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("could not locate executable: %w", err)
	}
	if err := selfupdate.UpdateTo(latest.AssetURL, exe); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	fmt.Fprintf(out, "Updated to version %s.\n", latest.Version)
	return restart(exe)
}

// restart replaces the current process with exe, dropping the -update flag so
// the new binary does not loop.
func restart(exe string) error {
	var args []string
	for _, a := range os.Args[1:] {
		if a != "-update" && a != "--update" {
			args = append(args, a)
		}
	}
	if len(args) == 0 {
		return nil
	}
	argv := append([]string{exe}, args...)
	if err := syscall.Exec(exe, argv, os.Environ()); err != nil {
		// Exec only returns on error; run the new binary as a child instead.
		cmd := exec.Command(exe, args...)
		cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
		if runErr := cmd.Run(); runErr != nil {
			return fmt.Errorf("restart failed: %v; fallback: %w", err, runErr)
		}
	}
	return nil
}
