package doctor

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"runtime"
	"strconv"
	"strings"

	"github.com/tasuku43/wsdeps/internal/infra/pnpmcmd"
)

type SelfResult struct {
	Issues   []Issue
	Warnings []string
	Details  []string
}

type pnpmVersion struct {
	major int
	minor int
	patch int
}

func (v pnpmVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.major, v.minor, v.patch)
}

func (v pnpmVersion) Less(other pnpmVersion) bool {
	if v.major != other.major {
		return v.major < other.major
	}
	if v.minor != other.minor {
		return v.minor < other.minor
	}
	return v.patch < other.patch
}

var minPnpmVersion = pnpmVersion{major: 8, minor: 0, patch: 0}
var pnpmVersionPattern = regexp.MustCompile(`\b(\d+)\.(\d+)(?:\.(\d+))?`)

// SelfCheck verifies that the pnpm binary used for installs is present and
// recent enough. binary may be empty for the default.
func SelfCheck(ctx context.Context, binary string) (SelfResult, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = pnpmcmd.DefaultBinary
	}
	result := SelfResult{
		Details: []string{
			fmt.Sprintf("os: %s/%s", runtime.GOOS, runtime.GOARCH),
			fmt.Sprintf("minimum pnpm version: %s", minPnpmVersion.String()),
		},
	}

	binPath, err := exec.LookPath(binary)
	if err != nil {
		result.Issues = append(result.Issues, Issue{
			Kind:    "missing_dependency",
			Message: fmt.Sprintf("%s not found in PATH", binary),
		})
		result.Details = append(result.Details, fmt.Sprintf("%s: not found", binary))
		return result, nil
	}
	result.Details = append(result.Details, fmt.Sprintf("pnpm path: %s", binPath))

	versionOutput, err := pnpmcmd.Version(ctx, pnpmcmd.Options{Binary: binary})
	if err != nil {
		result.Issues = append(result.Issues, Issue{
			Kind:    "pnpm_version_check_failed",
			Message: err.Error(),
		})
		result.Details = append(result.Details, "pnpm version: unknown")
		return result, nil
	}
	if versionOutput == "" {
		result.Issues = append(result.Issues, Issue{
			Kind:    "pnpm_version_check_failed",
			Message: "pnpm --version returned no output",
		})
		return result, nil
	}
	result.Details = append(result.Details, fmt.Sprintf("pnpm version: %s", versionOutput))

	parsed, ok := parsePnpmVersion(versionOutput)
	if !ok {
		result.Issues = append(result.Issues, Issue{
			Kind:    "invalid_pnpm_version",
			Message: fmt.Sprintf("unable to parse pnpm version: %s", versionOutput),
		})
		return result, nil
	}
	if parsed.Less(minPnpmVersion) {
		result.Issues = append(result.Issues, Issue{
			Kind:    "pnpm_version_too_old",
			Message: fmt.Sprintf("pnpm %s is older than required %s", parsed.String(), minPnpmVersion.String()),
		})
	}
	return result, nil
}

func parsePnpmVersion(output string) (pnpmVersion, bool) {
	matches := pnpmVersionPattern.FindStringSubmatch(output)
	if len(matches) < 3 {
		return pnpmVersion{}, false
	}
	major, err := strconv.Atoi(matches[1])
	if err != nil {
		return pnpmVersion{}, false
	}
	minor, err := strconv.Atoi(matches[2])
	if err != nil {
		return pnpmVersion{}, false
	}
	patch := 0
	if matches[3] != "" {
		patch, err = strconv.Atoi(matches[3])
		if err != nil {
			return pnpmVersion{}, false
		}
	}
	return pnpmVersion{major: major, minor: minor, patch: patch}, true
}
