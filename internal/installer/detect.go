package installer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrNotFound is returned when the package manager binary is not in PATH.
var ErrNotFound = errors.New("package manager not found in PATH")

// minimumVersions lists the oldest release of each package manager whose
// install command works with the generated manifests.
var minimumVersions = map[string]string{
	"npm":  ">= 7.0.0",
	"pnpm": ">= 8.0.0",
	"yarn": ">= 1.22.0",
	"bun":  ">= 1.0.0",
}

// SupportedPackageManagers returns the package managers sitekit can drive,
// in display order.
func SupportedPackageManagers() []string {
	return []string{"npm", "pnpm", "yarn", "bun"}
}

// versionRegex matches output like "10.2.4", "v1.22.19" or "1.1.0-canary.3".
var versionRegex = regexp.MustCompile(`v?\d+\.\d+\.\d+(?:-[a-zA-Z0-9.]+)?`)

// Info describes a detected package manager installation.
type Info struct {
	// Name is the package manager name, e.g. "npm".
	Name string

	// Path is the resolved binary path.
	Path string

	// Version is the detected version without a "v" prefix.
	Version string

	// Compatible reports whether Version satisfies the minimum constraint.
	Compatible bool

	// Message explains the compatibility verdict.
	Message string
}

// Detect locates the package manager binary and checks its version.
// It returns ErrNotFound when the binary is missing. A version that cannot
// be determined is reported as incompatible rather than as an error.
func Detect(ctx context.Context, name string) (Info, error) {
	info := Info{Name: name}

	path, err := exec.LookPath(name)
	if err != nil {
		return info, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	info.Path = path

	raw, err := runVersion(ctx, path)
	if err != nil {
		info.Message = "failed to get version: " + err.Error()
		return info, nil
	}

	version, err := extractVersion(raw)
	if err != nil {
		info.Message = err.Error()
		return info, nil
	}
	info.Version = version.String()

	constraint, ok := minimumVersions[name]
	if !ok {
		info.Compatible = true
		info.Message = "no minimum version known"
		return info, nil
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return info, fmt.Errorf("parsing constraint %q: %w", constraint, err)
	}

	info.Compatible = c.Check(version)
	if info.Compatible {
		info.Message = "compatible"
	} else {
		info.Message = fmt.Sprintf("version %s does not satisfy %s", info.Version, constraint)
	}

	return info, nil
}

// runVersion executes "<binary> --version" and returns its combined output.
func runVersion(ctx context.Context, path string) (string, error) {
	cmd := exec.CommandContext(ctx, path, "--version")
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return "", err
	}
	return out.String(), nil
}

// extractVersion finds the first semantic version in output.
func extractVersion(output string) (*semver.Version, error) {
	match := versionRegex.FindString(output)
	if match == "" {
		return nil, fmt.Errorf("no version found in output %q", strings.TrimSpace(output))
	}
	return semver.NewVersion(strings.TrimPrefix(match, "v"))
}
