package selector

import (
	"context"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"
)

// MinimumFzfVersion is the oldest fzf release pmfzf drives.
const MinimumFzfVersion = "0.30.0"

// ErrFzfNotFound is returned when the finder is not installed.
var ErrFzfNotFound = errors.New("fzf not found")

// These are variables so tests can stub the environment.
var (
	lookPath   = exec.LookPath
	fzfVersion = versionOutput
	minimumFzf = semver.MustParse(MinimumFzfVersion)
)

// BinaryInfo describes the finder found by CheckBinary.
type BinaryInfo struct {
	Path string

	// Version is nil when the version string could not be parsed.
	Version *semver.Version
	Raw     string
}

// LookupBinary resolves binary on PATH without running it.
func LookupBinary(binary string) (string, error) {
	path, err := lookPath(binary)
	if err != nil {
		return "", errors.Wrapf(ErrFzfNotFound, "%s is not on PATH", binary)
	}
	return path, nil
}

// CheckBinary verifies that binary is installed and recent enough. A version
// string that cannot be parsed (development builds) is accepted.
func CheckBinary(ctx context.Context, binary string) (BinaryInfo, error) {
	path, err := LookupBinary(binary)
	if err != nil {
		return BinaryInfo{}, err
	}

	raw, err := fzfVersion(ctx, path)
	if err != nil {
		return BinaryInfo{Path: path}, errors.Wrapf(err, "query %s version", binary)
	}
	info := BinaryInfo{Path: path, Raw: raw}

	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return info, nil
	}
	version, err := semver.NewVersion(fields[0])
	if err != nil {
		return info, nil
	}
	info.Version = version

	if version.LessThan(minimumFzf) {
		return info, errors.Newf("%s %s is too old, pmfzf needs %s or newer", binary, version, MinimumFzfVersion)
	}
	return info, nil
}

func versionOutput(ctx context.Context, path string) (string, error) {
	out, err := exec.CommandContext(ctx, path, "--version").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
