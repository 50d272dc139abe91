// Package mirror resolves oc release versions to download URLs on
// mirror.openshift.com.
package mirror

import (
	_ "embed"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// Bundle paths relative to a versioned mirror directory, keyed by the OS
// identifier the build agent reports.
const (
	linuxBundle   = "linux/oc.tar.gz"
	macBundle     = "macosx/oc.tar.gz"
	windowsBundle = "windows/oc.zip"

	latestSegment = "latest"
)

//go:embed catalog.json
var rawCatalog []byte

// Catalog is the bundled lookup data: the mirror roots for the two
// supported major lines and the newest known patch release per
// major.minor line.
type Catalog struct {
	BaseURLs map[string]string `json:"baseURLs"`
	Latest   map[string]string `json:"latest"`
}

// LoadCatalog parses the catalog bundled with the binary.
func LoadCatalog() (Catalog, error) {
	var c Catalog
	err := json.Unmarshal(rawCatalog, &c)
	return c, err
}

// Bundle returns the OS-specific archive path, or false for an
// unrecognized OS identifier.
func Bundle(osType string) (string, bool) {
	switch osType {
	case "Linux":
		return linuxBundle, true
	case "Darwin":
		return macBundle, true
	case "Windows_NT":
		return windowsBundle, true
	default:
		return "", false
	}
}

// Resolver composes download URLs from the catalog. Zero value is not
// usable; build one with NewResolver.
type Resolver struct {
	catalog Catalog
}

func NewResolver(catalog Catalog) Resolver {
	return Resolver{catalog: catalog}
}

var majorRe = regexp.MustCompile(`^(\d+)`)
var lineRe = regexp.MustCompile(`^\d+\.\d+`)

// LatestURL composes the URL of the newest stable oc release for the
// given OS.
func (r Resolver) LatestURL(osType string) (string, bool) {
	bundle, ok := Bundle(osType)
	if !ok {
		return "", false
	}
	base, ok := r.catalog.BaseURLs["v4"]
	if !ok {
		return "", false
	}
	return strings.Join([]string{base, latestSegment, bundle}, "/"), true
}

// VersionURL composes the download URL for a specific version. A leading
// "v" is accepted and stripped. With latestPatch set, the version's
// major.minor line is replaced by the newest patch release the catalog
// knows; an unknown line fails the resolution. Only major versions 3 and
// 4 have a mirror root.
func (r Resolver) VersionURL(version, osType string, latestPatch bool) (string, bool) {
	if version == "" {
		return "", false
	}
	version = strings.TrimPrefix(version, "v")

	m := majorRe.FindStringSubmatch(version)
	if m == nil {
		return "", false
	}
	major, err := strconv.Atoi(m[1])
	if err != nil {
		return "", false
	}

	if latestPatch {
		line := lineRe.FindString(version)
		if line == "" {
			return "", false
		}
		patch, ok := r.catalog.Latest[line]
		if !ok {
			return "", false
		}
		version = patch
	}

	var base string
	switch major {
	case 3:
		base = r.catalog.BaseURLs["v3"]
	case 4:
		base = r.catalog.BaseURLs["v4"]
	default:
		return "", false
	}
	if base == "" {
		return "", false
	}

	bundle, ok := Bundle(osType)
	if !ok {
		return "", false
	}
	return strings.Join([]string{base, version, bundle}, "/"), true
}
