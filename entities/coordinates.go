package entities

import (
	"strings"
	"unicode"

	"github.com/jfrog/maven-deploy-go/utils"
)

const (
	snapshotSuffix = "SNAPSHOT"
	// Characters which would change the meaning of the repository URL the coordinates are joined into.
	urlReservedChars = "#?%"
)

// ArtifactCoordinates identifies a publishable Maven artifact.
type ArtifactCoordinates struct {
	GroupId    string `json:"groupId" toml:"group-id" yaml:"group-id"`
	ArtifactId string `json:"artifactId" toml:"artifact-id" yaml:"artifact-id"`
	Version    string `json:"version" toml:"version" yaml:"version"`
	// Packaging is the artifact file extension, e.g. "jar".
	Packaging  string `json:"packaging" toml:"packaging" yaml:"packaging"`
	Classifier string `json:"classifier,omitempty" toml:"classifier" yaml:"classifier"`
}

// Validate checks the preconditions of path planning.
func (c *ArtifactCoordinates) Validate() error {
	for _, field := range []struct {
		name  string
		value string
	}{
		{"groupId", c.GroupId},
		{"artifactId", c.ArtifactId},
		{"version", c.Version},
		{"packaging", c.Packaging},
	} {
		if strings.TrimSpace(field.value) == "" {
			return utils.NewInvalidRequestError(field.name, "must not be empty")
		}
	}
	if strings.ContainsAny(c.GroupId, `/\`) {
		return utils.NewInvalidRequestError("groupId", "must be dot-delimited and must not contain path separators")
	}
	if strings.HasPrefix(c.GroupId, ".") || strings.HasSuffix(c.GroupId, ".") || strings.Contains(c.GroupId, "..") {
		return utils.NewInvalidRequestError("groupId", "must not contain empty segments")
	}
	if strings.ContainsAny(c.ArtifactId+c.Version+c.Packaging+c.Classifier, `/\`) {
		return utils.NewInvalidRequestError("coordinates", "must not contain path separators")
	}
	for _, field := range []struct {
		name  string
		value string
	}{
		{"groupId", c.GroupId},
		{"artifactId", c.ArtifactId},
		{"version", c.Version},
		{"packaging", c.Packaging},
		{"classifier", c.Classifier},
	} {
		if strings.ContainsAny(field.value, urlReservedChars) || strings.IndexFunc(field.value, isSpaceOrControl) >= 0 {
			return utils.NewInvalidRequestError(field.name, "must not contain whitespace or any of '"+urlReservedChars+"'")
		}
	}
	if c.ArtifactId == "." || c.ArtifactId == ".." || c.Version == "." || c.Version == ".." {
		return utils.NewInvalidRequestError("coordinates", "must not be relative path elements")
	}
	return nil
}

func isSpaceOrControl(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsControl(r)
}

// IsSnapshot reports whether the version ends with SNAPSHOT, ignoring case.
func (c *ArtifactCoordinates) IsSnapshot() bool {
	return len(c.Version) >= len(snapshotSuffix) &&
		strings.EqualFold(c.Version[len(c.Version)-len(snapshotSuffix):], snapshotSuffix)
}

// Gav returns the coordinates in groupId:artifactId:version form.
func (c *ArtifactCoordinates) Gav() string {
	return c.GroupId + ":" + c.ArtifactId + ":" + c.Version
}

// PackageUrl returns the Maven purl of the artifact, e.g. pkg:maven/com.example/foo@1.0?type=jar
func (c *ArtifactCoordinates) PackageUrl() string {
	purl := "pkg:maven/" + c.GroupId + "/" + c.ArtifactId + "@" + c.Version
	var qualifiers []string
	if c.Classifier != "" {
		qualifiers = append(qualifiers, "classifier="+c.Classifier)
	}
	if c.Packaging != "" {
		qualifiers = append(qualifiers, "type="+c.Packaging)
	}
	if len(qualifiers) > 0 {
		purl += "?" + strings.Join(qualifiers, "&")
	}
	return purl
}
