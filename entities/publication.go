package entities

import (
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/jfrog/maven-deploy-go/utils"
)

const (
	DefaultStagingDir = "target/mvn-deploy"
	DefaultNoProxy    = "127.0.0.1"
)

type Credentials struct {
	Username string `json:"username" toml:"username" yaml:"username"`
	Password string `json:"-" toml:"password" yaml:"password"`
}

// PublicationRequest holds everything needed to publish one artifact with its metadata.
type PublicationRequest struct {
	Coordinates ArtifactCoordinates
	// Local path of the artifact binary. It is uploaded from this location.
	ArtifactPath string
	// Base URL of the Maven repository, e.g. https://repo.example.com/repository/maven-snapshots
	RepositoryUrl string
	// Local directory where the rendered documents and checksum files are written before upload.
	StagingDir string
	Parallel   bool
	Quiet      bool
	Auth       *Credentials
	Insecure   bool
	// Host which should never be reached through a proxy.
	NoProxy string
	// Relative local paths are resolved against WorkingDir, which is also the working directory of the transfer process.
	WorkingDir string
	// Sha256 adds .sha256 side files to every uploaded file.
	Sha256  bool
	Timeout time.Duration
	// Properties are passed as-is to the metadata templates.
	Properties  map[string]string
	TemplateDir string
}

// SetDefaults fills optional fields which were left empty.
func (pr *PublicationRequest) SetDefaults() {
	if pr.StagingDir == "" {
		pr.StagingDir = DefaultStagingDir
	}
	if pr.NoProxy == "" {
		pr.NoProxy = DefaultNoProxy
	}
	if pr.Coordinates.Packaging == "" {
		pr.Coordinates.Packaging = "jar"
	}
}

// Validate checks the request before any work begins.
func (pr *PublicationRequest) Validate() error {
	if pr == nil {
		return utils.NewInvalidRequestError("", "upload artifact options required")
	}
	if err := pr.Coordinates.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(pr.ArtifactPath) == "" {
		return utils.NewInvalidRequestError("artifact", "must not be empty")
	}
	if strings.TrimSpace(pr.RepositoryUrl) == "" {
		return utils.NewInvalidRequestError("url", "must not be empty")
	}
	parsedUrl, err := url.Parse(pr.RepositoryUrl)
	if err != nil || parsedUrl.Host == "" || (parsedUrl.Scheme != "http" && parsedUrl.Scheme != "https") {
		return utils.NewInvalidRequestError("url", "must be an absolute http(s) URL")
	}
	if pr.StagingDir == "" {
		return utils.NewInvalidRequestError("stagingDir", "must not be empty")
	}
	if pr.Auth != nil && pr.Auth.Username == "" {
		return utils.NewInvalidRequestError("username", "must be set when credentials are provided")
	}
	if pr.Timeout < 0 {
		return utils.NewInvalidRequestError("timeout", "must not be negative")
	}
	return nil
}

// ResolvePath resolves a relative local path against WorkingDir.
// The result is absolute, since the transfer process itself runs in WorkingDir.
func (pr *PublicationRequest) ResolvePath(localPath string) string {
	if pr.WorkingDir == "" || filepath.IsAbs(localPath) {
		return localPath
	}
	resolved := filepath.Join(pr.WorkingDir, localPath)
	if absolute, err := filepath.Abs(resolved); err == nil {
		return absolute
	}
	return resolved
}

// StagedFile is a document written to the staging directory together with its checksums.
type StagedFile struct {
	LocalPath string `json:"localPath"`
	Content   []byte `json:"-"`
	Checksum
}

// UploadTask maps a local file to its path relative to the repository base URL.
type UploadTask struct {
	LocalPath  string `json:"localPath"`
	RemotePath string `json:"remotePath"`
}

type UploadOutcome struct {
	Task       UploadTask `json:"task"`
	Succeeded  bool       `json:"succeeded"`
	HttpStatus string     `json:"httpStatus,omitempty"`
	Error      string     `json:"error,omitempty"`
}
