package cli

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/jfrog/maven-deploy-go/entities"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// FileConfig is the content of a --config file. Flags set on the command line take precedence over it.
type FileConfig struct {
	Url         string                       `toml:"url" yaml:"url"`
	Coordinates entities.ArtifactCoordinates `toml:"coordinates" yaml:"coordinates"`
	Artifact    string                       `toml:"artifact" yaml:"artifact"`
	StagingDir  string                       `toml:"staging-dir" yaml:"staging-dir"`
	Parallel    bool                         `toml:"parallel" yaml:"parallel"`
	Quiet       bool                         `toml:"quiet" yaml:"quiet"`
	Username    string                       `toml:"username" yaml:"username"`
	Password    string                       `toml:"password" yaml:"password"`
	Insecure    bool                         `toml:"insecure" yaml:"insecure"`
	NoProxy     string                       `toml:"noproxy" yaml:"noproxy"`
	Cwd         string                       `toml:"cwd" yaml:"cwd"`
	Transport   string                       `toml:"transport" yaml:"transport"`
	// Go duration, e.g. "90s".
	Timeout     string            `toml:"timeout" yaml:"timeout"`
	Sha256      bool              `toml:"sha256" yaml:"sha256"`
	TemplateDir string            `toml:"template-dir" yaml:"template-dir"`
	Properties  map[string]string `toml:"properties" yaml:"properties"`
}

// LoadFileConfig reads a TOML or YAML config file, chosen by the file extension.
func LoadFileConfig(path string) (*FileConfig, error) {
	config := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, config); err != nil {
			return nil, errors.Wrap(err, "failed to parse config file "+path)
		}
	case ".yaml", ".yml":
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read config file "+path)
		}
		if err = yaml.Unmarshal(content, config); err != nil {
			return nil, errors.Wrap(err, "failed to parse config file "+path)
		}
	default:
		return nil, errors.Errorf("unsupported config file '%s', expected a .toml, .yaml or .yml file", path)
	}
	return config, nil
}

func (fc *FileConfig) timeout() (time.Duration, error) {
	if fc.Timeout == "" {
		return 0, nil
	}
	timeout, err := time.ParseDuration(fc.Timeout)
	if err != nil {
		return 0, errors.Wrap(err, "invalid timeout in config file")
	}
	return timeout, nil
}
