package tests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jfrog/maven-deploy-go/entities"
	"github.com/jfrog/maven-deploy-go/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// CreateTempDirWithCallbackAndAssert creates a temp dir and returns a callback which removes it.
func CreateTempDirWithCallbackAndAssert(t *testing.T) (string, func()) {
	tempDirPath, err := utils.CreateTempDir()
	assert.NoError(t, err, "Couldn't create temp dir")
	return tempDirPath, func() {
		assert.NoError(t, utils.RemoveTempDir(tempDirPath), "Couldn't remove temp dir")
	}
}

// CreatePublicationRequest writes an artifact file with the given content into dir and
// returns a request publishing it to repositoryUrl, staging into dir.
func CreatePublicationRequest(t *testing.T, dir, repositoryUrl, version, content string) *entities.PublicationRequest {
	artifactPath := filepath.Join(dir, "foo.jar")
	require.NoError(t, os.WriteFile(artifactPath, []byte(content), 0644))
	request := &entities.PublicationRequest{
		Coordinates:   entities.ArtifactCoordinates{GroupId: "com.example", ArtifactId: "foo", Version: version},
		ArtifactPath:  artifactPath,
		RepositoryUrl: repositoryUrl,
		StagingDir:    filepath.Join(dir, "staging"),
	}
	request.SetDefaults()
	return request
}
