package main

import (
	"os"
	"testing"

	"github.com/jfrog/maven-deploy-go/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
)

func TestReleaseReportSchema(t *testing.T) {
	validateReportSchema(t, "1.0")
}

func TestSnapshotReportSchema(t *testing.T) {
	validateReportSchema(t, "1.0-SNAPSHOT", "--parallel", "--sha256", "--classifier", "sources")
}

// Publish to a fake repository with the CLI and validate the printed report against the schema.
// version   - Version of the published artifact
// extraArgs - Additional flags for the deploy command
func validateReportSchema(t *testing.T, version string, extraArgs ...string) {
	// Load the report schema
	schema, err := os.ReadFile("publication-report-schema.json")
	require.NoError(t, err)
	schemaLoader := gojsonschema.NewBytesLoader(schema)

	repository := tests.NewFakeRepository(t)
	tempDir, cleanup := tests.CreateTempDirWithCallbackAndAssert(t)
	defer cleanup()
	request := tests.CreatePublicationRequest(t, tempDir, repository.Url(), version, "artifact")

	args := append([]string{
		"deploy", "--quiet",
		"--url", request.RepositoryUrl,
		"--group-id", request.Coordinates.GroupId,
		"--artifact-id", request.Coordinates.ArtifactId,
		"--version", request.Coordinates.Version,
		"--artifact", request.ArtifactPath,
		"--staging-dir", request.StagingDir,
	}, extraArgs...)
	reportContent := runDeploy(t, args)

	// Validate the report
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(reportContent))
	require.NoError(t, err)
	assert.True(t, result.Valid(), result.Errors())
}

// Run "mvn-deploy <args>" and return what it printed to the standard output.
func runDeploy(t *testing.T, args []string) []byte {
	// Save old state
	oldArgs := os.Args
	oldStdout := os.Stdout

	// Create a commandOutput file
	commandOutput, err := os.CreateTemp("", "output")
	require.NoError(t, err)

	defer func() {
		os.Stdout = oldStdout
		os.Args = oldArgs
		assert.NoError(t, commandOutput.Close())
		assert.NoError(t, os.Remove(commandOutput.Name()))
	}()

	// Execute command with output redirection to a temp file
	os.Stdout = commandOutput
	os.Args = append([]string{"mvn-deploy"}, args...)
	main()

	// Read output
	content, err := os.ReadFile(commandOutput.Name())
	require.NoError(t, err)
	assert.NotEmpty(t, content)
	return content
}
