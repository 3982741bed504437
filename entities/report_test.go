package entities

import (
	"testing"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCycloneDxBom(t *testing.T) {
	report := &PublicationReport{
		Coordinates:   ArtifactCoordinates{GroupId: "com.example", ArtifactId: "foo", Version: "1.0", Packaging: "jar"},
		RepositoryUrl: "http://repo/maven",
		Artifact: PublishedArtifact{
			Name:     "foo-1.0.jar",
			Checksum: Checksum{Sha1: "111", Md5: "222"},
		},
		Uploads: []UploadOutcome{
			{Task: UploadTask{RemotePath: "com/example/foo/1.0/foo-1.0.jar"}, Succeeded: true, HttpStatus: "201"},
			{Task: UploadTask{RemotePath: "com/example/foo/1.0/foo-1.0.jar.sha1"}, Succeeded: false, HttpStatus: "500"},
		},
		Started: "2024-01-02T03:04:05Z",
	}

	bom := report.ToCycloneDxBom()
	require.NotNil(t, bom.Metadata)
	require.NotNil(t, bom.Components)
	require.Len(t, *bom.Components, 1)

	component := (*bom.Components)[0]
	assert.Equal(t, cdx.ComponentTypeLibrary, component.Type)
	assert.Equal(t, "com.example", component.Group)
	assert.Equal(t, "foo", component.Name)
	assert.Equal(t, "1.0", component.Version)
	assert.Equal(t, "pkg:maven/com.example/foo@1.0?type=jar", component.PackageURL)
	assert.Equal(t, "2024-01-02T03:04:05Z", bom.Metadata.Timestamp)

	require.NotNil(t, component.Hashes)
	assert.ElementsMatch(t, []cdx.Hash{
		{Algorithm: cdx.HashAlgoSHA1, Value: "111"},
		{Algorithm: cdx.HashAlgoMD5, Value: "222"},
	}, *component.Hashes)

	require.NotNil(t, component.Properties)
	assert.Equal(t, []cdx.Property{
		{Name: "maven:repository", Value: "http://repo/maven"},
		{Name: "maven:uploaded", Value: "com/example/foo/1.0/foo-1.0.jar"},
	}, *component.Properties)
}

func TestToCycloneDxBomWithoutChecksums(t *testing.T) {
	report := &PublicationReport{Coordinates: ArtifactCoordinates{GroupId: "g", ArtifactId: "a", Version: "1"}}
	bom := report.ToCycloneDxBom()
	assert.Nil(t, (*bom.Components)[0].Hashes)
}
