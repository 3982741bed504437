package deploy

import (
	"path"
	"strings"

	"github.com/jfrog/maven-deploy-go/entities"
)

const (
	MetadataFileName = "maven-metadata.xml"
	descriptorExt    = "pom"
)

// PathPlan holds the remote repository locations derived from artifact coordinates.
type PathPlan struct {
	// groupPath/artifactId
	BasePath string
	// groupPath/artifactId/version
	VersionedPath string
	// artifactId-version[-classifier], used only for the artifact binary.
	RemoteArtifactName string
	IsSnapshot         bool
}

// Plan derives the remote paths of a publication.
// The coordinates are expected to be valid, see ArtifactCoordinates.Validate.
func Plan(coordinates entities.ArtifactCoordinates) PathPlan {
	groupPath := strings.ReplaceAll(coordinates.GroupId, ".", "/")
	basePath := path.Join(groupPath, coordinates.ArtifactId)
	remoteArtifactName := coordinates.ArtifactId + "-" + coordinates.Version
	if coordinates.Classifier != "" {
		remoteArtifactName += "-" + coordinates.Classifier
	}
	return PathPlan{
		BasePath:           basePath,
		VersionedPath:      path.Join(basePath, coordinates.Version),
		RemoteArtifactName: remoteArtifactName,
		IsSnapshot:         coordinates.IsSnapshot(),
	}
}

// OuterMetadataPath is the repository-root metadata document of the artifact.
func (p PathPlan) OuterMetadataPath() string {
	return path.Join(p.BasePath, MetadataFileName)
}

// InnerMetadataPath is the version-scoped metadata document. It is only published for snapshots.
func (p PathPlan) InnerMetadataPath() string {
	return path.Join(p.VersionedPath, MetadataFileName)
}

// DescriptorPath never carries the classifier.
func (p PathPlan) DescriptorPath() string {
	descriptorName := path.Base(p.BasePath) + "-" + path.Base(p.VersionedPath)
	return path.Join(p.VersionedPath, descriptorName+"."+descriptorExt)
}

func (p PathPlan) ArtifactPath(packaging string) string {
	return path.Join(p.VersionedPath, p.RemoteArtifactName+"."+packaging)
}
