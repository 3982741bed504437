package entities

import (
	cdx "github.com/CycloneDX/cyclonedx-go"
)

// PublishedArtifact describes the artifact binary of a publication.
type PublishedArtifact struct {
	// Remote file name, e.g. foo-1.0-sources.jar
	Name string `json:"name"`
	Path string `json:"path"`
	Size int64  `json:"size"`
	Checksum
}

// PublicationReport summarizes a finished publication.
type PublicationReport struct {
	Coordinates   ArtifactCoordinates `json:"coordinates"`
	RepositoryUrl string              `json:"repositoryUrl"`
	Snapshot      bool                `json:"snapshot"`
	Artifact      PublishedArtifact   `json:"artifact"`
	Uploads       []UploadOutcome     `json:"uploads"`
	Started       string              `json:"started"`
	Duration      string              `json:"duration"`
	Success       bool                `json:"success"`
}

// ToCycloneDxBom describes the published artifact as the main component of a CycloneDX BOM.
func (report *PublicationReport) ToCycloneDxBom() *cdx.BOM {
	coordinates := report.Coordinates
	component := cdx.Component{
		BOMRef:     coordinates.PackageUrl(),
		Type:       cdx.ComponentTypeLibrary,
		Group:      coordinates.GroupId,
		Name:       coordinates.ArtifactId,
		Version:    coordinates.Version,
		PackageURL: coordinates.PackageUrl(),
	}
	if !report.Artifact.Checksum.IsEmpty() {
		var hashes []cdx.Hash
		if report.Artifact.Sha256 != "" {
			hashes = append(hashes, cdx.Hash{Algorithm: cdx.HashAlgoSHA256, Value: report.Artifact.Sha256})
		}
		if report.Artifact.Sha1 != "" {
			hashes = append(hashes, cdx.Hash{Algorithm: cdx.HashAlgoSHA1, Value: report.Artifact.Sha1})
		}
		if report.Artifact.Md5 != "" {
			hashes = append(hashes, cdx.Hash{Algorithm: cdx.HashAlgoMD5, Value: report.Artifact.Md5})
		}
		component.Hashes = &hashes
	}
	properties := []cdx.Property{{Name: "maven:repository", Value: report.RepositoryUrl}}
	for _, upload := range report.Uploads {
		if upload.Succeeded {
			properties = append(properties, cdx.Property{Name: "maven:uploaded", Value: upload.Task.RemotePath})
		}
	}
	component.Properties = &properties

	bom := cdx.NewBOM()
	bom.Metadata = &cdx.Metadata{
		Timestamp: report.Started,
		Component: &component,
	}
	components := []cdx.Component{component}
	bom.Components = &components
	return bom
}
