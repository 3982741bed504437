package deploy

import (
	"errors"
	"path/filepath"
	"time"

	"github.com/jfrog/gofrog/crypto"
	"github.com/jfrog/maven-deploy-go/entities"
	"github.com/jfrog/maven-deploy-go/utils"
)

const (
	outerStagedName      = "outer.xml"
	innerStagedName      = "inner.xml"
	descriptorStagedName = "pom.xml"
	artifactStagedPrefix = "artifact."
)

// Assembly is the local result of a publication: the staged files and the ordered upload tasks.
// Staged holds the outer metadata, inner metadata and descriptor, followed by the artifact binary.
// The artifact entry has no Content, it is uploaded from its own location.
type Assembly struct {
	Plan     PathPlan
	Staged   []entities.StagedFile
	Uploads  []entities.UploadTask
	Artifact entities.PublishedArtifact
}

// Assembler renders the metadata documents and writes them, with all checksum files, to the staging directory.
type Assembler struct {
	renderer Renderer
	now      func() time.Time
	log      utils.Log
}

func NewAssembler(renderer Renderer) *Assembler {
	return &Assembler{renderer: renderer, now: time.Now, log: &utils.NullLog{}}
}

func (a *Assembler) SetLogger(log utils.Log) *Assembler {
	a.log = log
	return a
}

// SetClock replaces the source of the "last updated" timestamp.
func (a *Assembler) SetClock(now func() time.Time) *Assembler {
	a.now = now
	return a
}

// Assemble performs all local work of a publication. No network call is made,
// and files already written are left in place when an error is returned.
func (a *Assembler) Assemble(request *entities.PublicationRequest) (*Assembly, error) {
	plan := Plan(request.Coordinates)
	stagingDir := request.ResolvePath(request.StagingDir)
	if err := utils.CreateDirIfNotExist(stagingDir); err != nil {
		return nil, utils.NewLocalIOError("create staging directory", stagingDir, err)
	}
	options := TemplateOptions{
		ArtifactCoordinates: request.Coordinates,
		LastUpdated:         a.now().UTC().Format(lastUpdatedLayout),
		Snapshot:            plan.IsSnapshot,
		Properties:          request.Properties,
	}
	algorithms := ChecksumAlgorithms(request.Sha256)

	assembly := &Assembly{Plan: plan}
	for _, document := range []struct {
		template   string
		stagedName string
	}{
		{OuterMetadataTemplate, outerStagedName},
		{InnerMetadataTemplate, innerStagedName},
		{DescriptorTemplate, descriptorStagedName},
	} {
		staged, err := a.stageDocument(document.template, document.stagedName, options, stagingDir, algorithms)
		if err != nil {
			return nil, err
		}
		assembly.Staged = append(assembly.Staged, *staged)
	}

	artifact, err := a.stageArtifactChecksums(request, plan, algorithms)
	if err != nil {
		return nil, err
	}
	assembly.Artifact = *artifact
	assembly.Staged = append(assembly.Staged, entities.StagedFile{LocalPath: artifact.Path, Checksum: artifact.Checksum})
	assembly.Uploads = PlanUploads(plan, request, algorithms)
	return assembly, nil
}

func (a *Assembler) stageDocument(templateName, stagedName string, options TemplateOptions, stagingDir string, algorithms []utils.Algorithm) (*entities.StagedFile, error) {
	content, err := a.renderer.Render(templateName, options)
	if err != nil {
		return nil, &utils.RenderError{Template: templateName, Err: err}
	}
	localPath, err := utils.WriteFileInDir(stagingDir, stagedName, content)
	if err != nil {
		return nil, utils.NewLocalIOError("write", filepath.Join(stagingDir, stagedName), err)
	}
	staged := &entities.StagedFile{LocalPath: localPath, Content: content}
	for _, algorithm := range algorithms {
		digest, err := utils.Digest(algorithm, content)
		if err != nil {
			return nil, err
		}
		setChecksum(&staged.Checksum, algorithm, digest)
		if err = writeChecksumFile(stagingDir, stagedName, algorithm, digest); err != nil {
			return nil, err
		}
	}
	a.log.Debug("Staged " + localPath)
	return staged, nil
}

// stageArtifactChecksums writes the artifact checksum files. The artifact itself is not copied.
func (a *Assembler) stageArtifactChecksums(request *entities.PublicationRequest, plan PathPlan, algorithms []utils.Algorithm) (*entities.PublishedArtifact, error) {
	artifactPath := request.ResolvePath(request.ArtifactPath)
	exists, err := utils.IsFileExists(artifactPath, true)
	if err != nil {
		return nil, utils.NewLocalIOError("read artifact", artifactPath, err)
	}
	if !exists {
		return nil, utils.NewLocalIOError("read artifact", artifactPath, errors.New("no such file"))
	}
	details, err := crypto.GetFileDetails(artifactPath, true)
	if err != nil {
		return nil, utils.NewLocalIOError("read artifact", artifactPath, err)
	}
	artifact := &entities.PublishedArtifact{
		Name: plan.RemoteArtifactName + "." + request.Coordinates.Packaging,
		Path: artifactPath,
		Size: details.Size,
	}
	stagingDir := request.ResolvePath(request.StagingDir)
	stagedName := artifactStagedPrefix + request.Coordinates.Packaging
	for _, algorithm := range algorithms {
		digest := artifactDigest(details.Checksum, algorithm)
		setChecksum(&artifact.Checksum, algorithm, digest)
		if err = writeChecksumFile(stagingDir, stagedName, algorithm, digest); err != nil {
			return nil, err
		}
	}
	a.log.Debug("Staged checksums of " + artifactPath)
	return artifact, nil
}

// PlanUploads enumerates the upload tasks of a publication in the order they must be sent:
// root metadata, version metadata (snapshots only), descriptor, then the artifact.
// Every file is followed by its checksum files.
func PlanUploads(plan PathPlan, request *entities.PublicationRequest, algorithms []utils.Algorithm) []entities.UploadTask {
	stagingDir := request.ResolvePath(request.StagingDir)
	var tasks []entities.UploadTask
	addWithChecksums := func(localPath, checksumBase, remotePath string) {
		tasks = append(tasks, entities.UploadTask{LocalPath: localPath, RemotePath: remotePath})
		for _, algorithm := range algorithms {
			tasks = append(tasks, entities.UploadTask{
				LocalPath:  checksumBase + "." + algorithm.Extension(),
				RemotePath: remotePath + "." + algorithm.Extension(),
			})
		}
	}
	stagedPath := func(name string) string {
		return filepath.Join(stagingDir, name)
	}

	addWithChecksums(stagedPath(outerStagedName), stagedPath(outerStagedName), plan.OuterMetadataPath())
	if plan.IsSnapshot {
		addWithChecksums(stagedPath(innerStagedName), stagedPath(innerStagedName), plan.InnerMetadataPath())
	}
	addWithChecksums(stagedPath(descriptorStagedName), stagedPath(descriptorStagedName), plan.DescriptorPath())
	packaging := request.Coordinates.Packaging
	addWithChecksums(request.ResolvePath(request.ArtifactPath), stagedPath(artifactStagedPrefix+packaging), plan.ArtifactPath(packaging))
	return tasks
}

// ChecksumAlgorithms returns the side-file algorithms in upload order.
func ChecksumAlgorithms(includeSha256 bool) []utils.Algorithm {
	algorithms := []utils.Algorithm{utils.SHA1, utils.MD5}
	if includeSha256 {
		algorithms = append(algorithms, utils.SHA256)
	}
	return algorithms
}

func writeChecksumFile(stagingDir, stagedName string, algorithm utils.Algorithm, digest string) error {
	checksumName := stagedName + "." + algorithm.Extension()
	if _, err := utils.WriteFileInDir(stagingDir, checksumName, []byte(digest)); err != nil {
		return utils.NewLocalIOError("write", filepath.Join(stagingDir, checksumName), err)
	}
	return nil
}

func setChecksum(checksum *entities.Checksum, algorithm utils.Algorithm, digest string) {
	switch algorithm {
	case utils.MD5:
		checksum.Md5 = digest
	case utils.SHA1:
		checksum.Sha1 = digest
	case utils.SHA256:
		checksum.Sha256 = digest
	}
}

func artifactDigest(checksum crypto.Checksum, algorithm utils.Algorithm) string {
	switch algorithm {
	case utils.MD5:
		return checksum.Md5
	case utils.SHA1:
		return checksum.Sha1
	default:
		return checksum.Sha256
	}
}
