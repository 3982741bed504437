package deploy

import (
	"strings"

	"github.com/jfrog/maven-deploy-go/entities"
	"github.com/jfrog/maven-deploy-go/utils"
	"golang.org/x/exp/slices"
)

// Repository responses which count as a successful upload.
var successStatuses = []string{"200", "201"}

// Uploader sends single files to a Maven repository and classifies the outcome.
type Uploader struct {
	transferer    Transferer
	repositoryUrl string
	quiet         bool
	log           utils.Log
}

func NewUploader(transferer Transferer, repositoryUrl string) *Uploader {
	return &Uploader{transferer: transferer, repositoryUrl: repositoryUrl, log: &utils.NullLog{}}
}

func (u *Uploader) SetLogger(log utils.Log) *Uploader {
	u.log = log
	return u
}

func (u *Uploader) SetQuiet(quiet bool) *Uploader {
	u.quiet = quiet
	return u
}

// TargetUrl joins the repository base URL and a remote path with exactly one slash.
func TargetUrl(repositoryUrl, remotePath string) string {
	return strings.TrimRight(repositoryUrl, "/") + "/" + strings.TrimLeft(remotePath, "/")
}

// Upload transfers the task's local file and returns the HTTP status received.
// An error is returned unless the repository answered with 200 or 201.
func (u *Uploader) Upload(task entities.UploadTask) (string, error) {
	targetUrl := TargetUrl(u.repositoryUrl, task.RemotePath)
	displayUrl := utils.RemoveCredentials(targetUrl)
	if !u.quiet {
		u.log.Info("Uploading to " + displayUrl)
	}
	result, err := u.transferer.Transfer(task.LocalPath, targetUrl)
	if result == nil {
		result = &TransferResult{}
	}
	if err != nil || result.ExitCode != 0 || result.Status == "" {
		return result.Status, &utils.TransportError{Target: displayUrl, ExitCode: result.ExitCode, Status: result.Status, Err: err}
	}
	if !slices.Contains(successStatuses, result.Status) {
		return result.Status, &utils.HttpRejectionError{Target: displayUrl, Status: result.Status, Message: result.Message}
	}
	u.log.Debug("Uploaded " + task.LocalPath + " with status " + result.Status)
	return result.Status, nil
}
