package deploy

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/jfrog/maven-deploy-go/entities"
	"github.com/jfrog/maven-deploy-go/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPublisher(transferer Transferer, output *bytes.Buffer) *Publisher {
	log := utils.NewLoggerWithWriters(utils.INFO, &bytes.Buffer{}, output)
	return NewPublisher().SetTransferer(transferer).SetClock(testClock).SetLogger(log)
}

func TestPublishSnapshot(t *testing.T) {
	request := createTestRequest(t, "1.0-SNAPSHOT")
	transferer := newFakeTransferer("201")
	var output bytes.Buffer
	report, err := newTestPublisher(transferer, &output).Publish(request)
	require.NoError(t, err)

	assert.True(t, report.Success)
	assert.True(t, report.Snapshot)
	assert.Len(t, report.Uploads, 12)
	assert.Equal(t, "2024-01-02T03:04:05Z", report.Started)
	assert.Equal(t, request.RepositoryUrl+"/com/example/foo/maven-metadata.xml", transferer.targets()[0])
	assert.Equal(t, request.RepositoryUrl+"/com/example/foo/1.0-SNAPSHOT/maven-metadata.xml", transferer.targets()[3])
	assert.Equal(t, request.RepositoryUrl+"/com/example/foo/1.0-SNAPSHOT/foo-1.0-SNAPSHOT.jar.md5", transferer.targets()[11])
	assert.Contains(t, output.String(), "-------------------------------------------\nArtifacts uploaded successfully")
}

func TestPublishRelease(t *testing.T) {
	request := createTestRequest(t, "1.0")
	request.Parallel = true
	transferer := newFakeTransferer("200")
	report, err := newTestPublisher(transferer, &bytes.Buffer{}).Publish(request)
	require.NoError(t, err)
	assert.False(t, report.Snapshot)
	assert.Len(t, transferer.targets(), 9)
	assert.NotContains(t, transferer.targets(), request.RepositoryUrl+"/com/example/foo/1.0/maven-metadata.xml")
}

func TestPublishRejection(t *testing.T) {
	request := createTestRequest(t, "1.0")
	transferer := newFakeTransferer("201")
	target := request.RepositoryUrl + "/com/example/foo/1.0/foo-1.0.pom"
	transferer.results[target] = &TransferResult{Status: "404"}
	var output bytes.Buffer
	report, err := newTestPublisher(transferer, &output).Publish(request)

	var batchFailure *utils.BatchFailure
	require.True(t, errors.As(err, &batchFailure))
	assert.Equal(t, target, batchFailure.Target())
	assert.Equal(t, "404", batchFailure.Status())
	require.NotNil(t, report)
	assert.False(t, report.Success)
	// Sequential uploads stop at the descriptor.
	assert.Len(t, report.Uploads, 4)
	assert.Contains(t, output.String(), "Artifact Upload failed\nStatus code 404 for "+target)
}

func TestPublishQuiet(t *testing.T) {
	request := createTestRequest(t, "1.0")
	request.Quiet = true
	var output bytes.Buffer
	report, err := newTestPublisher(newFakeTransferer("201"), &output).Publish(request)
	require.NoError(t, err)
	assert.True(t, report.Success)
	assert.Empty(t, output.String())

	transferer := newFakeTransferer("500")
	_, err = newTestPublisher(transferer, &output).Publish(request)
	assert.Error(t, err)
	assert.Empty(t, output.String())
}

func TestPublishInvalidRequest(t *testing.T) {
	transferer := newFakeTransferer("201")
	_, err := newTestPublisher(transferer, &bytes.Buffer{}).Publish(nil)
	var invalidRequest *utils.InvalidRequestError
	assert.True(t, errors.As(err, &invalidRequest))

	request := createTestRequest(t, "1.0")
	request.RepositoryUrl = ""
	_, err = newTestPublisher(transferer, &bytes.Buffer{}).Publish(request)
	assert.True(t, errors.As(err, &invalidRequest))
	assert.Empty(t, transferer.targets())

	_, err = NewPublisher().SetTransport("scp").Publish(createTestRequest(t, "1.0"))
	assert.True(t, errors.As(err, &invalidRequest))

	_, err = NewPublisher().PlanOnly(nil)
	assert.True(t, errors.As(err, &invalidRequest))
}

func TestPublishReservedCharsUploadsNothing(t *testing.T) {
	request := createTestRequest(t, "1.0#rc")
	transferer := newFakeTransferer("201")
	report, err := newTestPublisher(transferer, &bytes.Buffer{}).Publish(request)
	var invalidRequest *utils.InvalidRequestError
	require.True(t, errors.As(err, &invalidRequest))
	assert.Equal(t, "version", invalidRequest.Field)
	assert.Nil(t, report)
	assert.Empty(t, transferer.targets())
}

func TestFailureCause(t *testing.T) {
	rejection := &utils.HttpRejectionError{Target: "http://127.0.0.1/foo.pom", Status: "409"}
	wrapped := fmt.Errorf("publishing com.example:foo:1.0: %w", &utils.BatchFailure{Err: rejection})
	assert.Equal(t, rejection.Error(), failureCause(wrapped))

	other := errors.New("staging failed")
	assert.Equal(t, "staging failed", failureCause(other))
}

func TestPublishLocalFailureUploadsNothing(t *testing.T) {
	request := createTestRequest(t, "1.0")
	request.ArtifactPath += ".missing"
	transferer := newFakeTransferer("201")
	report, err := newTestPublisher(transferer, &bytes.Buffer{}).Publish(request)
	var localIOError *utils.LocalIOError
	assert.True(t, errors.As(err, &localIOError))
	assert.Nil(t, report)
	assert.Empty(t, transferer.targets())
}

func TestPlanOnly(t *testing.T) {
	request := createTestRequest(t, "1.0-SNAPSHOT")
	tasks, err := NewPublisher().PlanOnly(request)
	require.NoError(t, err)
	assert.Len(t, tasks, 12)
	assert.NoDirExists(t, request.StagingDir)

	_, err = NewPublisher().PlanOnly(&entities.PublicationRequest{})
	assert.Error(t, err)
}
