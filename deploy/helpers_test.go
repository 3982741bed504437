package deploy

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jfrog/maven-deploy-go/entities"
	"github.com/stretchr/testify/require"
)

var testClock = func() time.Time {
	return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
}

// fakeTransferer answers every transfer with a fixed result, or with the one registered for the target URL.
type fakeTransferer struct {
	mu        sync.Mutex
	results   map[string]*TransferResult
	errs      map[string]error
	fallback  TransferResult
	transfers []string
}

func newFakeTransferer(status string) *fakeTransferer {
	return &fakeTransferer{
		results:  map[string]*TransferResult{},
		errs:     map[string]error{},
		fallback: TransferResult{Status: status},
	}
}

func (ft *fakeTransferer) Transfer(_, targetUrl string) (*TransferResult, error) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	ft.transfers = append(ft.transfers, targetUrl)
	if result, ok := ft.results[targetUrl]; ok {
		return result, ft.errs[targetUrl]
	}
	result := ft.fallback
	return &result, nil
}

func (ft *fakeTransferer) targets() []string {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	return append([]string(nil), ft.transfers...)
}

func createTestRequest(t *testing.T, version string) *entities.PublicationRequest {
	dir := t.TempDir()
	artifactPath := filepath.Join(dir, "foo.jar")
	require.NoError(t, os.WriteFile(artifactPath, []byte("artifact content"), 0644))
	request := &entities.PublicationRequest{
		Coordinates:   entities.ArtifactCoordinates{GroupId: "com.example", ArtifactId: "foo", Version: version},
		ArtifactPath:  artifactPath,
		RepositoryUrl: "http://127.0.0.1:8081/repository/maven",
		StagingDir:    filepath.Join(dir, "staging"),
	}
	request.SetDefaults()
	return request
}
