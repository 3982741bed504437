package tests

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// FakeRepository is an in-memory Maven repository which accepts PUT requests.
type FakeRepository struct {
	server   *httptest.Server
	mu       sync.Mutex
	files    map[string][]byte
	received []string
	statuses map[string]int
	username string
	password string
}

// NewFakeRepository starts a repository server which is closed at the end of the test.
func NewFakeRepository(t *testing.T) *FakeRepository {
	repository := &FakeRepository{files: map[string][]byte{}, statuses: map[string]int{}}
	repository.server = httptest.NewServer(http.HandlerFunc(repository.handle))
	t.Cleanup(repository.server.Close)
	return repository
}

// Url returns the base URL of the repository, ending with the repository name.
func (fr *FakeRepository) Url() string {
	return fr.server.URL + "/repository/maven"
}

// RequireAuth makes the repository reject requests without these basic auth credentials.
func (fr *FakeRepository) RequireAuth(username, password string) {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	fr.username, fr.password = username, password
}

// RejectWith makes uploads of the given repository path fail with status.
func (fr *FakeRepository) RejectWith(repositoryPath string, status int) {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	fr.statuses[repositoryPath] = status
}

// File returns the content stored at a path relative to Url.
func (fr *FakeRepository) File(repositoryPath string) ([]byte, bool) {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	content, ok := fr.files[repositoryPath]
	return content, ok
}

// Received returns the requested paths relative to Url, in arrival order, including rejected ones.
func (fr *FakeRepository) Received() []string {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	return append([]string(nil), fr.received...)
}

func (fr *FakeRepository) handle(w http.ResponseWriter, r *http.Request) {
	repositoryPath := strings.TrimPrefix(r.URL.Path, "/repository/maven/")
	fr.mu.Lock()
	defer fr.mu.Unlock()
	fr.received = append(fr.received, repositoryPath)

	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if fr.username != "" {
		username, password, ok := r.BasicAuth()
		if !ok || username != fr.username || password != fr.password {
			writeError(w, http.StatusUnauthorized, "Bad credentials")
			return
		}
	}
	if status, ok := fr.statuses[repositoryPath]; ok {
		writeError(w, status, "Upload of "+repositoryPath+" rejected")
		return
	}
	content, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	fr.files[repositoryPath] = content
	w.WriteHeader(http.StatusCreated)
}

// writeError answers in the Artifactory error format.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = fmt.Fprintf(w, `{"errors":[{"status":%d,"message":%q}]}`, status, message)
}
