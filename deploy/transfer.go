package deploy

import (
	"fmt"
	"time"

	"github.com/jfrog/maven-deploy-go/entities"
	"github.com/jfrog/maven-deploy-go/utils"
)

type TransportType string

const (
	CurlTransport TransportType = "curl"
	HttpTransport TransportType = "http"
)

// TransferOptions configure how files reach the repository. They are shared by all uploads of a publication.
type TransferOptions struct {
	Auth     *entities.Credentials
	Insecure bool
	// Host for which the proxy configuration is bypassed.
	NoProxy string
	// Working directory of the transfer process.
	WorkingDir string
	// Zero means no timeout.
	Timeout time.Duration
}

func TransferOptionsFromRequest(request *entities.PublicationRequest) TransferOptions {
	return TransferOptions{
		Auth:       request.Auth,
		Insecure:   request.Insecure,
		NoProxy:    request.NoProxy,
		WorkingDir: request.WorkingDir,
		Timeout:    request.Timeout,
	}
}

func (to TransferOptions) password() string {
	if to.Auth == nil {
		return ""
	}
	return to.Auth.Password
}

// TransferResult is what the transport reports about a single file transfer.
type TransferResult struct {
	// Zero when the transfer completed and Status holds the repository response.
	ExitCode int
	// HTTP status code as text, e.g. "201". Empty if no response was received.
	Status string
	// Details reported by the repository or the transfer process.
	Message string
}

// Transferer sends a local file to a URL using PUT semantics.
// A non-nil error means the transfer itself failed. The result is still returned when available.
type Transferer interface {
	Transfer(localPath, targetUrl string) (*TransferResult, error)
}

func NewTransferer(transportType TransportType, options TransferOptions, log utils.Log) (Transferer, error) {
	switch transportType {
	case CurlTransport:
		return NewCurlTransferer(options).SetLogger(log), nil
	case HttpTransport, "":
		return NewHttpTransferer(options).SetLogger(log), nil
	default:
		return nil, utils.NewInvalidRequestError("transport", fmt.Sprintf("must be '%s' or '%s'", CurlTransport, HttpTransport))
	}
}
