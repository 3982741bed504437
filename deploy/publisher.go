package deploy

import (
	"errors"
	"time"

	"github.com/jfrog/maven-deploy-go/entities"
	"github.com/jfrog/maven-deploy-go/utils"
)

const bannerSeparator = "-------------------------------------------"

// Publisher publishes a single artifact, with its descriptor and metadata, to a Maven repository.
type Publisher struct {
	transport  TransportType
	transferer Transferer
	renderer   Renderer
	now        func() time.Time
	log        utils.Log
}

func NewPublisher() *Publisher {
	return &Publisher{transport: HttpTransport, now: time.Now, log: &utils.NullLog{}}
}

func (p *Publisher) SetLogger(log utils.Log) *Publisher {
	p.log = log
	return p
}

// SetTransport selects the built-in transport. Ignored when a Transferer was set.
func (p *Publisher) SetTransport(transport TransportType) *Publisher {
	p.transport = transport
	return p
}

func (p *Publisher) SetTransferer(transferer Transferer) *Publisher {
	p.transferer = transferer
	return p
}

func (p *Publisher) SetRenderer(renderer Renderer) *Publisher {
	p.renderer = renderer
	return p
}

func (p *Publisher) SetClock(now func() time.Time) *Publisher {
	p.now = now
	return p
}

// Publish validates the request, stages all documents and checksum files, and uploads them.
// The report is returned whenever the uploads were started, also when they failed.
func (p *Publisher) Publish(request *entities.PublicationRequest) (*entities.PublicationReport, error) {
	if err := p.prepare(request); err != nil {
		return nil, err
	}
	transferer, err := p.getTransferer(request)
	if err != nil {
		return nil, err
	}
	started := p.now()
	assembly, err := NewAssembler(p.getRenderer(request)).SetLogger(p.log).SetClock(p.now).Assemble(request)
	if err != nil {
		return nil, err
	}

	uploader := NewUploader(transferer, request.RepositoryUrl).SetLogger(p.log).SetQuiet(request.Quiet)
	mode := ModeOf(request.Parallel)
	p.log.Debug("Uploading", len(assembly.Uploads), "files,", mode.String())
	outcomes, uploadErr := RunBatch(assembly.Uploads, mode, uploader.Upload)

	report := &entities.PublicationReport{
		Coordinates:   request.Coordinates,
		RepositoryUrl: utils.RemoveCredentials(request.RepositoryUrl),
		Snapshot:      assembly.Plan.IsSnapshot,
		Artifact:      assembly.Artifact,
		Uploads:       outcomes,
		Started:       started.UTC().Format(time.RFC3339),
		Duration:      p.now().Sub(started).String(),
		Success:       uploadErr == nil,
	}
	if !request.Quiet {
		p.printBanner(uploadErr)
	}
	return report, uploadErr
}

// PlanOnly validates the request and returns the upload tasks that Publish would send, without touching the file system.
func (p *Publisher) PlanOnly(request *entities.PublicationRequest) ([]entities.UploadTask, error) {
	if err := p.prepare(request); err != nil {
		return nil, err
	}
	return PlanUploads(Plan(request.Coordinates), request, ChecksumAlgorithms(request.Sha256)), nil
}

func (p *Publisher) prepare(request *entities.PublicationRequest) error {
	if request == nil {
		return utils.NewInvalidRequestError("", "upload artifact options required")
	}
	request.SetDefaults()
	return request.Validate()
}

func (p *Publisher) getTransferer(request *entities.PublicationRequest) (Transferer, error) {
	if p.transferer != nil {
		return p.transferer, nil
	}
	return NewTransferer(p.transport, TransferOptionsFromRequest(request), p.log)
}

func (p *Publisher) getRenderer(request *entities.PublicationRequest) Renderer {
	if p.renderer != nil {
		return p.renderer
	}
	return NewTemplateRenderer(request.TemplateDir)
}

func (p *Publisher) printBanner(uploadErr error) {
	p.log.Output(bannerSeparator)
	if uploadErr == nil {
		p.log.Output("Artifacts uploaded successfully")
		return
	}
	p.log.Output("Artifact Upload failed\n" + failureCause(uploadErr))
}

func failureCause(err error) string {
	var batchFailure *utils.BatchFailure
	if errors.As(err, &batchFailure) {
		return batchFailure.Err.Error()
	}
	return err.Error()
}
