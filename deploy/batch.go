package deploy

import (
	"github.com/jfrog/gofrog/parallel"
	"github.com/jfrog/maven-deploy-go/entities"
	"github.com/jfrog/maven-deploy-go/utils"
)

type Mode int

const (
	// Sequential uploads the tasks one by one, in order, and stops at the first failure.
	Sequential Mode = iota
	// Concurrent starts all tasks at once. Every task is attempted even when another one fails.
	Concurrent
)

func ModeOf(concurrent bool) Mode {
	if concurrent {
		return Concurrent
	}
	return Sequential
}

func (m Mode) String() string {
	if m == Concurrent {
		return "concurrent"
	}
	return "sequential"
}

type UploadFunc func(task entities.UploadTask) (status string, err error)

// RunBatch executes the upload tasks in the given mode.
// The returned outcomes are in task order. Tasks which were never attempted are absent in sequential mode.
// On failure, the error is a *utils.BatchFailure holding the first failure observed.
func RunBatch(tasks []entities.UploadTask, mode Mode, upload UploadFunc) ([]entities.UploadOutcome, error) {
	if len(tasks) == 0 {
		return nil, nil
	}
	if mode == Concurrent {
		return runConcurrently(tasks, upload)
	}
	return runSequentially(tasks, upload)
}

func runSequentially(tasks []entities.UploadTask, upload UploadFunc) ([]entities.UploadOutcome, error) {
	outcomes := make([]entities.UploadOutcome, 0, len(tasks))
	for _, task := range tasks {
		status, err := upload(task)
		outcomes = append(outcomes, newOutcome(task, status, err))
		if err != nil {
			return outcomes, &utils.BatchFailure{Err: err}
		}
	}
	return outcomes, nil
}

func runConcurrently(tasks []entities.UploadTask, upload UploadFunc) ([]entities.UploadOutcome, error) {
	outcomes := make([]entities.UploadOutcome, len(tasks))
	producerConsumer := parallel.NewBounedRunner(len(tasks), false)
	errorChan := make(chan error, 1)

	go func() {
		defer producerConsumer.Done()
		for i := range tasks {
			index := i
			_, _ = producerConsumer.AddTaskWithError(func(int) error {
				status, err := upload(tasks[index])
				outcomes[index] = newOutcome(tasks[index], status, err)
				return err
			}, func(err error) {
				// Keep the first error only.
				select {
				case errorChan <- err:
				default:
				}
			})
		}
	}()
	producerConsumer.Run()

	select {
	case err := <-errorChan:
		return outcomes, &utils.BatchFailure{Err: err}
	default:
		return outcomes, nil
	}
}

func newOutcome(task entities.UploadTask, status string, err error) entities.UploadOutcome {
	outcome := entities.UploadOutcome{Task: task, Succeeded: err == nil, HttpStatus: status}
	if err != nil {
		outcome.Error = err.Error()
	}
	return outcome
}
