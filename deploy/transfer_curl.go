package deploy

import (
	"errors"
	"os"
	"os/exec"
	"strconv"
	"strings"

	gofrogcmd "github.com/jfrog/gofrog/io"
	"github.com/jfrog/maven-deploy-go/utils"
)

const (
	curlExecutable = "curl"
	// Written by curl when no HTTP response was received.
	curlNoResponseStatus = "000"
	// Used when the process could not be started or its exit code is unknown.
	unknownExitCode = -1
)

// CurlTransferer uploads files by running curl. The HTTP status is read from curl's standard output.
type CurlTransferer struct {
	executable string
	options    TransferOptions
	log        utils.Log
}

func NewCurlTransferer(options TransferOptions) *CurlTransferer {
	return &CurlTransferer{executable: curlExecutable, options: options, log: &utils.NullLog{}}
}

func (ct *CurlTransferer) SetLogger(log utils.Log) *CurlTransferer {
	ct.log = log
	return ct
}

// SetExecutable overrides the curl binary, mostly for testing.
func (ct *CurlTransferer) SetExecutable(executable string) *CurlTransferer {
	ct.executable = executable
	return ct
}

func (ct *CurlTransferer) Transfer(localPath, targetUrl string) (*TransferResult, error) {
	cmd, err := utils.NewCmd(ct.executable, ct.buildArgs(localPath, targetUrl))
	if err != nil {
		return &TransferResult{ExitCode: unknownExitCode}, err
	}
	cmd.Dir = ct.options.WorkingDir
	ct.log.Debug("Running: " + utils.MaskSecrets(cmd.String(), ct.options.password()))

	stdOut, errorOut, _, err := gofrogcmd.RunCmdWithOutputParser(cmd, false)
	result := &TransferResult{
		Status:  parseCurlStatus(stdOut),
		Message: utils.MaskSecrets(strings.TrimSpace(errorOut), ct.options.password()),
	}
	if err != nil {
		result.ExitCode = exitCodeOf(err)
		return result, errors.New(utils.MaskSecrets(err.Error(), ct.options.password()))
	}
	return result, nil
}

func (ct *CurlTransferer) buildArgs(localPath, targetUrl string) []string {
	noProxy := ct.options.NoProxy
	if noProxy == "" {
		noProxy = "127.0.0.1"
	}
	args := []string{
		"--silent",
		"--show-error",
		"--output", os.DevNull,
		"--write-out", "%{http_code}",
		"--upload-file", localPath,
		"--noproxy", noProxy,
	}
	if ct.options.Auth != nil {
		args = append(args, "-u", ct.options.Auth.Username+":"+ct.options.Auth.Password)
	}
	if ct.options.Insecure {
		args = append(args, "--insecure")
	}
	if ct.options.Timeout > 0 {
		args = append(args, "--max-time", strconv.FormatFloat(ct.options.Timeout.Seconds(), 'f', -1, 64))
	}
	return append(args, targetUrl)
}

func parseCurlStatus(output string) string {
	status := strings.Trim(strings.TrimSpace(output), `"`)
	if status == curlNoResponseStatus {
		return ""
	}
	return status
}

func exitCodeOf(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return unknownExitCode
}
