package utils

import (
	"io"
	"os/exec"
	"strings"
)

// Cmd implements gofrog's io.CmdConfig so it can be executed with the gofrog command runners.
type Cmd struct {
	ExecPath  string
	Command   []string
	Dir       string
	Env       map[string]string
	StrWriter io.WriteCloser
	ErrWriter io.WriteCloser
}

func NewCmd(executable string, cmdArgs []string) (*Cmd, error) {
	execPath, err := exec.LookPath(executable)
	if err != nil {
		return nil, err
	}
	return &Cmd{ExecPath: execPath, Command: cmdArgs}, nil
}

func (config *Cmd) GetCmd() (cmd *exec.Cmd) {
	cmd = exec.Command(config.ExecPath, config.Command...)
	cmd.Dir = config.Dir
	return
}

func (config *Cmd) GetEnv() map[string]string {
	if config.Env == nil {
		return map[string]string{}
	}
	return config.Env
}

func (config *Cmd) GetStdWriter() io.WriteCloser {
	return config.StrWriter
}

func (config *Cmd) GetErrWriter() io.WriteCloser {
	return config.ErrWriter
}

// String returns the command line as it would be typed in a shell. Secrets are not masked.
func (config *Cmd) String() string {
	return strings.Join(append([]string{config.ExecPath}, config.Command...), " ")
}
