package harness

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Client exit codes.
const (
	ExitOK          = 0
	ExitKeyNotFound = 2
)

var ErrUnexpectedExit = errors.New("unexpected client exit code")

type ClientOp string

const (
	ClientPut ClientOp = "PUT"
	ClientGet ClientOp = "GET"
)

// ClientRequest is one invocation of the store client.
type ClientRequest struct {
	Op     ClientOp
	Key    int
	Value  int64
	Port   int
	Master int
	Direct bool
}

func (r ClientRequest) args() []string {
	direct := "0"
	if r.Direct {
		direct = "1"
	}
	return []string{
		"-p", strconv.Itoa(r.Port),
		"-o", string(r.Op),
		"-k", strconv.Itoa(r.Key),
		"-v", strconv.FormatInt(r.Value, 10),
		"-m", strconv.Itoa(r.Master),
		"-d", direct,
	}
}

// RunClient runs the client binary at path to completion and returns its
// exit code. A client killed by a signal or by ctx yields an error.
func RunClient(ctx context.Context, path string, req ClientRequest) (int, error) {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, path, req.args()...)
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	log.Debugf("client %v key %v via port %v: %s", req.Op, req.Key, req.Port, bytes.TrimSpace(out.Bytes()))
	if err == nil {
		return ExitOK, nil
	}
	if ctx.Err() != nil {
		return -1, errors.Wrapf(ctx.Err(), "client %v key %v did not finish", req.Op, req.Key)
	}
	if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() >= 0 {
		return exitErr.ExitCode(), nil
	}
	return -1, errors.Wrapf(err, "cannot run client %v key %v", req.Op, req.Key)
}

// ExpectExit returns ErrUnexpectedExit unless code is one of want.
func ExpectExit(req ClientRequest, code int, want ...int) error {
	for _, w := range want {
		if code == w {
			return nil
		}
	}
	return errors.Wrapf(ErrUnexpectedExit, "%v key %v via port %v: got %v, want %v",
		req.Op, req.Key, req.Port, code, want)
}
