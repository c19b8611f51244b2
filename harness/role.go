package harness

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Role int

const (
	Master Role = iota
	Shard
	Client
)

var roleBinaries = map[Role]string{
	Master: "master-svr",
	Shard:  "svr",
	Client: "clt",
}

var roleNames = map[Role]string{
	Master: "master",
	Shard:  "shard",
	Client: "client",
}

var ErrExecutableNotFound = errors.New("executable not found")

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// Binary is the file name of the executable playing role r.
func (r Role) Binary() string {
	return roleBinaries[r]
}

// FindExecutable looks for the binary of role in dirs, in order, and then in
// $PATH. The returned path is absolute when found in dirs.
func FindExecutable(dirs []string, role Role) (string, error) {
	name := role.Binary()
	if name == "" {
		return "", errors.Errorf("no executable for role %v", role)
	}
	for _, dir := range dirs {
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err != nil || !info.Mode().IsRegular() || info.Mode()&0111 == 0 {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			return "", errors.Wrapf(err, "cannot resolve %v", candidate)
		}
		log.Debugf("found %v executable %v", role, abs)
		return abs, nil
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", errors.Wrapf(ErrExecutableNotFound, "%v (%v) in %v or $PATH", name, role, dirs)
	}
	return path, nil
}
