package harness

import (
	"context"
	"io/ioutil"
	"os"
	"strconv"
	"sync"
	"time"

	"TxnKV-Trace/configuration"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Cluster owns the master, the shard servers and the run directory of one
// scenario.
type Cluster struct {
	config *configuration.HarnessConfiguration
	runDir string

	lock      sync.Mutex
	processes []*Process
	shards    map[int]*Process
	master    *Process
}

// NewCluster prepares a cluster. When the configuration names no run
// directory a temporary one is created.
func NewCluster(config *configuration.HarnessConfiguration) (*Cluster, error) {
	runDir := config.GetRunDir()
	if runDir == "" {
		dir, err := ioutil.TempDir("", "txnkv-harness-")
		if err != nil {
			return nil, errors.Wrap(err, "cannot create run directory")
		}
		runDir = dir
	} else if err := os.MkdirAll(runDir, 0755); err != nil {
		return nil, errors.Wrapf(err, "cannot create run directory %v", runDir)
	}
	log.Infof("Cluster run directory %v", runDir)
	return &Cluster{
		config: config,
		runDir: runDir,
		shards: make(map[int]*Process),
	}, nil
}

// WithCluster runs fn against a fresh cluster and terminates every process
// it spawned before returning, whatever fn does.
func WithCluster(
	ctx context.Context,
	config *configuration.HarnessConfiguration,
	fn func(ctx context.Context, c *Cluster) error,
) (err error) {
	c, err := NewCluster(config)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := c.Close(); cerr != nil {
			if err == nil {
				err = cerr
			} else {
				log.Errorf("cluster shutdown: %v", cerr)
			}
		}
	}()
	return fn(ctx, c)
}

func (c *Cluster) RunDir() string {
	return c.runDir
}

func (c *Cluster) Config() *configuration.HarnessConfiguration {
	return c.config
}

// Master returns the running master, or nil.
func (c *Cluster) Master() *Process {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.master
}

func (c *Cluster) backoff() Backoff {
	return Backoff{Initial: c.config.GetPollInterval(), Max: c.config.GetMaxPollInterval()}
}

func (c *Cluster) start(ctx context.Context, role Role, port int, args []string) (*Process, error) {
	path, err := FindExecutable(c.config.GetBinDirs(), role)
	if err != nil {
		return nil, err
	}

	readyCtx, cancel := context.WithTimeout(ctx, c.config.GetReadyTimeout())
	defer cancel()
	if err := WaitPortFree(readyCtx, c.backoff(), port); err != nil {
		return nil, err
	}

	p, err := StartProcess(role, port, path, args, c.runDir)
	if err != nil {
		return nil, err
	}
	c.lock.Lock()
	c.processes = append(c.processes, p)
	c.lock.Unlock()

	if !c.config.WaitReady() {
		return p, nil
	}
	err = Poll(readyCtx, c.backoff(), func(ctx context.Context) (bool, error) {
		if p.Exited() {
			if err := p.exitError(); err != nil {
				return false, err
			}
			return false, errors.Errorf("%v exited before listening on port %v, see %v", role, port, p.LogPath())
		}
		return IsListening(ctx, port)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "%v on port %v is not ready", role, port)
	}
	log.Infof("%v is listening on port %v", role, port)
	return p, nil
}

// StartMaster launches the master server on the configured master port.
func (c *Cluster) StartMaster(ctx context.Context) (*Process, error) {
	port := c.config.GetMasterPort()
	p, err := c.start(ctx, Master, port, []string{"-p", strconv.Itoa(port)})
	if err != nil {
		return nil, err
	}
	c.lock.Lock()
	c.master = p
	c.lock.Unlock()
	return p, nil
}

// StartShard launches the i-th shard server, registered with the master.
func (c *Cluster) StartShard(ctx context.Context, i int) (*Process, error) {
	port := c.config.GetShardPort(i)
	p, err := c.start(ctx, Shard, port, []string{
		"-p", strconv.Itoa(port),
		"-m", strconv.Itoa(c.config.GetMasterPort()),
	})
	if err != nil {
		return nil, err
	}
	c.lock.Lock()
	c.shards[i] = p
	c.lock.Unlock()
	return p, nil
}

// StopShard terminates the i-th shard server.
func (c *Cluster) StopShard(i int) error {
	c.lock.Lock()
	p, exist := c.shards[i]
	delete(c.shards, i)
	c.lock.Unlock()
	if !exist {
		return errors.Errorf("shard %v is not running", i)
	}
	log.Infof("Stopping shard %v on port %v", i, p.Port())
	return p.Terminate(c.config.GetTerminateGrace())
}

// Client runs one client request against the i-th shard and returns the
// client's exit code.
func (c *Cluster) Client(ctx context.Context, op ClientOp, key int, shard int, direct bool) (ClientRequest, int, error) {
	req := ClientRequest{
		Op:     op,
		Key:    key,
		Value:  c.config.GetClientValue(),
		Port:   c.config.GetShardPort(shard),
		Master: c.config.GetMasterPort(),
		Direct: direct,
	}
	path, err := FindExecutable(c.config.GetBinDirs(), Client)
	if err != nil {
		return req, -1, err
	}
	clientCtx, cancel := context.WithTimeout(ctx, c.config.GetClientTimeout())
	defer cancel()
	code, err := RunClient(clientCtx, path, req)
	return req, code, err
}

// Settle sleeps for d unless ctx is done first.
func (c *Cluster) Settle(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Close terminates every process the cluster spawned, in parallel.
func (c *Cluster) Close() error {
	c.lock.Lock()
	processes := c.processes
	c.processes = nil
	c.shards = make(map[int]*Process)
	c.master = nil
	c.lock.Unlock()

	grace := c.config.GetTerminateGrace()
	var g errgroup.Group
	for _, p := range processes {
		p := p
		g.Go(func() error {
			return p.Terminate(grace)
		})
	}
	return g.Wait()
}
