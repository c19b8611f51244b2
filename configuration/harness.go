package configuration

import (
	"encoding/json"
	"io/ioutil"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// HarnessConfiguration describes where the store binaries live and how the
// integration harness paces and bounds the processes it spawns.
type HarnessConfiguration struct {
	binDirs []string
	runDir  string

	masterPort    int
	shardPortBase int
	clientValue   int64

	pollInterval    time.Duration
	maxPollInterval time.Duration
	readyTimeout    time.Duration
	settle          time.Duration
	reconfigSettle  time.Duration
	terminateGrace  time.Duration
	clientTimeout   time.Duration
	waitReady       bool
}

func NewDefaultHarnessConfiguration() *HarnessConfiguration {
	return &HarnessConfiguration{
		binDirs:         []string{"build", "build/dev"},
		runDir:          "",
		masterPort:      1025,
		shardPortBase:   1026,
		clientValue:     1000,
		pollInterval:    100 * time.Millisecond,
		maxPollInterval: 5 * time.Second,
		readyTimeout:    30 * time.Second,
		settle:          time.Second,
		reconfigSettle:  10 * time.Second,
		terminateGrace:  5 * time.Second,
		clientTimeout:   30 * time.Second,
		waitReady:       true,
	}
}

// NewHarnessConfiguration loads the JSON file at filePath on top of the
// defaults. An empty path yields the defaults.
func NewHarnessConfiguration(filePath string) (*HarnessConfiguration, error) {
	h := NewDefaultHarnessConfiguration()
	if filePath == "" {
		return h, nil
	}
	data, err := ioutil.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read the harness configuration file %v", filePath)
	}
	if err := h.load(data); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *HarnessConfiguration) load(data []byte) error {
	config := make(map[string]interface{})
	if err := json.Unmarshal(data, &config); err != nil {
		return errors.Wrap(err, "cannot parse the harness json file")
	}
	for key, v := range config {
		switch key {
		case "binaries":
			if err := h.loadBinaries(v); err != nil {
				return err
			}
		case "ports":
			if err := h.loadPorts(v); err != nil {
				return err
			}
		case "timing":
			if err := h.loadTiming(v); err != nil {
				return err
			}
		case "clientValue":
			f, ok := v.(float64)
			if !ok {
				return errors.Errorf("clientValue must be a number, got %v", v)
			}
			h.clientValue = int64(f)
		default:
			return errors.Errorf("unknown harness configuration section %q", key)
		}
	}
	return nil
}

func (h *HarnessConfiguration) loadBinaries(v interface{}) error {
	items, ok := v.(map[string]interface{})
	if !ok {
		return errors.Errorf("binaries must be an object, got %v", v)
	}
	if dirs, ok := items["dirs"]; ok {
		list, ok := dirs.([]interface{})
		if !ok {
			return errors.Errorf("binaries.dirs must be a list, got %v", dirs)
		}
		h.binDirs = make([]string, 0, len(list))
		for _, d := range list {
			s, ok := d.(string)
			if !ok {
				return errors.Errorf("binaries.dirs entries must be strings, got %v", d)
			}
			h.binDirs = append(h.binDirs, s)
		}
	}
	if runDir, ok := items["runDir"]; ok {
		s, ok := runDir.(string)
		if !ok {
			return errors.Errorf("binaries.runDir must be a string, got %v", runDir)
		}
		h.runDir = s
	}
	return nil
}

func (h *HarnessConfiguration) loadPorts(v interface{}) error {
	items, ok := v.(map[string]interface{})
	if !ok {
		return errors.Errorf("ports must be an object, got %v", v)
	}
	for key, p := range items {
		f, ok := p.(float64)
		if !ok || f <= 0 || f > 65535 {
			return errors.Errorf("ports.%v must be a valid port, got %v", key, p)
		}
		switch key {
		case "master":
			h.masterPort = int(f)
		case "shardBase":
			h.shardPortBase = int(f)
		default:
			return errors.Errorf("unknown port setting %q", key)
		}
	}
	return nil
}

func (h *HarnessConfiguration) loadTiming(v interface{}) error {
	items, ok := v.(map[string]interface{})
	if !ok {
		return errors.Errorf("timing must be an object, got %v", v)
	}
	targets := map[string]*time.Duration{
		"pollInterval":    &h.pollInterval,
		"maxPollInterval": &h.maxPollInterval,
		"readyTimeout":    &h.readyTimeout,
		"settle":          &h.settle,
		"reconfigSettle":  &h.reconfigSettle,
		"terminateGrace":  &h.terminateGrace,
		"clientTimeout":   &h.clientTimeout,
	}
	for key, raw := range items {
		if key == "waitReady" {
			b, ok := raw.(bool)
			if !ok {
				return errors.Errorf("timing.waitReady must be a bool, got %v", raw)
			}
			h.waitReady = b
			continue
		}
		target, ok := targets[key]
		if !ok {
			return errors.Errorf("unknown timing setting %q", key)
		}
		s, ok := raw.(string)
		if !ok {
			return errors.Errorf("timing.%v must be a duration string, got %v", key, raw)
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return errors.Wrapf(err, "timing.%v", key)
		}
		*target = d
		log.Debugf("harness timing %v = %v", key, d)
	}
	if h.pollInterval <= 0 {
		return errors.Errorf("timing.pollInterval must be positive, got %v", h.pollInterval)
	}
	if h.maxPollInterval < h.pollInterval {
		h.maxPollInterval = h.pollInterval
	}
	return nil
}

func (h *HarnessConfiguration) GetBinDirs() []string {
	return h.binDirs
}

func (h *HarnessConfiguration) GetRunDir() string {
	return h.runDir
}

func (h *HarnessConfiguration) GetMasterPort() int {
	return h.masterPort
}

// GetShardPort returns the port of the i-th shard server (0-based).
func (h *HarnessConfiguration) GetShardPort(i int) int {
	return h.shardPortBase + i
}

func (h *HarnessConfiguration) GetClientValue() int64 {
	return h.clientValue
}

func (h *HarnessConfiguration) GetPollInterval() time.Duration {
	return h.pollInterval
}

func (h *HarnessConfiguration) GetMaxPollInterval() time.Duration {
	return h.maxPollInterval
}

func (h *HarnessConfiguration) GetReadyTimeout() time.Duration {
	return h.readyTimeout
}

func (h *HarnessConfiguration) GetSettle() time.Duration {
	return h.settle
}

func (h *HarnessConfiguration) GetReconfigSettle() time.Duration {
	return h.reconfigSettle
}

func (h *HarnessConfiguration) GetTerminateGrace() time.Duration {
	return h.terminateGrace
}

func (h *HarnessConfiguration) GetClientTimeout() time.Duration {
	return h.clientTimeout
}

func (h *HarnessConfiguration) WaitReady() bool {
	return h.waitReady
}

// SetBinDirs and the setters below let callers (and tests) override
// individual settings after loading.
func (h *HarnessConfiguration) SetBinDirs(dirs []string) {
	h.binDirs = dirs
}

func (h *HarnessConfiguration) SetRunDir(dir string) {
	h.runDir = dir
}

func (h *HarnessConfiguration) SetWaitReady(b bool) {
	h.waitReady = b
}

func (h *HarnessConfiguration) SetTiming(settle, reconfigSettle, terminateGrace time.Duration) {
	h.settle = settle
	h.reconfigSettle = reconfigSettle
	h.terminateGrace = terminateGrace
}
