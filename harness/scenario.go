package harness

import (
	"context"
	"sort"

	"TxnKV-Trace/configuration"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Scenario is one end-to-end check against a freshly started cluster.
type Scenario struct {
	Name        string
	Description string
	Run         func(ctx context.Context, c *Cluster) error
}

var scenarios = map[string]*Scenario{
	"single-shard": {
		Name:        "single-shard",
		Description: "PUT and GET through one shard; a missing key is reported as not found",
		Run:         runSingleShard,
	},
	"sharding": {
		Name:        "sharding",
		Description: "keys spread over two shards stay readable from the survivor after one shard stops",
		Run:         runSharding,
	},
	"shard-join": {
		Name:        "shard-join",
		Description: "a shard that joins after writes serves some of the existing keys",
		Run:         runShardJoin,
	},
}

// ScenarioNames lists the registered scenarios in name order.
func ScenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetScenario returns the scenario registered under name.
func GetScenario(name string) (*Scenario, error) {
	s, exist := scenarios[name]
	if !exist {
		return nil, errors.Errorf("unknown scenario %q, known: %v", name, ScenarioNames())
	}
	return s, nil
}

// RunScenario runs s against its own cluster.
func RunScenario(ctx context.Context, config *configuration.HarnessConfiguration, s *Scenario) error {
	log.Infof("Running scenario %v: %v", s.Name, s.Description)
	err := WithCluster(ctx, config, s.Run)
	if err != nil {
		return errors.Wrapf(err, "scenario %v", s.Name)
	}
	log.Infof("Scenario %v passed", s.Name)
	return nil
}

func startShards(ctx context.Context, c *Cluster, shards ...int) error {
	if _, err := c.StartMaster(ctx); err != nil {
		return err
	}
	for _, i := range shards {
		if _, err := c.StartShard(ctx, i); err != nil {
			return err
		}
	}
	return c.Settle(ctx, c.Config().GetSettle())
}

// expect runs one client request and fails unless it exits with one of want.
func expect(ctx context.Context, c *Cluster, op ClientOp, key, shard int, direct bool, want ...int) error {
	req, code, err := c.Client(ctx, op, key, shard, direct)
	if err != nil {
		return err
	}
	return ExpectExit(req, code, want...)
}

// countOK runs GETs for keys and returns how many succeeded. Any exit code
// other than success or key-not-found is an error.
func countOK(ctx context.Context, c *Cluster, keys []int, shard int, direct bool) (int, error) {
	ok := 0
	for _, k := range keys {
		req, code, err := c.Client(ctx, ClientGet, k, shard, direct)
		if err != nil {
			return ok, err
		}
		if err := ExpectExit(req, code, ExitOK, ExitKeyNotFound); err != nil {
			return ok, err
		}
		if code == ExitOK {
			ok++
		}
	}
	return ok, nil
}

func keyRange(from, to int) []int {
	keys := make([]int, 0, to-from+1)
	for k := from; k <= to; k++ {
		keys = append(keys, k)
	}
	return keys
}

func runSingleShard(ctx context.Context, c *Cluster) error {
	if err := startShards(ctx, c, 0); err != nil {
		return err
	}
	for _, k := range []int{1, 2} {
		if err := expect(ctx, c, ClientPut, k, 0, false, ExitOK); err != nil {
			return err
		}
	}
	for _, k := range []int{1, 2} {
		if err := expect(ctx, c, ClientGet, k, 0, false, ExitOK); err != nil {
			return err
		}
	}
	return expect(ctx, c, ClientGet, 3, 0, false, ExitKeyNotFound)
}

func runSharding(ctx context.Context, c *Cluster) error {
	if err := startShards(ctx, c, 0, 1); err != nil {
		return err
	}
	keys := keyRange(1, 20)
	for _, k := range keys {
		if err := expect(ctx, c, ClientPut, k, 0, false, ExitOK); err != nil {
			return err
		}
	}
	for _, k := range keys {
		if err := expect(ctx, c, ClientGet, k, 0, false, ExitOK); err != nil {
			return err
		}
	}

	if err := c.StopShard(1); err != nil {
		return err
	}
	if err := c.Settle(ctx, c.Config().GetSettle()); err != nil {
		return err
	}
	ok, err := countOK(ctx, c, keys, 0, false)
	if err != nil {
		return err
	}
	log.Infof("%v of %v keys readable after stopping shard 1", ok, len(keys))
	if ok == 0 {
		return errors.New("no key is readable from the remaining shard")
	}
	return nil
}

func runShardJoin(ctx context.Context, c *Cluster) error {
	if err := startShards(ctx, c, 0, 1); err != nil {
		return err
	}
	keys := keyRange(1, 5)
	for _, k := range keys {
		if err := expect(ctx, c, ClientPut, k, 0, false, ExitOK); err != nil {
			return err
		}
	}

	if _, err := c.StartShard(ctx, 2); err != nil {
		return err
	}
	if err := c.Settle(ctx, c.Config().GetReconfigSettle()); err != nil {
		return err
	}
	ok, err := countOK(ctx, c, keys, 2, true)
	if err != nil {
		return err
	}
	log.Infof("%v of %v keys served directly by the new shard", ok, len(keys))
	if ok == 0 {
		return errors.New("the joined shard serves none of the existing keys")
	}
	return nil
}
