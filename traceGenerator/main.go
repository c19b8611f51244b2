package main

import (
	"TxnKV-Trace/benchmark/workload"
	"TxnKV-Trace/configuration"
	"TxnKV-Trace/utils"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
)

var isDebug = false
var isQuiet = false
var logFile = ""
var configFile = ""
var dumpConfig = false
var seed int64
var output = ""

var knobs = configuration.NewTraceConfig()

func main() {
	parseArgs()
	utils.ConfigLogger(isDebug, logFile)

	c, err := loadConfig()
	if err != nil {
		logrus.Fatalf("%v", err)
	}

	if err := run(c, output, dumpConfig, isQuiet); err != nil {
		logrus.Fatalf("%v", err)
	}
}

func loadConfig() (*configuration.TraceConfig, error) {
	if configFile == "" {
		if flag.CommandLine.Changed("seed") {
			knobs.Seed = &seed
		}
		return knobs, knobs.Validate()
	}
	c, err := configuration.LoadTraceConfig(configFile)
	if err != nil {
		return nil, err
	}
	logrus.WithField("config", configFile).Infof(
		"Loaded config: txns %v ops %v keys %v parallel %v fill %v",
		c.NumTxns, c.NumOps, c.NumKeys, c.NumParallel, c.FillKvStore)
	return c, nil
}

// run writes either the resolved configuration or a generated trace to out.
func run(c *configuration.TraceConfig, out string, dump bool, quiet bool) error {
	if dump {
		s, err := workload.ResolveSeed(c.Seed, quiet)
		if err != nil {
			return err
		}
		c.Seed = &s
		if err := configuration.DumpTraceConfig(out, c); err != nil {
			return err
		}
		logrus.Infof("Config written to %v", out)
		return nil
	}

	w, _, err := workload.Generate(c, quiet)
	if err != nil {
		return errors.WithMessage(err, "cannot generate trace")
	}
	if err := workload.WriteTrace(out, w); err != nil {
		return err
	}
	logrus.Infof("Trace with %v transactions written to %v", len(w.Txns), out)
	return nil
}

func parseArgs() {
	flag.IntVar(&knobs.NumTxns, "num_txns", configuration.DefaultNumTxns, "number of transactions")
	flag.IntVar(&knobs.NumOps, "num_ops", configuration.DefaultNumOps, "mean number of GET/PUT operations per transaction")
	flag.Int64Var(&knobs.NumKeys, "num_keys", configuration.DefaultNumKeys, "size of the key range")
	flag.IntVar(&knobs.NumParallel, "num_parallel", configuration.DefaultNumParallel,
		"maximum number of transactions that may run in parallel")
	flag.BoolVar(&knobs.FillKvStore, "fill-kv-store", false, "emit a transaction writing every key first")
	flag.Int64Var(&seed, "seed", 0, "random seed, drawn from system entropy when absent")
	flag.BoolVar(&dumpConfig, "dump-config", false, "write the configuration to output instead of a trace")
	flag.StringVar(&configFile, "config", "", "load the configuration from a file")
	flag.BoolVarP(&isDebug, "debug", "d", false, "debug mode")
	flag.StringVar(&logFile, "log-file", "", "also write log entries to this file")
	flag.BoolVar(&isQuiet, "quiet", false, "do not report the seed")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %v [flags] output\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		logrus.Fatal("Invalid output file.")
	}
	output = flag.Arg(0)
}
