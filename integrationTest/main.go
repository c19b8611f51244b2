package main

import (
	"TxnKV-Trace/configuration"
	"TxnKV-Trace/harness"
	"TxnKV-Trace/utils"
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
)

var isDebug = false
var configFile = ""
var binDirs []string
var names []string
var timeout time.Duration

func main() {
	parseArgs()
	utils.ConfigLogger(isDebug, "")

	config, err := configuration.NewHarnessConfiguration(configFile)
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	if len(binDirs) > 0 {
		config.SetBinDirs(binDirs)
	}
	if len(names) == 0 {
		names = harness.ScenarioNames()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	failed := 0
	for _, name := range names {
		s, err := harness.GetScenario(name)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		sctx, cancel := context.WithTimeout(ctx, timeout)
		err = harness.RunScenario(sctx, config, s)
		cancel()
		if err != nil {
			logrus.Errorf("%v", err)
			failed++
		}
		if ctx.Err() != nil {
			break
		}
	}

	if failed > 0 {
		logrus.Errorf("%v of %v scenarios failed", failed, len(names))
		stop()
		os.Exit(1)
	}
	logrus.Infof("All %v scenarios passed", len(names))
}

func parseArgs() {
	flag.BoolVarP(&isDebug, "debug", "d", false, "debug mode")
	flag.StringVarP(&configFile, "config", "c", "", "harness configuration file")
	flag.StringSliceVarP(&binDirs, "bin", "b", nil, "directories holding master-svr, svr and clt")
	flag.StringSliceVarP(&names, "scenario", "s", nil, "scenarios to run (default all)")
	flag.DurationVar(&timeout, "timeout", 5*time.Minute, "time limit per scenario")

	flag.Parse()
}
