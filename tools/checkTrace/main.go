package main

import (
	"TxnKV-Trace/benchmark/workload"
	"TxnKV-Trace/rpc"
	"TxnKV-Trace/utils"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
)

var isDebug = false
var isVerbose = false
var traceFile = ""

func main() {
	parseArgs()
	utils.ConfigLogger(isDebug, "")

	w, err := workload.ReadTrace(traceFile)
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	if err := workload.Validate(w); err != nil {
		logrus.Fatalf("invalid trace %v: %v", traceFile, err)
	}
	printReport(os.Stdout, w)
	if isVerbose {
		dumpTxns(os.Stdout, w)
	}
}

func printReport(out io.Writer, w *workload.Workload) {
	s := workload.ComputeStats(w)
	fmt.Fprintf(out, "transactions: %v\n", s.Txns)
	fmt.Fprintf(out, "fill puts: %v\n", s.FillOps)
	fmt.Fprintf(out, "get/put ops: %v\n", s.SizedOps)
	fmt.Fprintf(out, "waves: %v (widest %v)\n", s.Waves, s.MaxWaveWidth)
	for _, op := range rpc.GeneratedOpTypes() {
		if n := s.Ops[op]; n > 0 {
			fmt.Fprintf(out, "%v: %v\n", op.ConfigName(), n)
		}
	}
	for i, wave := range w.Waves {
		fmt.Fprintf(out, "wave %v: %v txns\n", i, len(wave))
		logrus.Debugf("wave %v: %v", i, wave)
	}
}

// dumpTxns prints every transaction with its dependencies and its ops, keys
// and values shown as their little-endian wire bytes in hex.
func dumpTxns(out io.Writer, w *workload.Workload) {
	for _, t := range w.Txns {
		fmt.Fprintf(out, "txn %v depends on %v\n", t.Id, t.DependsOn)
		for _, op := range t.Ops {
			value := utils.EncodeUint64(op.Value)
			fmt.Fprintf(out, "\t%v key %x value %x\n", op.Kind, op.Key[:], value[:])
		}
	}
}

func parseArgs() {
	flag.BoolVarP(&isDebug, "debug", "d", false, "debug mode")
	flag.StringVarP(&traceFile, "trace", "t", "", "trace file")
	flag.BoolVarP(&isVerbose, "verbose", "v", false, "print every transaction")

	flag.Parse()
	if traceFile == "" {
		flag.Usage()
		logrus.Fatal("Invalid trace file.")
	}
}
