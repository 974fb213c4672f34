package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/plan-systems/klog"

	"github.com/annsys/go-anngraph/agfile"
	"github.com/annsys/go-anngraph/anngraph/agent"
)

func main() {

	flag.Set("logtostderr", "true")
	flag.Set("v", "2")

	fset := flag.NewFlagSet("", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	fset.Set("v", "2")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <input_file> <output_file>\n", os.Args[0])
		os.Exit(2)
	}
	inputPath := flag.Arg(0)
	outputPath := flag.Arg(1)

	// Load errors abort before evaluation -- no partial output file.
	G, err := agfile.ReadFile(inputPath)
	if err != nil {
		klog.Errorf("load failed: %v", err)
		klog.Flush()
		os.Exit(1)
	}

	rounds, err := agent.New(G).Execute()
	if err != nil {
		var nc *agent.NonConvergence
		if !errors.As(err, &nc) {
			klog.Errorf("evaluation failed: %v", err)
			klog.Flush()
			os.Exit(1)
		}
		// Not fatal: resolved attrs are still written, the unresolved ones
		// carry an explicit marker.
		klog.Warningf("%v", nc)
	}
	klog.V(1).Infof("stabilized in %d round(s)", rounds)

	if err := agfile.WriteFile(outputPath, G); err != nil {
		klog.Errorf("write failed: %v", err)
		klog.Flush()
		os.Exit(1)
	}

	klog.Flush()
}
