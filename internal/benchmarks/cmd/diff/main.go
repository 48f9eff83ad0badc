// diff is a small CLI to manually run the diffing implementations used for benchmarking.
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/tools/txtar"
	"znkr.io/seqdiff/internal/benchmarks"
)

type config struct {
	lib   string
	list  bool
	x, y  string
	txtar string
}

func main() {
	var cfg config
	flag.StringVar(&cfg.lib, "lib", "seqdiff-myers", "library to use for diffing")
	flag.BoolVar(&cfg.list, "list", false, "list the available libraries and exit")
	flag.StringVar(&cfg.txtar, "txtar", "", "use the x and y files of a txtar archive instead of two input files")
	flag.Parse()

	if cfg.list {
		for _, impl := range benchmarks.Impls {
			fmt.Println(impl.Name)
		}
		return
	}

	switch {
	case cfg.txtar != "" && flag.NArg() != 0:
		fmt.Fprintf(os.Stderr, "error: usage: diff -txtar <file>\n")
		os.Exit(1)
	case cfg.txtar == "" && flag.NArg() != 2:
		fmt.Fprintf(os.Stderr, "error: usage: diff <x> <y>\n")
		os.Exit(1)
	}
	cfg.x, cfg.y = flag.Arg(0), flag.Arg(1)

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config) error {
	var lib *benchmarks.Impl
	for _, l := range benchmarks.Impls {
		if l.Name == cfg.lib {
			lib = &l
		}
	}
	if lib == nil {
		return fmt.Errorf("lib not found %q, use -list to see all", cfg.lib)
	}

	x, y, err := inputs(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(lib.Diff(x, y))
	return err
}

func inputs(cfg config) (x, y []byte, err error) {
	if cfg.txtar == "" {
		if x, err = os.ReadFile(cfg.x); err != nil {
			return nil, nil, err
		}
		if y, err = os.ReadFile(cfg.y); err != nil {
			return nil, nil, err
		}
		return x, y, nil
	}

	ar, err := txtar.ParseFile(cfg.txtar)
	if err != nil {
		return nil, nil, err
	}
	for _, f := range ar.Files {
		switch f.Name {
		case "x":
			x = f.Data
		case "y":
			y = f.Data
		}
	}
	return x, y, nil
}
