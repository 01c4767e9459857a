package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/plan-systems/klog"

	"github.com/funcstruct-systems/gofunc/libfunc/catalog"
	"github.com/funcstruct-systems/gofunc/libfunc/funcstruct"
)

func main() {
	nodes := flag.Int("n", 7, "enumerate endofunction structures up to this many nodes")
	dbPath := flag.String("db", "", "catalog db path (empty for memory-only)")
	printAll := flag.Bool("print", false, "print each structure as it is cataloged")

	fset := flag.NewFlagSet("", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	fset.Set("v", "2")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	flag.Parse()

	opts := catalog.DefaultCatalogOpts()
	opts.DbPathName = *dbPath
	cat, err := catalog.OpenCatalog(opts)
	if err != nil {
		klog.Errorf("open catalog: %v", err)
		os.Exit(1)
	}
	defer cat.Close()

	for n := 1; n <= *nodes; n++ {
		se, err := funcstruct.NewStructEnumerator(n)
		if err != nil {
			klog.Errorf("enumerator for n=%d: %v", n, err)
			os.Exit(1)
		}
		se.Each(func(fs funcstruct.Funcstruct) bool {
			added, err := cat.TryAdd(fs)
			if err != nil {
				klog.Errorf("catalog add: %v", err)
				return false
			}
			if !added {
				klog.Warningf("duplicate structure emitted: %v", fs)
			}
			if *printAll {
				fmt.Println(fs)
			}
			return true
		})
		fmt.Printf("n=%-2d  %12d structures (expected %v)\n",
			n, cat.NumStructs(n), se.Cardinality())
	}

	klog.Flush()
}
