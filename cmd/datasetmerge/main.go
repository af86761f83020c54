// Command datasetmerge merges one annotation dataset directory into
// another: summaries merge key-wise, label and class files merge line-wise
// without duplicates, images are copied over.
package main

import (
	"flag"
	"fmt"
	"os"

	"smoke-annotator/internal/dataset"
)

func main() {
	src := flag.String("src", "", "Source dataset directory (merged into -dst)")
	dst := flag.String("dst", "", "Destination dataset directory")
	flag.Parse()

	if *src == "" || *dst == "" {
		fmt.Println("Usage: datasetmerge -src <dataset dir> -dst <dataset dir>")
		os.Exit(1)
	}

	if err := dataset.Merge(*src, *dst); err != nil {
		fmt.Fprintf(os.Stderr, "Merge failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Merged %s into %s\n", *src, *dst)
}
