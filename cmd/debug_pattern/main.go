package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"pscan/core/config"
	"pscan/core/scan"
)

// Prints how the configured pattern treats every path of the configured file source.
// An optional argument only reports paths containing it.
func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	filter := ""
	if len(os.Args) > 1 {
		filter = os.Args[1]
	}

	src := &scan.FileSource{Root: cfg.Scan.Root, Exclude: cfg.Scan.Exclude}
	sc, notices, err := scan.New(cfg.Scan.Pattern, src)
	if err != nil {
		log.Fatal(err)
	}
	for _, n := range notices {
		fmt.Printf("⚠️  %s: %s\n", n.Kind, n.Message)
	}
	fmt.Printf("Pattern: %s\nGroups: %s\n\n", sc.Pattern(), strings.Join(sc.Params(), ", "))

	total, matched, empty := 0, 0, 0
	err = src.Walk(context.Background(), func(path string) error {
		if filter != "" && !strings.Contains(path, filter) {
			return nil
		}
		total++

		key, ok := sc.Extract(path)
		switch {
		case !ok:
			fmt.Printf("File: %s\n  -> no match\n", path)
		case key.IsZero():
			empty++
			fmt.Printf("File: %s\n  ⚠️  matched without named assignments\n", path)
		default:
			matched++
			fmt.Printf("File: %s\n  ✅ %s\n", path, key)
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("\nTotal: %d, matched: %d, empty captures: %d\n", total, matched, empty)
}
