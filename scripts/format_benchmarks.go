//go:build ignore

// Formats the output of
//
//	go test -bench BenchmarkPipeline -benchmem ./benchmarks | go run scripts/format_benchmarks.go
//
// as one markdown table per pattern.
package main

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
)

type BenchResult struct {
	Stage  string // "parse", "nfa", "dfa", "minimize" or "all"
	NsOp   float64
	BOp    int
	Allocs int
}

var stageOrder = []string{"parse", "nfa", "dfa", "minimize", "all"}

var patternMap = map[string]string{
	"Abb":        "(a|b)*abb",
	"NthFromEnd": "(a|b)*a(a|b)(a|b)(a|b)(a|b)",
	"Nested":     "((a|b)*c(a|bc)+)*(a?b?c?)+",
	"Identifier": "(a|b|c|d|e|f|_)(a|b|c|d|e|f|_|0|1|2|3|4|5|6|7|8|9)*",
}

func main() {
	scanner := bufio.NewScanner(os.Stdin)
	benchRegex := regexp.MustCompile(`^BenchmarkPipeline/(\w+)/(\w+)(?:-\d+)?\s+\d+\s+([\d.]+)\s+ns/op\s+(\d+)\s+B/op\s+(\d+)\s+allocs/op`)

	groups := make(map[string]map[string]BenchResult)

	for scanner.Scan() {
		matches := benchRegex.FindStringSubmatch(scanner.Text())
		if matches == nil {
			continue
		}

		nsOp, _ := strconv.ParseFloat(matches[3], 64)
		bOp, _ := strconv.Atoi(matches[4])
		allocs, _ := strconv.Atoi(matches[5])

		name := matches[1]
		if groups[name] == nil {
			groups[name] = make(map[string]BenchResult)
		}
		groups[name][matches[2]] = BenchResult{Stage: matches[2], NsOp: nsOp, BOp: bOp, Allocs: allocs}
	}

	var names []string
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\n## Pipeline Benchmarks")
	fmt.Println()

	for _, name := range names {
		results := groups[name]
		total := results["all"].NsOp

		fmt.Printf("### %s\n\n", name)
		if pattern, ok := patternMap[name]; ok {
			fmt.Printf("**Pattern:** `%s`\n\n", pattern)
		}
		fmt.Println("| Stage | ns/op | B/op | allocs/op | share of pipeline |")
		fmt.Println("|-------|------:|-----:|----------:|------------------:|")

		for _, stage := range stageOrder {
			r, ok := results[stage]
			if !ok {
				continue
			}
			share := "-"
			if total > 0 && stage != "all" {
				share = fmt.Sprintf("%.0f%%", 100*r.NsOp/total)
			}
			fmt.Printf("| %s | %.1f | %d | %d | %s |\n", r.Stage, r.NsOp, r.BOp, r.Allocs, share)
		}
		fmt.Println()
	}
}
