// Command regauto converts regular expressions into minimal DFAs and prints
// every stage of the conversion.
//
// Usage:
//
//	regauto -a ab '(a|b)*abb'
//	regauto -a ab --format table --stage dfa 'a+b?'
//	regauto --jobs jobs.yaml --format go --out ./tables
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
)

type cli struct {
	Regex      string `arg:"" optional:"" help:"Regular expression to convert"`
	Alphabet   string `short:"a" help:"Characters of the input alphabet" env:"REGAUTO_ALPHABET"`
	Jobs       string `help:"YAML file listing jobs to run instead of a single expression" type:"existingfile"`
	Stage      string `help:"Stage to print (nfa, dfa, min or all)" enum:"nfa,dfa,min,all" default:"all"`
	Format     string `help:"Output format (text, table or go)" enum:"text,table,go" default:"text"`
	Name       string `help:"Prefix of generated table names" default:"Automaton"`
	Package    string `help:"Package of generated Go files" default:"main"`
	Unexported bool   `help:"Declare unexported tables in generated Go files"`
	Out        string `help:"Directory for generated Go files of a job file" default:"." type:"path"`
	Trace      bool   `help:"Print the partition refinement trace"`
	Verbose    bool   `help:"Log every pipeline stage to stderr"`
	CacheSize  int    `help:"Maximum number of memoized results in a job run" default:"64"`
}

var errNoAlphabet = errors.New("an alphabet is required (--alphabet or REGAUTO_ALPHABET)")

func main() {
	var params cli
	ctx := kong.Parse(&params,
		kong.Name("regauto"),
		kong.Description("Convert regular expressions over a finite alphabet into minimal DFAs."),
	)
	ctx.FatalIfErrorf(run(params, os.Stdout, os.Stderr))
}

// run executes the single expression or the job file described by params.
func run(params cli, stdout, stderr io.Writer) error {
	cache, err := newMemo(params.CacheSize, params.Verbose, stderr)
	if err != nil {
		return err
	}

	if params.Jobs != "" {
		jobs, err := loadJobs(params.Jobs)
		if err != nil {
			return err
		}
		return runJobs(params, jobs, cache, stdout, stderr)
	}

	if params.Alphabet == "" {
		return errNoAlphabet
	}
	j := job{Name: params.Name, Alphabet: params.Alphabet, Regex: params.Regex}
	out, err := cache.compile(j.Alphabet, j.Regex)
	if err != nil {
		return err
	}
	if params.Format == "go" {
		return emitGo(stdout, out, params, j.Name, params.Package)
	}
	return render(stdout, out, params)
}

// runJobs runs every job in order. A failing job is reported on stderr and the
// run continues; the returned error counts the failures.
func runJobs(params cli, jobs *jobFile, cache *memo, stdout, stderr io.Writer) error {
	pkg := params.Package
	if jobs.Package != "" {
		pkg = jobs.Package
	}

	failed := 0
	for _, j := range jobs.Jobs {
		if err := runJob(params, j, pkg, cache, stdout); err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", j.Name, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d jobs failed", failed, len(jobs.Jobs))
	}
	return nil
}

func runJob(params cli, j job, pkg string, cache *memo, stdout io.Writer) error {
	out, err := cache.compile(j.Alphabet, j.Regex)
	if err != nil {
		return err
	}
	if params.Format == "go" {
		return emitGoFile(params.Out, out, params, j.Name, pkg)
	}

	fmt.Fprintf(stdout, "== %s: %s over %s ==\n", j.Name, j.Regex, out.NFA.Alphabet())
	return render(stdout, out, params)
}
