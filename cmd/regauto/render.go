package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/KromDaniel/regauto/internal/codegen"
	"github.com/KromDaniel/regauto/pkg/regauto"
)

var errGoNeedsDFA = errors.New("go output needs a deterministic stage (dfa, min or all)")

type stage struct {
	title     string
	automaton *regauto.Automaton
	subsets   [][]int // only for the subset construction stage
}

func stages(out *regauto.Output, name string) []stage {
	nfa := stage{title: "NFA", automaton: out.NFA}
	dfa := stage{title: "DFA", automaton: out.DFA, subsets: out.Subsets}
	minimal := stage{title: "Minimal DFA", automaton: out.Result.Minimal()}

	switch name {
	case "nfa":
		return []stage{nfa}
	case "dfa":
		return []stage{dfa}
	case "min":
		return []stage{minimal}
	}
	return []stage{nfa, dfa, minimal}
}

// render prints the requested stages of out as text or tables.
func render(w io.Writer, out *regauto.Output, params cli) error {
	for _, st := range stages(out, params.Stage) {
		a := st.automaton
		fmt.Fprintf(w, "%s: %d states, %d transitions\n", st.title, a.Len(), a.TransitionCount())
		if params.Format == "table" {
			if err := writeTable(w, st); err != nil {
				return err
			}
		} else {
			fmt.Fprint(w, a)
		}
	}

	if params.Stage == "min" || params.Stage == "all" {
		res := out.Result
		fmt.Fprintf(w, "Unreachable states removed: %v\n", res.UnreachableRemoved)
		fmt.Fprintf(w, "Identity states removed: %v\n", res.IdentitiesRemoved)
	}
	if params.Trace {
		fmt.Fprintf(w, "Refinement trace:\n%s", out.Result.TraceString())
	}
	return nil
}

// writeTable prints one row per state and one column per symbol. NFA tables
// get an extra ε column.
func writeTable(w io.Writer, st stage) error {
	a := st.automaton
	symbols := a.Alphabet().Symbols()
	if a.Kind() == regauto.NFA {
		symbols = append(symbols, regauto.Epsilon)
	}

	header := []string{"State"}
	for _, r := range symbols {
		header = append(header, regauto.SymbolString(r))
	}
	if st.subsets != nil {
		header = append(header, "NFA states")
	}

	// Headers are alphabet symbols and must be printed as given.
	table := tablewriter.NewTable(w, tablewriter.WithHeaderAutoFormat(tw.Off))
	table.Header(header)

	for i, s := range a.States() {
		row := []string{a.Name(s.ID)}
		for _, r := range symbols {
			var targets []string
			for _, t := range s.Transitions {
				if t.Symbol == r {
					targets = append(targets, a.Name(t.To))
				}
			}
			if len(targets) == 0 {
				targets = []string{"-"}
			}
			row = append(row, strings.Join(targets, ", "))
		}
		if st.subsets != nil {
			row = append(row, "{"+joinInts(st.subsets[i])+"}")
		}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("failed to build table: %w", err)
		}
	}
	return table.Render()
}

// emitGo writes the DFA selected by params as Go tables to w.
func emitGo(w io.Writer, out *regauto.Output, params cli, name, pkg string) error {
	var dfa *regauto.Automaton
	switch params.Stage {
	case "nfa":
		return errGoNeedsDFA
	case "dfa":
		dfa = out.DFA
	default:
		dfa = out.Result.Minimal()
	}
	return codegen.Emit(w, dfa, codegen.Config{
		Name:       name,
		Package:    pkg,
		Unexported: params.Unexported,
	})
}

// emitGoFile writes the tables of one job to <dir>/<name>_tables.go.
func emitGoFile(dir string, out *regauto.Output, params cli, name, pkg string) error {
	var buf bytes.Buffer
	if err := emitGo(&buf, out, params, name, pkg); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, strings.ToLower(name)+"_tables.go")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	return nil
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}
