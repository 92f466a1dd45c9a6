// main.go - ampctl, an interactive editor for persisted effect chain files
//
// Standalone tool in the style of the teacher's cmd/ie32to64: it does not
// import the engine's runtime package, it understands one file format and
// round-trips it. Here that format is the chain file persist.go reads and
// writes ("<type> <enabled> <bypass>" plus an optional "# key=value"
// comment line) — ampctl lets a user build or edit one of these files by
// hand, at a REPL, without starting the audio engine at all.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// effectTypeNames mirrors the engine's persisted tag names (effect.go). It
// is data, not behavior: ampctl validates and writes tags, it never runs
// DSP, so it has no need of the Effect interface or its implementations.
var effectTypeNames = []string{
	"NoiseGate", "Compressor", "Overdrive", "Distortion", "Fuzz", "Boost",
	"TubeScreamer", "Chorus", "Flanger", "Phaser", "Tremolo", "Vibrato",
	"Delay", "Reverb", "Wah", "EQ3Band", "EQParametric", "Preamp",
	"Poweramp", "Cabinet", "Clipper",
}

func isKnownType(name string) bool {
	for _, n := range effectTypeNames {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

func canonicalType(name string) string {
	for _, n := range effectTypeNames {
		if strings.EqualFold(n, name) {
			return n
		}
	}
	return name
}

// chainEntry is one line (plus its optional parameter comment) of a chain
// file, held in whatever order the user built it in.
type chainEntry struct {
	typ     string
	enabled bool
	bypass  bool
	params  map[string]string // insertion order not preserved; fine for a hand-edited file
}

func (e chainEntry) paramString() string {
	if len(e.params) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e.params))
	for k := range e.params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + e.params[k]
	}
	return strings.Join(parts, " ")
}

func boolFlag(b bool) int {
	if b {
		return 1
	}
	return 0
}

// editor holds the in-memory chain being built and the file it was last
// loaded from or saved to, if any.
type editor struct {
	entries []chainEntry
	path    string
	dirty   bool
}

func (ed *editor) show(w io.Writer) {
	if len(ed.entries) == 0 {
		fmt.Fprintln(w, "(empty chain)")
		return
	}
	for i, e := range ed.entries {
		status := "enabled"
		if !e.enabled {
			status = "disabled"
		}
		if e.bypass {
			status += ",bypassed"
		}
		line := fmt.Sprintf("%2d  %-14s %s", i, e.typ, status)
		if p := e.paramString(); p != "" {
			line += "  " + p
		}
		fmt.Fprintln(w, line)
	}
}

func (ed *editor) load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var entries []chainEntry
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if len(entries) == 0 {
				continue
			}
			kv := strings.TrimSpace(strings.TrimPrefix(line, "#"))
			last := &entries[len(entries)-1]
			if last.params == nil {
				last.params = map[string]string{}
			}
			for _, pair := range strings.Fields(kv) {
				parts := strings.SplitN(pair, "=", 2)
				if len(parts) == 2 {
					last.params[parts[0]] = parts[1]
				}
			}
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return fmt.Errorf("line %d: malformed chain line %q", lineNum, line)
		}
		enabled, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("line %d: bad enabled flag: %w", lineNum, err)
		}
		bypass, err := strconv.Atoi(fields[2])
		if err != nil {
			return fmt.Errorf("line %d: bad bypass flag: %w", lineNum, err)
		}
		entries = append(entries, chainEntry{
			typ:     canonicalType(fields[0]),
			enabled: enabled != 0,
			bypass:  bypass != 0,
		})
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	ed.entries = entries
	ed.path = path
	ed.dirty = false
	return nil
}

func (ed *editor) save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	for _, e := range ed.entries {
		if _, err := fmt.Fprintf(bw, "%s %d %d\n", e.typ, boolFlag(e.enabled), boolFlag(e.bypass)); err != nil {
			return err
		}
		if p := e.paramString(); p != "" {
			if _, err := fmt.Fprintf(bw, "# %s\n", p); err != nil {
				return err
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	ed.path = path
	ed.dirty = false
	return nil
}

const helpText = `commands:
  list                      list known effect type names
  add <type>                append an effect, enabled, not bypassed
  rm <index>                remove the effect at index
  enable <index> 0|1        set the enabled flag
  bypass <index> 0|1        set the bypass flag
  set <index> key=value...  attach or update parameter comments
  show                      print the current chain
  load <path>               replace the chain with one read from a file
  save <path>               write the current chain to a file
  help                      print this text
  quit                      exit, warning if there are unsaved changes
`

// screen adapts stdin/stdout to the io.ReadWriter term.NewTerminal wants.
type screen struct {
	io.Reader
	io.Writer
}

func main() {
	fd := int(os.Stdin.Fd())
	ed := &editor{}

	if len(os.Args) > 1 {
		if err := ed.load(os.Args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "ampctl: %v\n", err)
			os.Exit(1)
		}
	}

	if !term.IsTerminal(fd) {
		runScript(ed, os.Stdin, os.Stdout)
		return
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ampctl: failed to set raw mode: %v\n", err)
		os.Exit(1)
	}
	defer term.Restore(fd, oldState)

	t := term.NewTerminal(screen{os.Stdin, os.Stdout}, "ampctl> ")
	fmt.Fprintln(t, "ampctl - chain file editor. type 'help' for commands, 'quit' to exit.")
	runREPL(ed, t)
}

// termWriter is satisfied by both *term.Terminal and a plain writer, so
// runCommand can print through either the raw-mode REPL or the script path.
type termWriter interface {
	io.Writer
}

func runREPL(ed *editor, t *term.Terminal) {
	for {
		line, err := t.ReadLine()
		if err != nil {
			fmt.Fprintln(t, "")
			return
		}
		if quit := runCommand(ed, t, line); quit {
			return
		}
	}
}

// runScript handles non-interactive input (e.g. piped from a file), since
// raw terminal mode has nothing to attach to without a real tty.
func runScript(ed *editor, r io.Reader, w io.Writer) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if runCommand(ed, w, scanner.Text()) {
			return
		}
	}
}

func runCommand(ed *editor, w io.Writer, line string) (quit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	switch cmd {
	case "help":
		fmt.Fprint(w, helpText)

	case "list":
		for _, n := range effectTypeNames {
			fmt.Fprintln(w, n)
		}

	case "show":
		ed.show(w)

	case "add":
		if len(args) != 1 {
			fmt.Fprintln(w, "usage: add <type>")
			return false
		}
		if !isKnownType(args[0]) {
			fmt.Fprintf(w, "unknown effect type %q\n", args[0])
			return false
		}
		ed.entries = append(ed.entries, chainEntry{typ: canonicalType(args[0]), enabled: true})
		ed.dirty = true

	case "rm":
		idx, ok := parseIndex(w, args, len(ed.entries))
		if !ok {
			return false
		}
		ed.entries = append(ed.entries[:idx], ed.entries[idx+1:]...)
		ed.dirty = true

	case "enable":
		setFlag(w, ed, args, func(e *chainEntry, v bool) { e.enabled = v })

	case "bypass":
		setFlag(w, ed, args, func(e *chainEntry, v bool) { e.bypass = v })

	case "set":
		if len(args) < 2 {
			fmt.Fprintln(w, "usage: set <index> key=value...")
			return false
		}
		idx, ok := parseIndex(w, args[:1], len(ed.entries))
		if !ok {
			return false
		}
		e := &ed.entries[idx]
		if e.params == nil {
			e.params = map[string]string{}
		}
		for _, pair := range args[1:] {
			parts := strings.SplitN(pair, "=", 2)
			if len(parts) != 2 {
				fmt.Fprintf(w, "ignoring malformed param %q\n", pair)
				continue
			}
			e.params[parts[0]] = parts[1]
		}
		ed.dirty = true

	case "load":
		if len(args) != 1 {
			fmt.Fprintln(w, "usage: load <path>")
			return false
		}
		if err := ed.load(args[0]); err != nil {
			fmt.Fprintf(w, "load: %v\n", err)
		}

	case "save":
		path := ed.path
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			fmt.Fprintln(w, "usage: save <path>")
			return false
		}
		if err := ed.save(path); err != nil {
			fmt.Fprintf(w, "save: %v\n", err)
		}

	case "quit", "exit":
		if ed.dirty {
			fmt.Fprintln(w, "warning: unsaved changes")
		}
		return true

	default:
		fmt.Fprintf(w, "unknown command %q, try 'help'\n", cmd)
	}
	return false
}

func parseIndex(w io.Writer, args []string, count int) (int, bool) {
	if len(args) != 1 {
		fmt.Fprintln(w, "expected an index")
		return 0, false
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil || idx < 0 || idx >= count {
		fmt.Fprintf(w, "index %q out of range\n", args[0])
		return 0, false
	}
	return idx, true
}

func setFlag(w io.Writer, ed *editor, args []string, apply func(e *chainEntry, v bool)) {
	if len(args) != 2 {
		fmt.Fprintln(w, "usage: <command> <index> 0|1")
		return
	}
	idx, ok := parseIndex(w, args[:1], len(ed.entries))
	if !ok {
		return
	}
	v, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintln(w, "expected 0 or 1")
		return
	}
	apply(&ed.entries[idx], v != 0)
	ed.dirty = true
}
