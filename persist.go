// persist.go - minimal persisted chain format, plus an optional parameter
// extension (spec.md §6; supplemented per SPEC_FULL.md §6).
//
// Base format: one effect per line, "<type_name> <enabled 0/1> <bypass 0/1>".
// Supplemented: an optional following comment line "# key=value ...",
// ignored by strict-format readers, carrying parameter values so a saved
// chain round-trips its sound and not just its topology.

package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// SaveChain writes the chain's topology (and, for effects this package
// knows how to describe, a parameter comment line) to w.
func SaveChain(chain *EffectChain, w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, e := range chain.Effects() {
		enabled := 0
		if e.Enabled() {
			enabled = 1
		}
		bypass := 0
		if e.Bypassed() {
			bypass = 1
		}
		if _, err := fmt.Fprintf(bw, "%s %d %d\n", e.Type().String(), enabled, bypass); err != nil {
			return err
		}
		if params := describeParams(e); params != "" {
			if _, err := fmt.Fprintf(bw, "# %s\n", params); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// LoadChain clears chain and rebuilds it from r. Lines are "<type>
// <enabled> <bypass>"; an unknown type name is a configuration error
// reported on the line it appears on. A "#" comment line immediately
// following an effect line is parsed as key=value parameters if
// recognized, and otherwise silently ignored — old base-format saves
// remain valid input.
func LoadChain(chain *EffectChain, state *DSPState, r io.Reader) error {
	chain.Clear()
	scanner := bufio.NewScanner(r)
	lineNum := 0
	var pending EffectHandle
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if pending != nil {
				applyParamLine(pending, strings.TrimSpace(strings.TrimPrefix(line, "#")), state.SampleRate)
			}
			continue
		}
		pending = nil
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return fmt.Errorf("ampcore: malformed chain line %d: %q", lineNum, line)
		}
		typ, ok := effectTypeByName(fields[0])
		if !ok {
			return fmt.Errorf("ampcore: unknown effect type %q at line %d", fields[0], lineNum)
		}
		enabled, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("ampcore: bad enabled flag at line %d: %w", lineNum, err)
		}
		bypass, err := strconv.Atoi(fields[2])
		if err != nil {
			return fmt.Errorf("ampcore: bad bypass flag at line %d: %w", lineNum, err)
		}
		eff, err := chain.Add(typ)
		if err != nil {
			return fmt.Errorf("ampcore: line %d: %w", lineNum, err)
		}
		eff.SetEnabled(enabled != 0)
		eff.SetBypass(bypass != 0)
		pending = eff
	}
	return scanner.Err()
}

// describeParams renders the handful of scalar parameters each effect
// type exposes as "key=value" pairs. Effects with no simple scalar
// representation (e.g. those whose state is a rebuilt table) are omitted;
// the base line alone is always enough to reconstruct valid, if default,
// parameters.
func describeParams(e Effect) string {
	switch v := e.(type) {
	case *Boost:
		return fmt.Sprintf("gain=%v", float32frombits(v.gainBits.Load()))
	case *Delay:
		p := v.params.Load()
		return fmt.Sprintf("delaySamples=%v feedback=%v mix=%v", p.delaySamp, p.feedback, p.mix)
	case *Tremolo:
		return fmt.Sprintf("depth=%v", v.depth)
	default:
		return ""
	}
}

func applyParamLine(handle EffectHandle, kv string, sampleRate float32) {
	values := map[string]float32{}
	for _, pair := range strings.Fields(kv) {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			continue
		}
		f, err := strconv.ParseFloat(parts[1], 32)
		if err != nil {
			continue
		}
		values[parts[0]] = float32(f)
	}
	switch v := handle.(type) {
	case *Boost:
		if g, ok := values["gain"]; ok {
			v.SetGain(g)
		}
	case *Delay:
		if d, ok := values["delaySamples"]; ok {
			p := v.params.Load()
			fb := p.feedback
			mix := p.mix
			if x, ok := values["feedback"]; ok {
				fb = x
			}
			if x, ok := values["mix"]; ok {
				mix = x
			}
			v.SetParams(d*1000/sampleRate, fb, 4000, mix, sampleRate)
		}
	case *Tremolo:
		if d, ok := values["depth"]; ok {
			v.depth = clampf(d, 0, 1)
		}
	}
}
