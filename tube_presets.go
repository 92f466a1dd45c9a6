// tube_presets.go - published Koren parameter sets for common guitar-amp tubes

package main

// tubePresets lists the tube types selectable by Preamp/Poweramp, keyed by
// the name used in presets. Six entries per
// the published tag set: 6DJ8, 6L6CG, 12AX7, 12AU7, 6550, KT88.
var tubePresets = []TubeParams{
	{Name: "6DJ8", Class: TubeTriode, Mu: 33, K: 0.0871, A: 3.263, Rp: 5000, BiasV: -1.5},
	{Name: "6L6CG", Class: TubePentode, Mu: 8, K: 1.379e-3, A: 14.8, KG1: 0.0025, Rp: 1700, BiasV: -18},
	{Name: "12AX7", Class: TubeTriode, Mu: 100, K: 1.73e-6, A: 34.9, Rp: 2500, BiasV: -1.5},
	{Name: "12AU7", Class: TubeTriode, Mu: 20, K: 1.18e-5, A: 17.5, Rp: 7700, BiasV: -8.5},
	{Name: "6550", Class: TubePentode, Mu: 8, K: 8.164e-4, A: 23.5, KG1: 0.0025, Rp: 1500, BiasV: -22},
	{Name: "KT88", Class: TubePentode, Mu: 8, K: 1.329e-3, A: 17.9, KG1: 0.0025, Rp: 1350, BiasV: -24},
}

// findTubeParams looks up a tube by name, falling back to the first entry
// (6DJ8) if the name is unknown.
func findTubeParams(name string) TubeParams {
	for _, p := range tubePresets {
		if p.Name == name {
			return p
		}
	}
	return tubePresets[0]
}

// tubeIndex returns the tube preset index (0-5) for a name, or 0 if unknown,
// matching spec.md's "Indexed 0-5" contract for the published table.
func tubeIndex(name string) int {
	for i, p := range tubePresets {
		if p.Name == name {
			return i
		}
	}
	return 0
}
