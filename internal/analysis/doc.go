// Package analysis inspects recorded effect runs.
//
//   - [PowerSpectrum] and [DominantFrequency]: spectrum of one snapshot
//     component over time, e.g. the sway of a flock item
//   - [TracePath]: an item's offset path, drawable with [PathToASCII]
//   - [DecayRate]: how fast a spring integrator forgets a perturbation
//
// Snapshots are strided: entity i's component k sits at i*stride+k.
//
//	xs := analysis.Series(trace.States, flock.SnapshotStride, 3, 0)
//	freq, _ := analysis.DominantFrequency(xs, 60)
package analysis
