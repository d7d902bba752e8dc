// Package viz is the terminal host: it drives an effect on a host.Window from
// a Bubble Tea update loop and paints it with braille characters.
//
//   - [Model]: live session for one effect, with a stats panel
//   - [BrailleSurface]: surface.Surface at 2x4 sub-pixels per cell
//   - [Canvas]: braille grid with per-cell colour
//   - [NewMenu]: effect and preset picker in front of a live session
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Rebuild and remount the effect
//	T     - Cycle themes
//	G     - Toggle GIF recording
//	L     - Release the pointer
//	?     - Show help
//
// Mouse motion over the canvas moves the pointer; motion outside it counts
// as the pointer leaving.
package viz
