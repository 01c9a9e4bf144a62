// Package tui implements the terminal browser using bubbletea.
//
// The screen shows one row per parameter. Up and down pick a row, left and right
// cycle through the values of that row that are still reachable with every other
// row fixed. After each change the other rows are recomputed; a value that is no
// longer reachable snaps to the first one that is. The footer shows what the
// current selection resolves to, with size and modification time for local files.
// A uniquely resolved .txt or extension-less file is previewed below the footer (its
// first 8 KiB, read through the index so bucket objects work too), and a file removed
// since the last scan is reported as not found.
//
// # Keys
//
//   - up/k, down/j: previous or next parameter
//   - left/h, right/l: previous or next value
//   - r: rescan the source
//   - q, ctrl+c: quit
//
// The model is driven by the bubbletea event loop and is not safe for concurrent use.
package tui
