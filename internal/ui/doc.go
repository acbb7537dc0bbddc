// Package ui contains the Bubble Tea program that stands in for the glasses
// while the orchestration layer runs against the simulated host.
//
// Message flow:
//   - The orchestrator writes to the status and log sinks returned by Sinks;
//     each write becomes a statusMsg or logMsg sent into the running program.
//   - The host signals display changes on its Changes channel. Init starts a
//     command that waits on that channel, and every hostChangedMsg refreshes
//     the snapshot and re-arms the wait.
//   - Key presses are routed through a typed handler registry. Gesture keys
//     return tea.Cmd values that drive the host off the update loop, so a
//     click travels host → router → updater → host before it shows up again
//     as a snapshot change.
//
// Rendering scales each container's display geometry onto the terminal, draws
// its border in the display palette and keeps the most recent log lines
// visible under an optional fuzzy filter.
package ui
