// Package dashboard implements the interactive terminal panel behind
// "vassctl dashboard".
//
// The panel polls the assistant for its run status, identity and mute/volume
// state, fetching all three concurrently, and lets the user flip the
// microphone and speaker mutes, step the volume, and trigger the wake word
// from the keyboard. Every request runs as a bubbletea command so the UI never
// blocks on the network.
package dashboard
