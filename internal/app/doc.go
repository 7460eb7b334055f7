// Package app contains the application wiring. It defines the App struct,
// its configuration and the run lifecycle: load the run configuration, load
// the input, assemble the linear system, write it out and optionally solve
// it. It is decoupled from any specific entrypoint like a CLI.
package app
