// Command loudcheck is the entrypoint for the loudness compliance checker.
// It parses flags, validates config, and either runs system diagnostics
// (--check) or the analysis pipeline followed by report generation.
package main

func main() {
	execute()
}
