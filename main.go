/*
Reqpeek observes outgoing HTTP requests and renders the most recent one
as a readable HTTP/1.1 message, either in the terminal or in a local
live-updating web view.

This file is the entry point for the reqpeek application.
It initializes and executes the root command defined in the cmd package.
*/
package main

import "github.com/reqpeek/reqpeek/cmd"

// main is the entry point of the application.
// It calls the Execute function from the cmd package, which starts the CLI.
func main() {
	cmd.Execute()
}
