package main

import "github.com/Digital-Shane/trakt-watch/internal/cmd"

func main() {
	cmd.Execute()
}
