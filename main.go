package main

import cmd "github.com/rohmanhakim/song-finder/internal/cli"

func main() {
	cmd.Execute()
}
