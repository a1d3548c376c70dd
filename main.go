package main

import "github.com/naka-gawa/debriefr/cmd"

func main() {
	cmd.Execute()
}
