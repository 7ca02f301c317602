package main

import "github.com/mthomas46/jirassic-pack-sub000/internal/cmd"

func main() {
	cmd.Execute()
}
