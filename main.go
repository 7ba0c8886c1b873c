package main

import "github.com/KaramelBytes/csvexplore-cli/cmd"

func main() {
	cmd.Execute()
}
