package main

import "github.com/Norgate-AV/issbuild/cmd"

func main() {
	cmd.Execute()
}
