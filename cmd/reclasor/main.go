package main

import "github.com/fmadrigalcr/reclasor/cmd/reclasor/cli"

func main() {
	cli.Execute()
}
