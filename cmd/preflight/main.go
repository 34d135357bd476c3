package main

import "github.com/NVIDIA/pipeline-preflight/pkg/cli"

func main() {
	cli.Execute()
}
