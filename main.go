package main

import "github.com/deploymenttheory/go-jffs2extract/cmd"

func main() {
	cmd.Execute()
}
