package main

import "github.com/noire-dev/aas/cmd/aasinfo/cmd"

func main() {
	cmd.Execute()
}
