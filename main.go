package main

import "github.com/Mohsinsiddi/tokencli/cmd"

func main() {
	cmd.Execute()
}
