// cmd/main.go
package main

import cmd "github.com/milosgajdos/go-evidence/cmd/isample"

// main starts the isample CLI by delegating to the cobra root command
// defined in the isample package.
func main() {
	cmd.Execute()
}
