// Command dishes manages a menu and draws random orders from it.
package main

import "github.com/mesh-intelligence/dishes/internal/cli"

func main() {
	cli.Execute()
}
