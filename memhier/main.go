// Command memhier builds cache hierarchies and shows how they are wired.
package main

import "github.com/sarchlab/memhier/memhier/cmd"

func main() {
	cmd.Execute()
}
