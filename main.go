// hexline rebuilds binary files from hex-editor text exports.
//
// Each line of an export starts with a fixed-width address column; hexline drops
// it, decodes the remaining hex digits and writes the bytes to the output file.
package main

import (
	"github.com/pocat/hexline/cmd"
)

func main() {
	cmd.Execute()
}
