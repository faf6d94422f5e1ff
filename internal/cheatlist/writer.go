package cheatlist

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"armax-decoder/internal/armax"
)

// WriteText writes the game as a plain listing: a header, then each cheat's
// name, comment lines prefixed with '#', and its codes as hex pairs.
// Cheats that failed carry their error as a comment and no codes.
func (g Game) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%s\n# Game ID %03X (%s)\n", g.Name, g.ID, g.Region)
	for _, c := range g.Cheats {
		fmt.Fprintf(bw, "\n%s\n", c.Name)
		if c.Comment != "" {
			for _, l := range strings.Split(c.Comment, "\n") {
				fmt.Fprintf(bw, "# %s\n", l)
			}
		}
		if c.State == Failed {
			fmt.Fprintf(bw, "# error: %v\n", c.Err)
			continue
		}
		for i := 0; i+1 < len(c.Codes); i += 2 {
			fmt.Fprintln(bw, armax.FormatRaw(c.Codes[i], c.Codes[i+1]))
		}
	}
	return bw.Flush()
}
