// cmd/inspect/main.go: Trace the decryption of one ARMAX cheat stage by stage
//
// Usage:
//
//	go run ./cmd/inspect UQRN-ER36-M3RD5 WC60-T93N-MGJBW 7QTG-QEQB-YXP60 ...
package main

import (
	"fmt"
	"io"
	"os"

	"armax-decoder/internal/armax"
	"armax-decoder/internal/crypto"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, "usage: inspect CODE [CODE...]")
		return 2
	}

	codes, err := armax.ParseCodes(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	sched := crypto.DefaultARMAXSchedule()
	for i := 0; i < len(codes); i += 2 {
		t := crypto.TraceARMAXPair(codes[i], codes[i+1], sched)
		fmt.Fprintf(stdout, "Pair[%d]:\n", i/2)
		stages := []struct {
			name string
			v    [2]uint32
		}{
			{"input", t.Input},
			{"byte swap", t.Swapped},
			{"unscramble 1", t.Unscrambled},
			{"rounds", t.Rounds},
			{"unscramble 2", t.Rescrambled},
			{"output", t.Output},
		}
		for _, s := range stages {
			fmt.Fprintf(stdout, "  %-13s %08X %08X\n", s.name, s.v[0], s.v[1])
		}
	}

	dec, err := armax.DecryptCheat(codes, sched, crypto.DefaultAR2Seeds())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	m := dec.Meta
	fmt.Fprintf(stdout, "Game ID: %03X, Cheat ID: %05X, Region: %s, Enable: %v\n", m.GameID, m.CheatID, m.Region, m.Enable)
	fmt.Fprintf(stdout, "Verifier: %d words\n", dec.VerifierWords)
	for i, p := range dec.Pairs() {
		kind := "code"
		if 2*i < dec.VerifierWords {
			kind = "verifier"
		}
		fmt.Fprintf(stdout, "  %s  %s\n", armax.FormatRaw(p[0], p[1]), kind)
	}
	return 0
}
