package batch

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"armax-decoder/internal/cheatlist"
	"armax-decoder/internal/crypto"
	"armax-decoder/internal/formats"
)

// Config holds all shared resources for a batch run.
type Config struct {
	Decode  formats.Decoder
	Workers int
	// Progress enables the periodic progress line on stdout.
	Progress bool
}

// Result holds the outcome of decoding one cheat.
type Result struct {
	Name    string
	Line    int
	Cheat   cheatlist.Cheat
	Success bool
	Error   string
}

// Run decodes all cheats using a worker pool. A failing cheat is reported in
// its Result and never stops the batch. Results keep the input order.
func Run(cfg Config, cheats []cheatlist.Cheat) []Result {
	total := len(cheats)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.Progress {
		go func() {
			ticker := time.NewTicker(2 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						elapsed := time.Since(start).Seconds()
						rate := float64(p) / elapsed
						fmt.Printf("  [%d/%d] %.1f cheats/sec\n", p, total, rate)
					}
				}
			}
		}()
	}

	// Worker pool
	cheatChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range cheatChan {
				results[idx] = processCheat(cfg, cheats[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range cheats {
		cheatChan <- i
	}
	close(cheatChan)

	wg.Wait()
	close(done)

	return results
}

func processCheat(cfg Config, cheat cheatlist.Cheat) Result {
	fail := func(err error) Result {
		cheat.State = cheatlist.Failed
		cheat.Err = err
		return Result{Name: cheat.Name, Line: cheat.Line, Cheat: cheat, Error: err.Error()}
	}

	if cheat.Err != nil {
		return fail(cheat.Err)
	}
	if len(cheat.Codes) == 0 {
		return fail(fmt.Errorf("no codes: %w", crypto.ErrMalformedInput))
	}
	if cfg.Decode == nil {
		return fail(errors.New("no decoder configured"))
	}

	dec, err := cfg.Decode(cheat.Codes)
	if err != nil {
		return fail(err)
	}

	cheat.Codes = dec.Codes
	cheat.GameID = dec.Meta.GameID
	cheat.ID = dec.Meta.CheatID
	cheat.Enable = dec.Meta.Enable
	cheat.Region = dec.Meta.Region
	cheat.VerifierWords = dec.VerifierWords
	cheat.State = cheatlist.Decrypted

	return Result{Name: cheat.Name, Line: cheat.Line, Cheat: cheat, Success: true}
}

// Game collects the results into a game. Its ID and region come from the
// first cheat that decoded.
func Game(name string, results []Result) cheatlist.Game {
	g := cheatlist.Game{Name: name, Cheats: make([]cheatlist.Cheat, len(results))}
	found := false
	for i, r := range results {
		g.Cheats[i] = r.Cheat
		if r.Success && !found {
			g.ID = r.Cheat.GameID
			g.Region = r.Cheat.Region
			found = true
		}
	}
	return g
}
