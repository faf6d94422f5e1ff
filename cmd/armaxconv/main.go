// cmd/armaxconv/main.go: Decrypt an encrypted cheat listing to raw codes
//
// Usage:
//
//	go run ./cmd/armaxconv -input kh.txt
//	go run ./cmd/armaxconv -config armaxconv.yaml -card kh.webp
//	go run ./cmd/armaxconv -formats
//
// Writes the decrypted listing as "XXXXXXXX YYYYYYYY" lines, a manifest.json
// describing every cheat, and optionally a WebP code card.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"armax-decoder/internal/batch"
	"armax-decoder/internal/card"
	"armax-decoder/internal/cheatlist"
	"armax-decoder/internal/config"
	"armax-decoder/internal/crypto"
	"armax-decoder/internal/formats"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to a JSON or YAML config file")
	input := flag.String("input", "", "Cheat listing to decode")
	format := flag.String("format", "", "Input code type (default: armax; see -formats)")
	output := flag.String("output", "", "Raw listing output (default: <input>.raw.txt)")
	manifest := flag.String("manifest", "", "Manifest path (default: manifest.json next to output)")
	cardPath := flag.String("card", "", "Also render a WebP code card to this path")
	cardBG := flag.String("card-bg", "", "PNG, JPEG or TGA background for the card")
	cardScale := flag.Int("card-scale", 0, "Card upscale factor (default: 2)")
	game := flag.String("game", "", "Game name for the output header (default: input file name)")
	ar2Key := flag.String("ar2-key", "", "Initial AR2 key in hex (default: 04030209)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	testN := flag.Int("test", 0, "Decode only the first N cheats")
	listFormats := flag.Bool("formats", false, "List known code types and exit")

	flag.Parse()

	if *listFormats {
		printFormats()
		return
	}

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Input:          *input,
		Output:         *output,
		Manifest:       *manifest,
		Card:           *cardPath,
		CardBackground: *cardBG,
		Game:           *game,
		Format:         *format,
		AR2Key:         *ar2Key,
		CardScale:      *cardScale,
		Workers:        *workers,
	})

	if cfg.Input == "" {
		fmt.Fprintln(os.Stderr, "Error: no input listing. Use -input or a config file.")
		os.Exit(1)
	}

	codeType, err := formats.Lookup(cfg.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seeds := crypto.DefaultAR2Seeds()
	if key, ok, err := cfg.AR2Seed(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	} else if ok {
		seeds = crypto.RegenerateAR2Seeds(key)
	}

	decode, err := codeType.Format.Decoder(crypto.DefaultARMAXSchedule(), seeds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s cannot be decoded: %v\n", codeType.Name, err)
		os.Exit(1)
	}

	// Load listing
	cheats, err := cheatlist.ParseFile(cfg.Input, codeType.Format.ARMAXText())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading listing: %v\n", err)
		os.Exit(1)
	}

	// Limit for testing
	if *testN > 0 && *testN < len(cheats) {
		cheats = cheats[:*testN]
	}

	if len(cheats) == 0 {
		fmt.Println("No cheats to decode.")
		os.Exit(0)
	}

	fmt.Printf("Cheat decoder: %s → raw\n", codeType.Name)
	fmt.Printf("Cheats: %d, Workers: %d\n", len(cheats), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.Output)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batch.Config{Decode: decode, Workers: cfg.Workers, Progress: true}, cheats)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.3fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Decoded: %d/%d\n", success, len(cheats))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  %s (line %d): %s\n", e.Name, e.Line, e.Error)
		}
	}

	g := batch.Game(cfg.Game, results)
	fmt.Printf("Game ID: %03X (%s)\n", g.ID, g.Region)

	if err := writeListing(cfg.Output, g); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Write manifest
	if err := batch.WriteManifest(cfg.Manifest, g); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", cfg.Manifest)
	}

	if cfg.Card != "" {
		if err := writeCard(cfg, g); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: card: %v\n", err)
		} else {
			fmt.Printf("Card: %s\n", cfg.Card)
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func writeListing(path string, g cheatlist.Game) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := g.WriteText(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func writeCard(cfg config.Config, g cheatlist.Game) error {
	opt := card.Options{Scale: cfg.CardScale}
	if cfg.CardBackground != "" {
		bg, err := card.LoadBackground(cfg.CardBackground)
		if err != nil {
			return err
		}
		opt.Background = bg
	}
	return card.Save(cfg.Card, card.Render(g, opt))
}

func printFormats() {
	for _, ct := range formats.All() {
		mark := " "
		if ct.Format.Decodable() {
			mark = "*"
		}
		fmt.Printf("%s %-8s %-6s %-6s %s\n", mark, ct.Key, ct.Format, ct.Device, ct.Name)
	}
	fmt.Println("\n* = decodable")
}
