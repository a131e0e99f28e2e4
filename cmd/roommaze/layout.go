package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/roommaze/internal/config"
	"github.com/vovakirdan/roommaze/internal/core"
	"github.com/vovakirdan/roommaze/internal/games/maze"
	"github.com/vovakirdan/roommaze/internal/logging"
	"github.com/vovakirdan/roommaze/internal/scene"
)

var (
	flagLayoutFormat string
	flagLayoutWidth  int
	flagLayoutVerify string
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print a generated maze layout",
	Long: `Generate a maze without starting the game and print a summary: entity
counts, the layout fingerprint and the goal room, followed by a top-down map
(text) or every entity (yaml).

With --verify, a saved yaml dump is rebuilt and its fingerprint compared with
a fresh layout from the dump's seed and the current config.

Examples:
  roommaze layout --seed 42
  roommaze layout --seed 42 --difficulty hard --width 90
  roommaze layout --seed 42 --format yaml > maze-42.yaml
  roommaze layout --verify maze-42.yaml`,
	Args: cobra.NoArgs,
	RunE: runLayout,
}

func init() {
	layoutCmd.Flags().StringVar(&flagLayoutFormat, "format", "text", "Output format: text or yaml")
	layoutCmd.Flags().IntVar(&flagLayoutWidth, "width", 61, "Map width in columns (text format)")
	layoutCmd.Flags().StringVar(&flagLayoutVerify, "verify", "", "Check a yaml dump against the generator")
}

func runLayout(cmd *cobra.Command, _ []string) error {
	logger, err := logging.New("layout", flagLogLevel)
	if err != nil {
		return err
	}

	cfg, err := config.LoadMaze(flagConfig)
	if err != nil {
		return err
	}
	if flagLayoutVerify != "" {
		return verifyLayout(cmd, cfg)
	}

	config.ResolvePreset(&cfg, config.DifficultyPreset(flagDifficulty))
	if err := cfg.Validate(); err != nil {
		return err
	}
	layoutCfg := maze.LayoutFor(cfg, "")

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	start := time.Now()
	world := scene.Generate(layoutCfg, rand.New(rand.NewSource(seed)))
	dump := maze.Dump(world, layoutCfg, seed, cfg.Difficulty)
	logger.Debug("layout generated", "seed", seed, "entities", world.Len(), "took", time.Since(start))

	switch flagLayoutFormat {
	case "yaml":
		out, err := dump.Marshal()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	case "text":
		printSummary(cmd, dump)
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprintln(cmd.OutOrStdout(), asciiMap(world, flagLayoutWidth))
		return nil
	default:
		return fmt.Errorf("unknown --format %q (want text or yaml)", flagLayoutFormat)
	}
}

func printSummary(cmd *cobra.Command, d maze.LayoutDump) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Seed:        %d\n", d.Seed)
	fmt.Fprintf(out, "Difficulty:  %s\n", d.Difficulty)
	fmt.Fprintf(out, "Grid:        %dx%d rooms\n", d.GridSize, d.GridSize)
	fmt.Fprintf(out, "Fingerprint: %s\n", d.Fingerprint)
	fmt.Fprintf(out, "Goal room:   (%d, %d)\n", d.GoalRoom[0], d.GoalRoom[1])

	tags := make([]string, 0, len(d.Counts))
	for tag := range d.Counts {
		tags = append(tags, tag)
	}
	slices.Sort(tags)

	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		parts = append(parts, fmt.Sprintf("%s %d", tag, d.Counts[tag]))
	}
	fmt.Fprintf(out, "Entities:    %d (%s)\n", len(d.Entities), strings.Join(parts, ", "))
}

// asciiMap draws the layout on a screen buffer width columns wide.
// Colors are dropped, so the default palette is enough.
func asciiMap(w *scene.World, width int) string {
	width = max(width, 8)
	minX, minZ, maxX, maxZ := w.Bounds()
	m := (maxX - minX) / float64(width)
	height := 1
	if m > 0 {
		height = max(int(math.Ceil((maxZ-minZ)/(2*m))), 1)
	}

	scr := core.NewScreen(width, height)
	maze.DrawMap(scr, core.NewRect(0, 0, width, height), w, nil, nil)
	return scr.String()
}

// verifyLayout checks a dump against its own fingerprint, then regenerates its
// seed under the difficulty the dump records.
func verifyLayout(cmd *cobra.Command, cfg config.MazeConfig) error {
	data, err := os.ReadFile(flagLayoutVerify)
	if err != nil {
		return err
	}
	dump, err := maze.ParseDump(data)
	if err != nil {
		return err
	}

	if err := dump.Verify(cfg, config.DifficultyPreset(flagDifficulty)); err != nil {
		return fmt.Errorf("%s: %w", flagLayoutVerify, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (seed %d, fingerprint %s)\n", flagLayoutVerify, dump.Seed, dump.Fingerprint)
	return nil
}
