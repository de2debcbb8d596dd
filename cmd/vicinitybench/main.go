// Command vicinitybench loads a textual Sokoban level and a seed
// solution, runs one vicinity-search optimization round over it, and
// prints the resulting move sequence and metrics. It exercises the
// whole generate -> search -> reconstruct pipeline the way the
// optimizer package's own tests do, but end to end against a real
// level file instead of an in-memory corridor.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/sokoban-opt/vicinity/optimizer"
	"github.com/sokoban-opt/vicinity/progress"
	"github.com/sokoban-opt/vicinity/sokoboard"
)

func main() {
	app := &cli.App{
		Name:  "vicinitybench",
		Usage: "run one vicinity-search optimization round over a Sokoban level",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "level", Aliases: []string{"l"}, Required: true, Usage: "path to an XSB-style level file"},
			&cli.StringFlag{Name: "seed", Aliases: []string{"s"}, Required: true, Usage: "path to a seed solution file (U/D/L/R moves)"},
			&cli.StringFlag{Name: "vicinity", Aliases: []string{"k"}, Value: "2", Usage: "comma-separated per-depth displacement budget, e.g. 2,2"},
			&cli.StringFlag{Name: "method", Aliases: []string{"m"}, Value: "pushes-moves", Usage: "optimization method (see optimizer.OptimizationMethod)"},
			&cli.IntFlag{Name: "max-cpus", Value: 0, Usage: "worker cap; 0 uses every available core"},
			&cli.IntFlag{Name: "max-box-configurations", Value: 0, Usage: "fixed capacity; 0 estimates from available memory"},
			&cli.BoolFlag{Name: "iterate", Usage: "keep re-running once a round strictly improves"},
			&cli.BoolFlag{Name: "preserve-player-end", Usage: "pin the backward search to the level's recorded end player position"},
			&cli.BoolFlag{Name: "debug", Usage: "log rendezvous/reconstruction discrepancies"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log at debug level instead of info"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "vicinitybench:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	level, err := loadLevel(c.String("level"))
	if err != nil {
		return err
	}
	seed, err := loadSeed(c.String("seed"))
	if err != nil {
		return err
	}
	vicinity, err := parseVicinity(c.String("vicinity"))
	if err != nil {
		return err
	}
	method, err := optimizer.ParseMethod(c.String("method"))
	if err != nil {
		return fmt.Errorf("vicinitybench: %w: %q", err, c.String("method"))
	}

	logLevel := zerolog.InfoLevel
	if c.Bool("verbose") {
		logLevel = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(logLevel).
		With().Timestamp().Logger()
	sink := progress.ZerologSink{Logger: logger}

	opts := []optimizer.Option{
		optimizer.WithIterate(c.Bool("iterate")),
		optimizer.WithPreservePlayerEnd(c.Bool("preserve-player-end")),
		optimizer.WithDebug(c.Bool("debug")),
		optimizer.WithProgressSink(sink),
	}
	if n := c.Int("max-cpus"); n > 0 {
		opts = append(opts, optimizer.WithMaxCPUs(n))
	}
	if n := c.Int("max-box-configurations"); n > 0 {
		opts = append(opts, optimizer.WithMaxBoxConfigurations(n))
	}

	req := optimizer.Request{
		InitialBoard:  level.Initial,
		EndBoard:      level.End,
		SeedSolutions: []sokoboard.Solution{seed},
		Vicinity:      vicinity,
		Method:        method,
	}

	sol, err := optimizer.Optimize(context.Background(), req, opts...)
	if err != nil {
		return fmt.Errorf("vicinitybench: optimize: %w", err)
	}

	fmt.Printf("moves=%d pushes=%d box_lines=%d box_changes=%d pushing_sessions=%d\n",
		sol.MovesCount, sol.PushesCount, sol.BoxLines, sol.BoxChanges, sol.PushingSessions)
	fmt.Println(renderMoves(sol))
	return nil
}

func parseVicinity(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("vicinitybench: invalid vicinity value %q: %w", p, err)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("vicinitybench: vicinity must name at least one depth")
	}
	return out, nil
}
