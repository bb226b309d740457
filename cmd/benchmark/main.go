package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
	alien "github.com/zhangmo8/alien-signals"
)

const (
	itersKey = "iters"
	modeKey  = "mode"
)

var (
	ww = []int{1, 10, 100, 1_000}
	hh = []int{1, 10, 100, 1_000}
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Measure propagation latency across graph shapes",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  itersKey,
				Usage: "Mutations per graph shape",
				Value: 100,
			},
			&cli.StringFlag{
				Name:  modeKey,
				Usage: "Propagation mode to benchmark (fast, strict or both)",
				Value: "both",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	iters := int(cmd.Uint(itersKey))

	modes := map[string]alien.PropagationMode{}
	switch cmd.String(modeKey) {
	case "fast":
		modes["fast"] = alien.PropagateFast
	case "strict":
		modes["strict"] = alien.PropagateStrict
	case "both":
		modes["fast"] = alien.PropagateFast
		modes["strict"] = alien.PropagateStrict
	default:
		return fmt.Errorf("unknown mode %q", cmd.String(modeKey))
	}

	for name, mode := range modes {
		benchmarkMode(name, mode, iters)
	}
	return nil
}

func benchmarkMode(name string, mode alien.PropagationMode, iters int) {
	tbl := table.NewWriter()
	tbl.SetTitle("Alien Signals (%s propagation)", name)
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			rs := alien.CreateReactiveSystem(func(from alien.SignalAware, err error) {
				log.Panic(err)
			})
			rs.SetPropagationMode(mode)

			src := alien.Signal(rs, 1)
			for i := 0; i < w; i++ {
				var last interface{ Value() int } = src
				for j := 0; j < h; j++ {
					prev := last
					last = alien.Computed(rs, func(oldValue int) int {
						return prev.Value() + 1
					})
				}
				alien.Effect(rs, func() error {
					last.Value()
					return nil
				})
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				src.SetValue(src.Value() + 1)
				tach.AddTime(time.Since(start))
			}

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("propagate: %d * %d", w, h),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				},
			})
		}
	}

	tbl.Render()
}
