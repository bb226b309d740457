package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/cespare/xxhash/v2"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
	alien "github.com/zhangmo8/alien-signals"
)

const (
	graphsKey    = "graphs"
	widthKey     = "width"
	layersKey    = "layers"
	effectsKey   = "effects"
	mutationsKey = "mutations"
	seedKey      = "seed"
)

// Stress-checks that strict and fast propagation agree on observable
// outcomes (computed updates, effect notifications, leaf values) across
// randomized topologies.
func main() {
	cmd := &cli.Command{
		Name:  "stress",
		Usage: "Randomized strict/fast propagation equivalence checker",
		Flags: []cli.Flag{
			&cli.UintFlag{Name: graphsKey, Usage: "Number of random graphs", Value: 50},
			&cli.UintFlag{Name: widthKey, Usage: "Max nodes per layer", Value: 16},
			&cli.UintFlag{Name: layersKey, Usage: "Max computed layers", Value: 8},
			&cli.UintFlag{Name: effectsKey, Usage: "Max effects per graph", Value: 12},
			&cli.UintFlag{Name: mutationsKey, Usage: "Mutation rounds per graph", Value: 25},
			&cli.StringFlag{Name: seedKey, Usage: "Seed phrase", Value: "alien-signals"},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.SetHeader([]string{"graph", "sources", "computeds", "effects", "updates", "notifies", "outcome"})

	mismatches := 0
	for i := 0; i < int(cmd.Uint(graphsKey)); i++ {
		seed := int64(xxhash.Sum64String(fmt.Sprintf("%s-%d", cmd.String(seedKey), i)) & 0x7fffffffffffffff)
		rng := rand.New(rand.NewSource(seed))
		shape := graphShape{
			seed:      seed,
			width:     1 + rng.Intn(int(cmd.Uint(widthKey))),
			layers:    1 + rng.Intn(int(cmd.Uint(layersKey))),
			effects:   1 + rng.Intn(int(cmd.Uint(effectsKey))),
			mutations: int(cmd.Uint(mutationsKey)),
		}

		fast := runScenario(alien.PropagateFast, shape)
		strict := runScenario(alien.PropagateStrict, shape)

		outcome := "match"
		if !fast.matches(strict) {
			outcome = "MISMATCH"
			mismatches++
		}

		tbl.Append([]string{
			fmt.Sprint(i),
			fmt.Sprint(shape.width),
			fmt.Sprint(shape.width * shape.layers),
			fmt.Sprint(shape.effects),
			humanize.Comma(int64(fast.updated.Cardinality())),
			humanize.Comma(int64(fast.notified.Cardinality())),
			outcome,
		})
	}
	tbl.Render()

	if mismatches > 0 {
		return fmt.Errorf("%d of %d graphs diverged between modes", mismatches, cmd.Uint(graphsKey))
	}
	log.Printf("all %d graphs matched across modes", cmd.Uint(graphsKey))
	return nil
}

type graphShape struct {
	seed      int64
	width     int
	layers    int
	effects   int
	mutations int
}

type outcome struct {
	updated  mapset.Set[string]
	notified mapset.Set[string]
	values   []int
}

func (o outcome) matches(other outcome) bool {
	if !o.updated.Equal(other.updated) || !o.notified.Equal(other.notified) {
		return false
	}
	if len(o.values) != len(other.values) {
		return false
	}
	for i, v := range o.values {
		if other.values[i] != v {
			return false
		}
	}
	return true
}

func runScenario(mode alien.PropagationMode, shape graphShape) outcome {
	rs := alien.CreateReactiveSystem(func(from alien.SignalAware, err error) {
		log.Panic(err)
	})
	rs.SetPropagationMode(mode)

	o := outcome{
		updated:  mapset.NewThreadUnsafeSet[string](),
		notified: mapset.NewThreadUnsafeSet[string](),
	}

	rng := rand.New(rand.NewSource(shape.seed))
	prev := make([]interface{ Value() int }, shape.width)
	sources := make([]*alien.WriteableSignal[int], shape.width)
	for i := range prev {
		sources[i] = alien.Signal(rs, rng.Intn(10))
		prev[i] = sources[i]
	}

	var leaves []*alien.ReadonlySignal[int]
	for layer := 1; layer <= shape.layers; layer++ {
		next := make([]interface{ Value() int }, shape.width)
		for i := 0; i < shape.width; i++ {
			name := fmt.Sprintf("c%d_%d", layer, i)
			deps := make([]interface{ Value() int }, 1+rng.Intn(3))
			for j := range deps {
				deps[j] = prev[rng.Intn(shape.width)]
			}
			c := alien.Computed(rs, func(oldValue int) int {
				o.updated.Add(name)
				sum := 0
				for _, d := range deps {
					sum += d.Value()
				}
				return sum
			})
			next[i] = c
			if layer == shape.layers {
				leaves = append(leaves, c)
			}
		}
		prev = next
	}

	for i := 0; i < shape.effects; i++ {
		name := fmt.Sprintf("e%d", i)
		leaf := leaves[rng.Intn(len(leaves))]
		alien.Effect(rs, func() error {
			leaf.Value()
			o.notified.Add(name)
			return nil
		})
	}

	o.updated.Clear()
	o.notified.Clear()

	mutRng := rand.New(rand.NewSource(shape.seed + 1))
	for i := 0; i < shape.mutations; i++ {
		batched := mutRng.Intn(2) == 0
		if batched {
			rs.StartBatch()
		}
		for j := 0; j < 1+mutRng.Intn(3); j++ {
			sources[mutRng.Intn(len(sources))].SetValue(mutRng.Intn(100))
		}
		if batched {
			rs.EndBatch()
		}
	}

	for _, leaf := range leaves {
		o.values = append(o.values, leaf.Value())
	}
	return o
}
