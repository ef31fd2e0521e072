// Command recipe-sweep runs every recipe across a range of intensities on
// headless sessions and reports how far particles travel, how many are alive
// at once and how long each session takes to go idle.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"confetti/internal/core"
	"confetti/internal/engine"
	"confetti/internal/recipe"
	"confetti/internal/vmath"

	"github.com/benbjohnson/clock"
)

type scenario struct {
	recipe    string
	intensity float64
}

func (s scenario) String() string {
	return fmt.Sprintf("%s@%.2f", s.recipe, s.intensity)
}

type scenarioResult struct {
	scenario
	meanDisplacement float64
	maxDisplacement  float64
	peakLive         int
	ticksToIdle      int // -1 when the step limit was hit first
	spawned          int
	dropped          int
}

func main() {
	steps := flag.Int("steps", 900, "maximum ticks to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	count := flag.Int("count", 150, "particles requested per celebration")
	levels := flag.String("intensities", "0.25,0.5,0.75,1", "comma-separated intensities to sweep")
	only := flag.String("recipes", "", "comma-separated recipes, empty for all")
	flag.Parse()

	intensities, err := parseIntensities(*levels)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	names := recipe.Names()
	if *only != "" {
		names = strings.Split(*only, ",")
	}

	var sets []scenario
	for _, name := range names {
		name = strings.TrimSpace(name)
		if _, ok := recipe.Lookup(name); !ok {
			fmt.Fprintf(os.Stderr, "unknown recipe %q\n", name)
			os.Exit(2)
		}
		for _, in := range intensities {
			sets = append(sets, scenario{recipe: name, intensity: in})
		}
	}

	fmt.Printf("Sweeping %d scenarios (%d workers, %d steps, %d particles)\n", len(sets), *workers, *steps, *count)

	start := time.Now()
	all := sweep(sets, *workers, func(s scenario) scenarioResult {
		return runScenario(s, *count, *steps)
	})
	elapsed := time.Since(start)

	sort.Slice(all, func(i, j int) bool {
		if all[i].recipe != all[j].recipe {
			return all[i].recipe < all[j].recipe
		}
		return all[i].intensity < all[j].intensity
	})

	fmt.Printf("\nResults (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for _, res := range all {
		idle := "never"
		if res.ticksToIdle >= 0 {
			idle = strconv.Itoa(res.ticksToIdle)
		}
		fmt.Printf("%-22s mean=%7.1f max=%7.1f peak=%5d spawned=%5d dropped=%4d idle=%s\n",
			res.scenario, res.meanDisplacement, res.maxDisplacement, res.peakLive, res.spawned, res.dropped, idle)
	}
}

func parseIntensities(s string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || v < 0 || v > 1 {
			return nil, fmt.Errorf("intensity %q must be a number in [0,1]", part)
		}
		out = append(out, v)
	}
	return out, nil
}

// sweep fans scenarios out to a fixed pool of workers.
func sweep(sets []scenario, workers int, run func(scenario) scenarioResult) []scenarioResult {
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan scenario)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range jobs {
				results <- run(s)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, s := range sets {
			jobs <- s
		}
		close(jobs)
	}()

	all := make([]scenarioResult, 0, len(sets))
	for res := range results {
		all = append(all, res)
	}
	return all
}

func runScenario(s scenario, count, steps int) scenarioResult {
	size := core.Size{W: 800, H: 600}
	mock := clock.NewMock()
	eng := engine.New(engine.Options{Viewport: size, Clock: mock, Seed: 1337})
	defer eng.Destroy()

	c := engine.NewCelebration(s.recipe)
	c.Count = count
	c.Intensity = s.intensity
	eng.Celebrate(c)

	origin := vmath.V(size.Center())
	step := time.Second / 60
	res := scenarioResult{scenario: s, ticksToIdle: -1}
	var sum float64
	var samples int
	for tick := 1; tick <= steps; tick++ {
		mock.Add(step)
		if !eng.Frame() && eng.Pending() == 0 {
			res.ticksToIdle = tick
			break
		}
		live := eng.Particles()
		if len(live) > res.peakLive {
			res.peakLive = len(live)
		}
		for _, p := range live {
			d := p.Pos.Dist(origin)
			sum += d
			samples++
			if d > res.maxDisplacement {
				res.maxDisplacement = d
			}
		}
	}
	if samples > 0 {
		res.meanDisplacement = sum / float64(samples)
	}
	st := eng.Stats()
	res.spawned = st.Spawned
	res.dropped = st.Dropped
	return res
}
