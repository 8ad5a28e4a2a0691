// Command bench drives many episodes of a single Core end to end with
// randomized actions and reports the resulting steps/second throughput.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"ragdollcore/ragdoll"
)

func main() {
	episodes := flag.Int("episodes", 200, "number of episodes to run")
	stepsPerEpisode := flag.Int("steps", 500, "physics steps per episode")
	seed := flag.Uint64("seed", 12345, "base RNG seed")
	flag.Parse()

	logger := log.New(os.Stderr, "[bench] ", log.LstdFlags)
	core := ragdoll.New(ragdoll.WithLogger(logger))

	var totalSteps int
	start := time.Now()

	src := rand.New(rand.NewSource(int64(*seed)))
	for e := 0; e < *episodes; e++ {
		s := uint32(*seed) + uint32(e)
		core.Reset(&s)

		for i := 0; i < *stepsPerEpisode; i++ {
			q := src.Intn(2) == 0
			w := !q && src.Intn(2) == 0
			o := src.Intn(2) == 0
			p := !o && src.Intn(2) == 0
			core.SetAction(q, w, o, p)
			core.Step(nil, nil)
			totalSteps++

			if core.GetObservation().GameEnded {
				break
			}
		}
	}

	elapsed := time.Since(start)
	fmt.Printf("ran %d episodes, %d steps in %v (%.0f steps/sec)\n",
		*episodes, totalSteps, elapsed, float64(totalSteps)/elapsed.Seconds())
	fmt.Printf("high score: %.2f\n", core.HighScore())
}
