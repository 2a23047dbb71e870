package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"truck-route-optimizer/internal/adapters/mapfile"
	"truck-route-optimizer/internal/config"
	"truck-route-optimizer/internal/services"
)

// optimizer reads a problem file, plans the routes and writes the solution file.
func main() {
	config.Load()
	settings := config.FromEnv()

	in := flag.String("in", "", "problem file (.txt, .yaml or .yml)")
	out := flag.String("out", "solution.txt", "solution file")
	seed := flag.Int64("seed", settings.Seed, "random seed for the initial assignment (0 uses the default)")
	maxSweeps := flag.Int("max-sweeps", settings.MaxSweeps, "cap on improvement sweeps (0 means until converged)")
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *maxSweeps < 0 {
		log.Fatal("-max-sweeps must not be negative")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	problem, err := mapfile.Load(*in)
	if err != nil {
		log.Fatal(err)
	}

	run, err := services.PlanDeliveries(ctx, services.PlanDeliveriesRequest{
		Matrix:    problem.Matrix,
		Trucks:    problem.Trucks,
		Seed:      *seed,
		MaxSweeps: *maxSweeps,
	}, services.PlanDependencies{})
	if err != nil {
		log.Fatal(err)
	}

	if err := mapfile.Save(*out, run); err != nil {
		log.Fatal(err)
	}

	if !run.Reachable() {
		log.Printf("warn=unreachable_route out=%s trucks=%v", *out, run.UnreachableTrucks())
		return
	}
	log.Printf("run_id=%s out=%s total_cost=%s sweeps=%d improvements=%d", run.RunID, *out, mapfile.FormatCost(run.TotalCost), run.Sweeps, run.Improvements)
}
