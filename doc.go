// Package dinebench simulates agents contending for a ring of shared
// resources and reports how long they go hungry.
//
// # Overview
//
// N agents sit around a ring of N resources. Agent i needs resources i and
// (i+1) mod N at the same time. Each agent repeats a fixed number of cycles:
//
//	think (sleep) → acquire both resources → dine (sleep) → release
//
// then times one more acquisition of its pair. That wait is the agent's
// hunger sample, and the run reports the mean and population standard
// deviation across agents.
//
// # Quick Start
//
//	cfg := dinebench.Config{
//	    Agents:       5,
//	    Think:        dinebench.Range{Min: 10, Max: 50},
//	    Dine:         dinebench.Range{Min: 10, Max: 50},
//	    Distribution: dinebench.Exponential,
//	    Cycles:       3,
//	}
//
//	report, err := dinebench.Run(cfg, dinebench.WithSink(dinebench.NewTextSink(os.Stdout)))
//	if err != nil {
//	    log.Fatal(err) // ErrInvalidConfig or ErrInvalidDistribution
//	}
//	report.WriteText(os.Stdout)
//
// # Acquisition Protocol
//
// Picking up the left resource and then the right one deadlocks as soon as
// every agent holds its left and waits for its right. Ring avoids that with
// an arbitrator: a request takes both resources in one step, and only when
// both are free and no older request wants either of them. No agent ever
// holds one resource while waiting for another, so no circular wait can
// form; the oldest pending request always gets its pair once the current
// holders release, so nobody starves.
//
// # Durations
//
// Phase lengths are whole milliseconds drawn by a Sampler:
//   - Uniform: flat over [min, max]
//   - Exponential: inverse-transform draw with mean (min+max)/2, redrawn
//     until it lands in [min, max]
//
// Every agent owns a Sampler seeded from Config.Seed and its seat number,
// so a fixed seed reproduces each agent's phase lengths (the interleaving
// still depends on the scheduler).
//
// # Beyond the Final Wait
//
// Report.Tail summarizes every per-cycle wait (P50/P95/P99 and the P99/P50
// ratio). Sweep reruns a configuration over several table sizes and
// FitContention fits the Universal Scalability Law to meal throughput:
//
//	points, _ := dinebench.Sweep(cfg, []int{2, 3, 5, 8, 13})
//	model, _ := dinebench.FitContention(points)
//	fmt.Printf("α=%.3f β=%.4f\n", model.Alpha, model.Beta)
//
// # Testing
//
// ExclusionProbe is an EventSink that counts holders per resource between
// pick-up and put-down events. AssertCompletes bounds a run by wall-clock
// time, since production runs have no timeout of their own:
//
//	probe := dinebench.NewExclusionProbe(cfg.Agents)
//	report := dinebench.AssertCompletes(t, cfg, 10*time.Second, dinebench.WithSink(probe))
//	dinebench.AssertMutualExclusion(t, probe)
//	dinebench.AssertReportConsistent(t, report)
package dinebench
