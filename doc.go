// Package musicalconductor is an in-process orchestration runtime for
// sequence/movement/beat workflows.
//
// # Philosophy
//
// MusicalConductor schedules named Sequences composed of Movements
// composed of Beats. Callers request a sequence to play; the runtime
// deduplicates, arbitrates resource ownership, queues by priority, and
// drives exactly one sequence's beats at a time through a process-wide
// event bus. Everything downstream of admission is observable only
// through that bus - there is no shared mutable state exposed to
// subscribers.
//
// # Architecture
//
//	┌─────────────────────────────────────┐
//	│         Public Facade               │  Play, Subscribe,
//	│                                      │  RegisterPlugin
//	└──────────────────┬───────────────────┘
//	                   ↓
//	┌─────────────────────────────────────┐
//	│        SequenceOrchestrator          │  admission pipeline,
//	│  dedup → resource → queue → execute   │  queue drainer
//	└──────────────────┬───────────────────┘
//	                   ↓ drives beats on
//	┌─────────────────────────────────────┐
//	│         SequenceExecutor             │  single sequence
//	│   (one sequence active at a time)    │  at a time
//	└──────────────────┬───────────────────┘
//	                   ↓ emits to
//	┌─────────────────────────────────────┐
//	│             EventBus                 │  synchronous,
//	│   sequence:* / movement:* / beat:*    │  wildcard topics
//	└─────────────────────────────────────┘
//
// # Framework Packages
//
//   - bus: process-wide synchronous event bus
//   - sequence: sequence/movement/beat data model and validation
//   - sequtil: name extraction, instance id generation, canonical hashing
//   - registry: sequence and handler registration
//   - dedup: sliding-window duplicate request detection
//   - resource: per-resource ownership and conflict arbitration
//   - queue: priority-ordered execution queue
//   - stats: counters and wait/run-time distributions
//   - executor: beat-driving protocol
//   - orchestrator: admission pipeline and public facade
//   - config: runtime configuration
//   - errors: structured error handling
//   - health: health check aggregation
//   - metric: Prometheus metrics
//   - pkg/cache: generic TTL caching (backs dedup)
//   - pkg/buffer: generic circular buffer (backs stats distributions)
//
// # Usage
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//	conductor := orchestrator.New(orchestrator.Deps{
//	    Bus: bus.New(logger), Registry: registry.New(logger), /* ... */
//	})
//
//	conductor.RegisterPlugin(sequence.Sequence{
//	    Name: "Demo.ping-symphony",
//	    ...
//	}, handlers)
//
//	conductor.Start(ctx)
//	result, err := conductor.Play("Demo", "ping-symphony", payload, sequence.PriorityNormal)
//
// # Design Principles
//
//   - Single active sequence: no two sequences drive beats concurrently.
//   - Explicit dependencies: no package-level globals, loggers and
//     registries are threaded through constructors.
//   - Observability over shared state: subscribers see bus events, never
//     orchestrator internals.
package musicalconductor
