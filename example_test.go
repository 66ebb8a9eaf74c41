package stategraph_test

import (
	"context"
	"fmt"

	"github.com/deepnoodle-ai/stategraph"
)

func Example() {
	// A three-node review pipeline: "triage" routes to either "approve" or
	// "reject" depending on the score in the state.
	builder := stategraph.NewGraphBuilder()

	builder.AddNode("triage", stategraph.HandlerFunc(
		func(ctx context.Context, state stategraph.State) (stategraph.State, error) {
			next := state.Copy()
			next["triaged"] = true
			return next, nil
		}))
	builder.AddNode("approve", stategraph.HandlerFunc(
		func(ctx context.Context, state stategraph.State) (stategraph.State, error) {
			next := state.Copy()
			next["decision"] = "approved"
			return next, nil
		}))
	builder.AddNode("reject", stategraph.HandlerFunc(
		func(ctx context.Context, state stategraph.State) (stategraph.State, error) {
			next := state.Copy()
			next["decision"] = "rejected"
			return next, nil
		}))

	builder.AddConditionalEdge("triage",
		func(ctx context.Context, state stategraph.State) string {
			if score, ok := state["score"].(int); ok && score >= 70 {
				return "pass"
			}
			return "fail"
		},
		map[string]string{"pass": "approve", "fail": "reject"})
	builder.SetEntryPoint("triage")

	graph, err := builder.Build()
	if err != nil {
		fmt.Println("build error:", err)
		return
	}

	executor := stategraph.NewExecutor(stategraph.ExecutorOptions{})
	result, err := executor.Execute(context.Background(), stategraph.ExecuteOptions{
		Graph:        graph,
		InitialState: stategraph.State{"score": 85},
	})
	if err != nil {
		fmt.Println("execute error:", err)
		return
	}

	fmt.Println("status:", result.Status)
	fmt.Println("nodes:", result.ExecutedNodes)
	fmt.Println("decision:", result.FinalState["decision"])
	// Output:
	// status: completed
	// nodes: [triage approve]
	// decision: approved
}

func ExampleExecutor_Resume() {
	// A pipeline whose middle node fails on its first attempt. Checkpoints go
	// to an in-memory store; the second run resumes at the failed node.
	builder := stategraph.NewGraphBuilder()
	builder.AddNode("fetch", stategraph.HandlerFunc(
		func(ctx context.Context, state stategraph.State) (stategraph.State, error) {
			next := state.Copy()
			next["fetched"] = true
			return next, nil
		}))
	attempts := 0
	builder.AddNode("transform", stategraph.HandlerFunc(
		func(ctx context.Context, state stategraph.State) (stategraph.State, error) {
			attempts++
			if attempts == 1 {
				return nil, fmt.Errorf("transform unavailable")
			}
			next := state.Copy()
			next["transformed"] = true
			return next, nil
		}))
	builder.AddNode("store", stategraph.HandlerFunc(
		func(ctx context.Context, state stategraph.State) (stategraph.State, error) {
			next := state.Copy()
			next["stored"] = true
			return next, nil
		}))
	builder.AddEdge("fetch", "transform")
	builder.AddEdge("transform", "store")
	builder.SetEntryPoint("fetch")
	graph, _ := builder.Build()

	manager, _ := stategraph.NewCheckpointManager(stategraph.CheckpointManagerOptions{
		Store: stategraph.NewMemoryCheckpointStore(),
	})
	executor := stategraph.NewExecutor(stategraph.ExecutorOptions{
		Callbacks: stategraph.NewCheckpointingCallbacks(manager),
	})

	ctx := context.Background()
	result, _ := executor.Execute(ctx, stategraph.ExecuteOptions{
		Graph:      graph,
		WorkflowID: "order-42",
	})
	fmt.Println("first run:", result.Status)

	resumed, _ := executor.Resume(ctx, stategraph.ResumeOptions{
		Graph:      graph,
		Manager:    manager,
		WorkflowID: "order-42",
	})
	fmt.Println("resumed:", resumed.Status, resumed.ExecutedNodes)
	// Output:
	// first run: failed
	// resumed: completed [transform store]
}
