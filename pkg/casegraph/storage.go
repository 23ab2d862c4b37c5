package casegraph

import "context"

// Batch is one ingestion call's worth of upserts, applied atomically
// under the case's exclusion scope. Nodes and Edges are per-mention and
// in list order; repeated mentions of the same entity stay repeated so
// added/merged classification matches the mention list.
type Batch struct {
	Nodes []Node
	Edges []Edge
}

// ApplyResult reports what a batch changed. MissingEdges holds indexes
// into Batch.Edges whose endpoints were absent from the case graph;
// those edges are skipped, the rest of the batch commits.
type ApplyResult struct {
	NodesAdded   int
	NodesMerged  int
	EdgesAdded   int
	EdgesMerged  int
	MissingEdges []int
}

// GraphStorage persists and queries case graphs. Implementations must
// guarantee per-case mutual exclusion for mutations and must never let
// readers observe a partially applied batch. GetGraph returns a copy;
// callers cannot mutate store state through it. Unknown case ids yield
// an empty graph, never an error.
type GraphStorage interface {
	UpsertNode(ctx context.Context, caseID string, node Node) (string, bool, error)
	UpsertEdge(ctx context.Context, caseID string, edge Edge) (string, bool, error)
	Apply(ctx context.Context, caseID string, batch Batch) (ApplyResult, error)
	GetGraph(ctx context.Context, caseID string) (Graph, error)
}
