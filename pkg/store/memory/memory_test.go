package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/nyayarakshak/backend/pkg/casegraph"
)

func testNode(t casegraph.NodeType, label, key, source string) casegraph.Node {
	return casegraph.Node{
		ID:            casegraph.NodeID(t, key),
		Type:          t,
		Label:         label,
		NormalizedKey: key,
		Sources:       []string{source},
	}
}

func testEdge(fromID, toID, label, source string) casegraph.Edge {
	from, to := casegraph.CanonicalPair(fromID, toID)
	return casegraph.Edge{
		ID:      casegraph.EdgeID(from, to),
		From:    from,
		To:      to,
		Labels:  []string{label},
		Sources: []string{source},
	}
}

func TestApply(t *testing.T) {
	store := New()
	ctx := context.Background()

	person := testNode(casegraph.NodeTypePerson, "Amit Sharma", "amit sharma", "fir_001")
	place := testNode(casegraph.NodeTypeLocation, "Dadar Station", "dadar station", "fir_001")
	edge := testEdge(person.ID, place.ID, "seen_at", "fir_001")

	res, err := store.Apply(ctx, "case-1", casegraph.Batch{
		Nodes: []casegraph.Node{person, place},
		Edges: []casegraph.Edge{edge},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.NodesAdded != 2 || res.NodesMerged != 0 {
		t.Fatalf("nodes: got added=%d merged=%d, want 2/0", res.NodesAdded, res.NodesMerged)
	}
	if res.EdgesAdded != 1 || res.EdgesMerged != 0 {
		t.Fatalf("edges: got added=%d merged=%d, want 1/0", res.EdgesAdded, res.EdgesMerged)
	}
	if len(res.MissingEdges) != 0 {
		t.Fatalf("unexpected missing edges: %v", res.MissingEdges)
	}

	// Same batch from another source merges everything.
	person2 := person
	person2.Sources = []string{"fir_002"}
	place2 := place
	place2.Sources = []string{"fir_002"}
	edge2 := edge
	edge2.Sources = []string{"fir_002"}

	res, err = store.Apply(ctx, "case-1", casegraph.Batch{
		Nodes: []casegraph.Node{person2, place2},
		Edges: []casegraph.Edge{edge2},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.NodesAdded != 0 || res.NodesMerged != 2 {
		t.Fatalf("nodes: got added=%d merged=%d, want 0/2", res.NodesAdded, res.NodesMerged)
	}
	if res.EdgesAdded != 0 || res.EdgesMerged != 1 {
		t.Fatalf("edges: got added=%d merged=%d, want 0/1", res.EdgesAdded, res.EdgesMerged)
	}

	graph, err := store.GetGraph(ctx, "case-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(graph.Nodes) != 2 || len(graph.Edges) != 1 {
		t.Fatalf("graph: got %d nodes / %d edges, want 2/1", len(graph.Nodes), len(graph.Edges))
	}
	if got := graph.Nodes[0].Sources; len(got) != 2 {
		t.Fatalf("sources not merged: %v", got)
	}
}

func TestApplyReportsMissingEdgeIndexes(t *testing.T) {
	store := New()
	ctx := context.Background()

	person := testNode(casegraph.NodeTypePerson, "Amit Sharma", "amit sharma", "fir_001")
	place := testNode(casegraph.NodeTypeLocation, "Dadar Station", "dadar station", "fir_001")
	ghost := casegraph.NodeID(casegraph.NodeTypeLocation, "nowhere")

	res, err := store.Apply(ctx, "case-1", casegraph.Batch{
		Nodes: []casegraph.Node{person, place},
		Edges: []casegraph.Edge{
			testEdge(person.ID, place.ID, "seen_at", "fir_001"),
			testEdge(person.ID, ghost, "seen_at", "fir_001"),
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.EdgesAdded != 1 {
		t.Fatalf("valid edge must still commit, got added=%d", res.EdgesAdded)
	}
	if len(res.MissingEdges) != 1 || res.MissingEdges[0] != 1 {
		t.Fatalf("expected missing edge index [1], got %v", res.MissingEdges)
	}
}

func TestApplyCanceledContext(t *testing.T) {
	store := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	node := testNode(casegraph.NodeTypePerson, "Amit Sharma", "amit sharma", "fir_001")
	_, err := store.Apply(ctx, "case-1", casegraph.Batch{Nodes: []casegraph.Node{node}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	graph, err := store.GetGraph(context.Background(), "case-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(graph.Nodes) != 0 {
		t.Fatalf("canceled apply must not mutate, got %d nodes", len(graph.Nodes))
	}
}

func TestUpsertEdgeUnknownEndpoint(t *testing.T) {
	store := New()
	ctx := context.Background()

	a := casegraph.NodeID(casegraph.NodeTypePerson, "a")
	b := casegraph.NodeID(casegraph.NodeTypePerson, "b")
	_, _, err := store.UpsertEdge(ctx, "case-1", testEdge(a, b, "knows", "fir_001"))
	if !errors.Is(err, casegraph.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpsertNode(t *testing.T) {
	store := New()
	ctx := context.Background()

	node := testNode(casegraph.NodeTypePerson, "Amit Sharma", "amit sharma", "fir_001")
	id, created, err := store.UpsertNode(ctx, "case-1", node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created || id != node.ID {
		t.Fatalf("got created=%v id=%s, want true/%s", created, id, node.ID)
	}

	_, created, err = store.UpsertNode(ctx, "case-1", node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Fatal("second upsert must merge, not create")
	}
}

func TestGetGraphReturnsCopies(t *testing.T) {
	store := New()
	ctx := context.Background()

	node := testNode(casegraph.NodeTypePerson, "Amit Sharma", "amit sharma", "fir_001")
	if _, err := store.Apply(ctx, "case-1", casegraph.Batch{Nodes: []casegraph.Node{node}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	graph, err := store.GetGraph(ctx, "case-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	graph.Nodes[0].Label = "tampered"
	graph.Nodes[0].Sources[0] = "tampered"

	fresh, err := store.GetGraph(ctx, "case-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fresh.Nodes[0].Label != "Amit Sharma" || fresh.Nodes[0].Sources[0] != "fir_001" {
		t.Fatalf("store state mutated through snapshot: %+v", fresh.Nodes[0])
	}
}

func TestApplyRejectsEmptyCaseID(t *testing.T) {
	store := New()
	_, err := store.Apply(context.Background(), "", casegraph.Batch{})
	if !errors.Is(err, casegraph.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
