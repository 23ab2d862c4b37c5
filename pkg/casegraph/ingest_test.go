package casegraph_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nyayarakshak/backend/pkg/casegraph"
	"github.com/nyayarakshak/backend/pkg/store/memory"
)

func newPipeline() (*casegraph.Pipeline, *memory.Store) {
	store := memory.New()
	return casegraph.NewPipeline(store), store
}

func sampleExtraction() casegraph.ExtractionResult {
	return casegraph.ExtractionResult{
		Mentions: []casegraph.Mention{
			{Type: casegraph.NodeTypePerson, Label: "Amit Sharma"},
			{Type: casegraph.NodeTypeLocation, Label: "Sector 14, Kharghar"},
			{Type: casegraph.NodeTypeEvent, Label: "Chain Snatching"},
		},
		Relations: []casegraph.Relation{
			{
				FromType:  casegraph.NodeTypePerson,
				FromLabel: "Amit Sharma",
				ToType:    casegraph.NodeTypeEvent,
				ToLabel:   "Chain Snatching",
				Label:     "involved_in",
			},
			{
				FromType:  casegraph.NodeTypeEvent,
				FromLabel: "Chain Snatching",
				ToType:    casegraph.NodeTypeLocation,
				ToLabel:   "Sector 14, Kharghar",
				Label:     "occurred_at",
			},
		},
	}
}

func TestIngest(t *testing.T) {
	pipeline, store := newPipeline()
	ctx := context.Background()

	summary, err := pipeline.Ingest(ctx, "case-1", "fir_001", sampleExtraction())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.NodesAdded != 3 || summary.NodesMerged != 0 {
		t.Fatalf("nodes: got added=%d merged=%d, want 3/0", summary.NodesAdded, summary.NodesMerged)
	}
	if summary.EdgesAdded != 2 || summary.EdgesMerged != 0 {
		t.Fatalf("edges: got added=%d merged=%d, want 2/0", summary.EdgesAdded, summary.EdgesMerged)
	}
	if len(summary.Dangling) != 0 {
		t.Fatalf("unexpected dangling references: %v", summary.Dangling)
	}

	graph, err := store.GetGraph(ctx, "case-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(graph.Nodes) != 3 || len(graph.Edges) != 2 {
		t.Fatalf("graph: got %d nodes / %d edges, want 3/2", len(graph.Nodes), len(graph.Edges))
	}
}

func TestIngestIdempotent(t *testing.T) {
	pipeline, store := newPipeline()
	ctx := context.Background()

	if _, err := pipeline.Ingest(ctx, "case-1", "fir_001", sampleExtraction()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	summary, err := pipeline.Ingest(ctx, "case-1", "fir_001", sampleExtraction())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.NodesAdded != 0 || summary.NodesMerged != 3 {
		t.Fatalf("second ingest nodes: got added=%d merged=%d, want 0/3", summary.NodesAdded, summary.NodesMerged)
	}
	if summary.EdgesAdded != 0 || summary.EdgesMerged != 2 {
		t.Fatalf("second ingest edges: got added=%d merged=%d, want 0/2", summary.EdgesAdded, summary.EdgesMerged)
	}

	graph, err := store.GetGraph(ctx, "case-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(graph.Nodes) != 3 || len(graph.Edges) != 2 {
		t.Fatalf("graph changed on re-ingest: %d nodes / %d edges", len(graph.Nodes), len(graph.Edges))
	}
	for _, node := range graph.Nodes {
		if len(node.Sources) != 1 || node.Sources[0] != "fir_001" {
			t.Fatalf("sources duplicated on re-ingest: %v", node.Sources)
		}
	}
}

func TestIngestDedupesSpellingVariants(t *testing.T) {
	pipeline, store := newPipeline()
	ctx := context.Background()

	first := casegraph.ExtractionResult{
		Mentions: []casegraph.Mention{
			{Type: casegraph.NodeTypePerson, Label: "Amit Sharma"},
		},
	}
	second := casegraph.ExtractionResult{
		Mentions: []casegraph.Mention{
			{Type: casegraph.NodeTypePerson, Label: "  amit   sharma "},
		},
	}

	if _, err := pipeline.Ingest(ctx, "case-1", "fir_001", first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	summary, err := pipeline.Ingest(ctx, "case-1", "fir_002", second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.NodesAdded != 0 || summary.NodesMerged != 1 {
		t.Fatalf("got added=%d merged=%d, want 0/1", summary.NodesAdded, summary.NodesMerged)
	}

	graph, err := store.GetGraph(ctx, "case-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(graph.Nodes) != 1 {
		t.Fatalf("expected a single node, got %d", len(graph.Nodes))
	}
	node := graph.Nodes[0]
	if node.Label != "Amit Sharma" {
		t.Fatalf("label should keep the first spelling, got %q", node.Label)
	}
	if len(node.Sources) != 2 {
		t.Fatalf("expected both sources recorded, got %v", node.Sources)
	}
}

func TestIngestCanonicalizesEdgeDirection(t *testing.T) {
	pipeline, store := newPipeline()
	ctx := context.Background()

	forward := casegraph.ExtractionResult{
		Mentions: []casegraph.Mention{
			{Type: casegraph.NodeTypePerson, Label: "Amit Sharma"},
			{Type: casegraph.NodeTypeLocation, Label: "Dadar Station"},
		},
		Relations: []casegraph.Relation{
			{
				FromType:  casegraph.NodeTypePerson,
				FromLabel: "Amit Sharma",
				ToType:    casegraph.NodeTypeLocation,
				ToLabel:   "Dadar Station",
				Label:     "seen_at",
			},
		},
	}
	reverse := casegraph.ExtractionResult{
		Mentions: []casegraph.Mention{
			{Type: casegraph.NodeTypePerson, Label: "Amit Sharma"},
			{Type: casegraph.NodeTypeLocation, Label: "Dadar Station"},
		},
		Relations: []casegraph.Relation{
			{
				FromType:  casegraph.NodeTypeLocation,
				FromLabel: "Dadar Station",
				ToType:    casegraph.NodeTypePerson,
				ToLabel:   "Amit Sharma",
				Label:     "location_of",
			},
		},
	}

	if _, err := pipeline.Ingest(ctx, "case-1", "fir_001", forward); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	summary, err := pipeline.Ingest(ctx, "case-1", "fir_002", reverse)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.EdgesAdded != 0 || summary.EdgesMerged != 1 {
		t.Fatalf("got added=%d merged=%d, want 0/1", summary.EdgesAdded, summary.EdgesMerged)
	}

	graph, err := store.GetGraph(ctx, "case-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(graph.Edges) != 1 {
		t.Fatalf("expected one canonical edge, got %d", len(graph.Edges))
	}
	edge := graph.Edges[0]
	if edge.From > edge.To {
		t.Fatalf("edge endpoints not in canonical order: %s > %s", edge.From, edge.To)
	}
	if len(edge.Labels) != 2 {
		t.Fatalf("expected both relationship labels to accumulate, got %v", edge.Labels)
	}
}

func TestIngestReportsDanglingRelations(t *testing.T) {
	pipeline, store := newPipeline()
	ctx := context.Background()

	result := casegraph.ExtractionResult{
		Mentions: []casegraph.Mention{
			{Type: casegraph.NodeTypePerson, Label: "Amit Sharma"},
		},
		Relations: []casegraph.Relation{
			{
				FromType:  casegraph.NodeTypePerson,
				FromLabel: "Amit Sharma",
				ToType:    casegraph.NodeTypeLocation,
				ToLabel:   "Unknown Alley",
				Label:     "seen_at",
			},
		},
	}

	summary, err := pipeline.Ingest(ctx, "case-1", "fir_001", result)
	if err != nil {
		t.Fatalf("dangling relation must not fail the batch: %v", err)
	}
	if summary.NodesAdded != 1 {
		t.Fatalf("mention should still be ingested, got added=%d", summary.NodesAdded)
	}
	if len(summary.Dangling) != 1 {
		t.Fatalf("expected one dangling reference, got %v", summary.Dangling)
	}
	dangling := summary.Dangling[0]
	if dangling.FromLabel != "Amit Sharma" || dangling.ToLabel != "Unknown Alley" || dangling.Label != "seen_at" {
		t.Fatalf("unexpected dangling reference: %+v", dangling)
	}

	graph, err := store.GetGraph(ctx, "case-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(graph.Edges) != 0 {
		t.Fatalf("dangling relation must not create an edge, got %d", len(graph.Edges))
	}
}

func TestIngestValidationFailsBeforeMutation(t *testing.T) {
	pipeline, store := newPipeline()
	ctx := context.Background()

	result := casegraph.ExtractionResult{
		Mentions: []casegraph.Mention{
			{Type: casegraph.NodeTypePerson, Label: "Amit Sharma"},
			{Type: casegraph.NodeTypePerson, Label: "   "},
		},
	}

	_, err := pipeline.Ingest(ctx, "case-1", "fir_001", result)
	if !errors.Is(err, casegraph.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	graph, err := store.GetGraph(ctx, "case-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(graph.Nodes) != 0 {
		t.Fatalf("failed batch must leave the graph untouched, got %d nodes", len(graph.Nodes))
	}
}

func TestIngestRejectsEmptyIdentifiers(t *testing.T) {
	pipeline, _ := newPipeline()
	ctx := context.Background()

	if _, err := pipeline.Ingest(ctx, "", "fir_001", sampleExtraction()); !errors.Is(err, casegraph.ErrValidation) {
		t.Fatalf("empty case id: expected ErrValidation, got %v", err)
	}
	if _, err := pipeline.Ingest(ctx, "case-1", "", sampleExtraction()); !errors.Is(err, casegraph.ErrValidation) {
		t.Fatalf("empty source id: expected ErrValidation, got %v", err)
	}
}

func TestIngestCaseIsolation(t *testing.T) {
	pipeline, store := newPipeline()
	ctx := context.Background()

	if _, err := pipeline.Ingest(ctx, "case-1", "fir_001", sampleExtraction()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	other, err := store.GetGraph(ctx, "case-2")
	if err != nil {
		t.Fatalf("unknown case must not error: %v", err)
	}
	if other.CaseID != "case-2" {
		t.Fatalf("unexpected case id %q", other.CaseID)
	}
	if other.Nodes == nil || other.Edges == nil {
		t.Fatal("empty graph must have initialized lists")
	}
	if len(other.Nodes) != 0 || len(other.Edges) != 0 {
		t.Fatalf("case isolation violated: %d nodes / %d edges", len(other.Nodes), len(other.Edges))
	}
}
