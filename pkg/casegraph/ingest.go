package casegraph

import (
	"context"
	"fmt"
)

// Pipeline ingests extraction results into a graph store. Normalization
// and validation happen before the store is touched; the store's
// exclusion scope covers only the in-memory upsert phase, never any
// upstream I/O the caller may have done to produce the result.
type Pipeline struct {
	store GraphStorage
}

func NewPipeline(store GraphStorage) *Pipeline {
	return &Pipeline{store: store}
}

// Ingest merges one source artifact's extraction result into the case
// graph and reports what changed. Re-ingesting the same (sourceID,
// result) pair is a no-op for the stored graph, so clients can safely
// retry after a timeout.
//
// Relationships whose endpoints were never ingested as entities are
// dropped individually and reported in the summary; they never fail the
// batch. Malformed mentions fail the whole call before any mutation.
func (p *Pipeline) Ingest(ctx context.Context, caseID, sourceID string, result ExtractionResult) (Summary, error) {
	if caseID == "" {
		return Summary{}, fmt.Errorf("%w: empty case id", ErrValidation)
	}
	if sourceID == "" {
		return Summary{}, fmt.Errorf("%w: empty source id", ErrValidation)
	}

	batch := Batch{
		Nodes: make([]Node, 0, len(result.Mentions)),
		Edges: make([]Edge, 0, len(result.Relations)),
	}

	for _, mention := range result.Mentions {
		key, err := Normalize(mention.Type, mention.Label)
		if err != nil {
			return Summary{}, fmt.Errorf("entity mention %q: %w", mention.Label, err)
		}
		batch.Nodes = append(batch.Nodes, Node{
			ID:            NodeID(mention.Type, key),
			Type:          mention.Type,
			Label:         mention.Label,
			NormalizedKey: key,
			Sources:       []string{sourceID},
		})
	}

	relations := make([]Relation, 0, len(result.Relations))
	for _, rel := range result.Relations {
		fromKey, err := Normalize(rel.FromType, rel.FromLabel)
		if err != nil {
			return Summary{}, fmt.Errorf("relation endpoint %q: %w", rel.FromLabel, err)
		}
		toKey, err := Normalize(rel.ToType, rel.ToLabel)
		if err != nil {
			return Summary{}, fmt.Errorf("relation endpoint %q: %w", rel.ToLabel, err)
		}
		if rel.Label == "" {
			return Summary{}, fmt.Errorf("%w: empty relation label between %q and %q", ErrValidation, rel.FromLabel, rel.ToLabel)
		}

		from, to := CanonicalPair(NodeID(rel.FromType, fromKey), NodeID(rel.ToType, toKey))
		batch.Edges = append(batch.Edges, Edge{
			ID:      EdgeID(from, to),
			From:    from,
			To:      to,
			Labels:  []string{rel.Label},
			Sources: []string{sourceID},
		})
		relations = append(relations, rel)
	}

	applied, err := p.store.Apply(ctx, caseID, batch)
	if err != nil {
		return Summary{}, fmt.Errorf("apply batch for case %s: %w", caseID, err)
	}

	summary := Summary{
		NodesAdded:  applied.NodesAdded,
		NodesMerged: applied.NodesMerged,
		EdgesAdded:  applied.EdgesAdded,
		EdgesMerged: applied.EdgesMerged,
	}
	for _, idx := range applied.MissingEdges {
		rel := relations[idx]
		summary.Dangling = append(summary.Dangling, DanglingReference{
			FromLabel: rel.FromLabel,
			ToLabel:   rel.ToLabel,
			Label:     rel.Label,
		})
	}

	return summary, nil
}
