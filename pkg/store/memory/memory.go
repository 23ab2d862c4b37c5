// Package memory implements casegraph.GraphStorage with in-process
// per-case graphs. Each case carries its own lock, so ingestions for
// different cases never contend. Reads return deep copies and run
// concurrently with each other.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/nyayarakshak/backend/pkg/casegraph"
)

type caseGraph struct {
	mu        sync.RWMutex
	nodes     map[string]*casegraph.Node
	edges     map[string]*casegraph.Edge
	nodeOrder []string
	edgeOrder []string
}

// Store keeps all case graphs in memory. The zero value is not usable;
// create one with New.
type Store struct {
	mu    sync.Mutex
	cases map[string]*caseGraph
}

func New() *Store {
	return &Store{cases: make(map[string]*caseGraph)}
}

func (s *Store) caseFor(caseID string, create bool) *caseGraph {
	s.mu.Lock()
	defer s.mu.Unlock()
	cg, ok := s.cases[caseID]
	if !ok && create {
		cg = &caseGraph{
			nodes: make(map[string]*casegraph.Node),
			edges: make(map[string]*casegraph.Edge),
		}
		s.cases[caseID] = cg
	}
	return cg
}

// Apply merges one batch under the case lock. The batch either commits
// fully or, when ctx is already done, not at all; individual edges with
// missing endpoints are the only partial outcome, reported by index.
func (s *Store) Apply(ctx context.Context, caseID string, batch casegraph.Batch) (casegraph.ApplyResult, error) {
	if caseID == "" {
		return casegraph.ApplyResult{}, fmt.Errorf("%w: empty case id", casegraph.ErrValidation)
	}

	cg := s.caseFor(caseID, true)
	cg.mu.Lock()
	defer cg.mu.Unlock()

	// Once past this check the batch applies in full; nothing below
	// blocks or fails, so a caller timeout cannot tear it.
	if err := ctx.Err(); err != nil {
		return casegraph.ApplyResult{}, err
	}

	var res casegraph.ApplyResult

	for _, node := range batch.Nodes {
		if existing, ok := cg.nodes[node.ID]; ok {
			existing.Sources = mergeSet(existing.Sources, node.Sources)
			res.NodesMerged++
			continue
		}
		added := node
		added.Sources = slices.Clone(node.Sources)
		cg.nodes[added.ID] = &added
		cg.nodeOrder = append(cg.nodeOrder, added.ID)
		res.NodesAdded++
	}

	for i, edge := range batch.Edges {
		if _, ok := cg.nodes[edge.From]; !ok {
			res.MissingEdges = append(res.MissingEdges, i)
			continue
		}
		if _, ok := cg.nodes[edge.To]; !ok {
			res.MissingEdges = append(res.MissingEdges, i)
			continue
		}
		if existing, ok := cg.edges[edge.ID]; ok {
			existing.Labels = mergeSet(existing.Labels, edge.Labels)
			existing.Sources = mergeSet(existing.Sources, edge.Sources)
			res.EdgesMerged++
			continue
		}
		added := edge
		added.Labels = slices.Clone(edge.Labels)
		added.Sources = slices.Clone(edge.Sources)
		cg.edges[added.ID] = &added
		cg.edgeOrder = append(cg.edgeOrder, added.ID)
		res.EdgesAdded++
	}

	return res, nil
}

// UpsertNode merges a single node and reports whether it was created.
func (s *Store) UpsertNode(ctx context.Context, caseID string, node casegraph.Node) (string, bool, error) {
	res, err := s.Apply(ctx, caseID, casegraph.Batch{Nodes: []casegraph.Node{node}})
	if err != nil {
		return "", false, err
	}
	return node.ID, res.NodesAdded == 1, nil
}

// UpsertEdge merges a single edge. Returns casegraph.ErrNotFound when
// either endpoint is absent from the case graph.
func (s *Store) UpsertEdge(ctx context.Context, caseID string, edge casegraph.Edge) (string, bool, error) {
	res, err := s.Apply(ctx, caseID, casegraph.Batch{Edges: []casegraph.Edge{edge}})
	if err != nil {
		return "", false, err
	}
	if len(res.MissingEdges) > 0 {
		return "", false, fmt.Errorf("%w: edge %s-%s references unknown node", casegraph.ErrNotFound, edge.From, edge.To)
	}
	return edge.ID, res.EdgesAdded == 1, nil
}

// GetGraph returns a copy of the case's current graph. A case that was
// never ingested yields empty node and edge lists, not an error.
func (s *Store) GetGraph(ctx context.Context, caseID string) (casegraph.Graph, error) {
	graph := casegraph.Graph{
		CaseID: caseID,
		Nodes:  []casegraph.Node{},
		Edges:  []casegraph.Edge{},
	}

	cg := s.caseFor(caseID, false)
	if cg == nil {
		return graph, nil
	}

	cg.mu.RLock()
	defer cg.mu.RUnlock()

	for _, id := range cg.nodeOrder {
		node := *cg.nodes[id]
		node.Sources = slices.Clone(node.Sources)
		graph.Nodes = append(graph.Nodes, node)
	}
	for _, id := range cg.edgeOrder {
		edge := *cg.edges[id]
		edge.Labels = slices.Clone(edge.Labels)
		edge.Sources = slices.Clone(edge.Sources)
		graph.Edges = append(graph.Edges, edge)
	}

	return graph, nil
}

func mergeSet(dst, add []string) []string {
	for _, v := range add {
		if !slices.Contains(dst, v) {
			dst = append(dst, v)
		}
	}
	return dst
}
