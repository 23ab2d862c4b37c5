// Package pgx implements casegraph.GraphStorage on Postgres. Node and
// edge ids are deterministic, so rows merge with ON CONFLICT and ids
// stay stable for the lifetime of a case. Per-case mutual exclusion
// across processes comes from a lease lock; one Apply call holds the
// case lease for the whole batch.
package pgx

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nyayarakshak/backend/pkg/casegraph"
	"github.com/nyayarakshak/backend/pkg/leaselock"
)

type Store struct {
	pool  *pgxpool.Pool
	locks *leaselock.Client
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{
		pool:  pool,
		locks: leaselock.New(pool),
	}
}

const upsertNodeSQL = `
INSERT INTO case_nodes (case_id, id, node_type, label, normalized_key, sources)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (case_id, id) DO UPDATE
SET sources = (
	SELECT array_agg(DISTINCT s)
	FROM unnest(case_nodes.sources || EXCLUDED.sources) AS s
)
RETURNING (xmax = 0) AS inserted;
`

const upsertEdgeSQL = `
INSERT INTO case_edges (case_id, id, from_id, to_id, labels, sources)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (case_id, id) DO UPDATE
SET labels = (
	SELECT array_agg(DISTINCT l)
	FROM unnest(case_edges.labels || EXCLUDED.labels) AS l
),
    sources = (
	SELECT array_agg(DISTINCT s)
	FROM unnest(case_edges.sources || EXCLUDED.sources) AS s
)
RETURNING (xmax = 0) AS inserted;
`

const nodeExistsSQL = `
SELECT count(*) FROM case_nodes WHERE case_id = $1 AND id = ANY($2);
`

// Apply merges one batch inside a single transaction while holding the
// case lease. A lost lease aborts the transaction and is reported as
// casegraph.ErrConflict; the batch is then guaranteed not to have
// committed.
func (s *Store) Apply(ctx context.Context, caseID string, batch casegraph.Batch) (casegraph.ApplyResult, error) {
	if caseID == "" {
		return casegraph.ApplyResult{}, fmt.Errorf("%w: empty case id", casegraph.ErrValidation)
	}

	var res casegraph.ApplyResult
	err := s.locks.WithLease(ctx, leaselock.CaseKey(caseID), leaselock.Options{
		TTL:  30 * time.Second,
		Wait: true,
	}, func(leaseCtx context.Context) error {
		applied, err := s.applyLocked(leaseCtx, caseID, batch)
		if err != nil {
			if errors.Is(context.Cause(leaseCtx), leaselock.ErrLost) {
				return fmt.Errorf("%w: lease lost for case %s", casegraph.ErrConflict, caseID)
			}
			return err
		}
		res = applied
		return nil
	})
	if err != nil {
		return casegraph.ApplyResult{}, err
	}
	return res, nil
}

func (s *Store) applyLocked(ctx context.Context, caseID string, batch casegraph.Batch) (casegraph.ApplyResult, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return casegraph.ApplyResult{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var res casegraph.ApplyResult

	for _, node := range batch.Nodes {
		var inserted bool
		err := tx.QueryRow(ctx, upsertNodeSQL,
			caseID, node.ID, string(node.Type), node.Label, node.NormalizedKey, node.Sources,
		).Scan(&inserted)
		if err != nil {
			return casegraph.ApplyResult{}, fmt.Errorf("upsert node %s: %w", node.ID, err)
		}
		if inserted {
			res.NodesAdded++
		} else {
			res.NodesMerged++
		}
	}

	for i, edge := range batch.Edges {
		var present int
		err := tx.QueryRow(ctx, nodeExistsSQL, caseID, []string{edge.From, edge.To}).Scan(&present)
		if err != nil {
			return casegraph.ApplyResult{}, fmt.Errorf("check edge endpoints: %w", err)
		}
		if present < 2 {
			res.MissingEdges = append(res.MissingEdges, i)
			continue
		}

		var inserted bool
		err = tx.QueryRow(ctx, upsertEdgeSQL,
			caseID, edge.ID, edge.From, edge.To, edge.Labels, edge.Sources,
		).Scan(&inserted)
		if err != nil {
			return casegraph.ApplyResult{}, fmt.Errorf("upsert edge %s: %w", edge.ID, err)
		}
		if inserted {
			res.EdgesAdded++
		} else {
			res.EdgesMerged++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return casegraph.ApplyResult{}, fmt.Errorf("commit batch: %w", err)
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

// GetGraph reads a consistent snapshot of the case's graph. Unknown
// cases yield empty lists.
func (s *Store) GetGraph(ctx context.Context, caseID string) (casegraph.Graph, error) {
	graph := casegraph.Graph{
		CaseID: caseID,
		Nodes:  []casegraph.Node{},
		Edges:  []casegraph.Edge{},
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return graph, fmt.Errorf("begin read transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx,
		`SELECT id, node_type, label, normalized_key, sources
		 FROM case_nodes WHERE case_id = $1 ORDER BY seq`, caseID)
	if err != nil {
		return graph, fmt.Errorf("query nodes: %w", err)
	}
	for rows.Next() {
		var node casegraph.Node
		var nodeType string
		if err := rows.Scan(&node.ID, &nodeType, &node.Label, &node.NormalizedKey, &node.Sources); err != nil {
			rows.Close()
			return graph, fmt.Errorf("scan node: %w", err)
		}
		node.Type = casegraph.NodeType(nodeType)
		graph.Nodes = append(graph.Nodes, node)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return graph, fmt.Errorf("read nodes: %w", err)
	}

	rows, err = tx.Query(ctx,
		`SELECT id, from_id, to_id, labels, sources
		 FROM case_edges WHERE case_id = $1 ORDER BY seq`, caseID)
	if err != nil {
		return graph, fmt.Errorf("query edges: %w", err)
	}
	for rows.Next() {
		var edge casegraph.Edge
		if err := rows.Scan(&edge.ID, &edge.From, &edge.To, &edge.Labels, &edge.Sources); err != nil {
			rows.Close()
			return graph, fmt.Errorf("scan edge: %w", err)
		}
		graph.Edges = append(graph.Edges, edge)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return graph, fmt.Errorf("read edges: %w", err)
	}

	return graph, tx.Commit(ctx)
}
