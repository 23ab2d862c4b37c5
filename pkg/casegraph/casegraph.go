package casegraph

import (
	"crypto/sha256"
	"encoding/hex"
)

// DefaultCaseID is the case used when a request names none.
const DefaultCaseID = "default"

// NodeType classifies a graph node. Only the listed values are accepted
// by the normalizer and the stores.
type NodeType string

const (
	NodeTypePerson      NodeType = "person"
	NodeTypeLocation    NodeType = "location"
	NodeTypeEvent       NodeType = "event"
	NodeTypeDocument    NodeType = "document"
	NodeTypeVideoSource NodeType = "video_source"
)

// Valid reports whether t is one of the known node types.
func (t NodeType) Valid() bool {
	switch t {
	case NodeTypePerson, NodeTypeLocation, NodeTypeEvent, NodeTypeDocument, NodeTypeVideoSource:
		return true
	}
	return false
}

// Node is a deduplicated entity within one case. At most one node exists
// per (type, normalized_key) pair; Label keeps the spelling of the first
// mention, Sources records every artifact that mentioned it.
type Node struct {
	ID            string   `json:"id"`
	Type          NodeType `json:"type"`
	Label         string   `json:"label"`
	NormalizedKey string   `json:"normalized_key"`
	Sources       []string `json:"sources"`
}

// Edge connects two nodes of the same case. Edges are undirected for
// display; From/To are stored in canonical order (lexicographically
// smaller node id first) so a relationship reported from either
// direction collapses to one edge. Identity is keyed on the pair only;
// additional relationship labels accumulate in Labels.
type Edge struct {
	ID      string   `json:"id"`
	From    string   `json:"from"`
	To      string   `json:"to"`
	Labels  []string `json:"labels"`
	Sources []string `json:"sources"`
}

// Graph is a read-only snapshot of one case's nodes and edges.
type Graph struct {
	CaseID string `json:"case_id"`
	Nodes  []Node `json:"nodes"`
	Edges  []Edge `json:"edges"`
}

// Mention is a single entity occurrence extracted from a source artifact.
type Mention struct {
	Type  NodeType `json:"type"`
	Label string   `json:"label"`
}

// Relation is a relationship occurrence between two entity mentions.
// Endpoints are given by label and resolved through the same
// normalization as entity mentions.
type Relation struct {
	FromType  NodeType `json:"from_type"`
	FromLabel string   `json:"from_label"`
	ToType    NodeType `json:"to_type"`
	ToLabel   string   `json:"to_label"`
	Label     string   `json:"label"`
}

// ExtractionResult is the output of upstream document or video analysis
// handed to the ingestion pipeline.
type ExtractionResult struct {
	Mentions  []Mention  `json:"mentions"`
	Relations []Relation `json:"relations"`
}

// DanglingReference records a relationship that was dropped because one
// of its endpoints was never ingested as an entity.
type DanglingReference struct {
	FromLabel string `json:"from_label"`
	ToLabel   string `json:"to_label"`
	Label     string `json:"label"`
}

// Summary reports what one ingestion call changed. Dangling relations
// are collected here rather than failing the batch.
type Summary struct {
	NodesAdded  int                 `json:"nodes_added"`
	NodesMerged int                 `json:"nodes_merged"`
	EdgesAdded  int                 `json:"edges_added"`
	EdgesMerged int                 `json:"edges_merged"`
	Dangling    []DanglingReference `json:"dangling,omitempty"`
}

const idLen = 12

// NodeID derives the stable node identifier from the type and the
// normalized key. Derivation is deterministic so ids survive restarts
// and match between the in-memory and Postgres stores.
func NodeID(t NodeType, normalizedKey string) string {
	sum := sha256.Sum256([]byte(string(t) + "\x00" + normalizedKey))
	return hex.EncodeToString(sum[:])[:idLen]
}

// EdgeID derives the stable edge identifier from the canonical node id
// pair. Callers must pass ids in canonical order.
func EdgeID(from, to string) string {
	sum := sha256.Sum256([]byte(from + "\x00" + to))
	return hex.EncodeToString(sum[:])[:idLen]
}

// CanonicalPair orders two node ids so the lexicographically smaller one
// comes first.
func CanonicalPair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}
