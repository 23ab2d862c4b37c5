package routes

import (
	"net/http"
	"strings"

	"github.com/nyayarakshak/backend/internal/server/middleware"
	"github.com/nyayarakshak/backend/pkg/casegraph"

	"github.com/labstack/echo/v4"
)

// GetCaseGraphHandler returns the display projection of one case's
// graph. A case nobody has ingested into yields empty lists, not an
// error.
func GetCaseGraphHandler(c echo.Context) error {
	type graphNode struct {
		ID    string `json:"id"`
		Label string `json:"label"`
		Type  string `json:"type"`
	}

	type graphEdge struct {
		From  string `json:"from"`
		To    string `json:"to"`
		Label string `json:"label"`
	}

	type caseGraphResponse struct {
		Message string      `json:"message,omitempty"`
		Nodes   []graphNode `json:"nodes"`
		Edges   []graphEdge `json:"edges"`
	}

	caseID := c.QueryParam("case_id")
	if caseID == "" {
		caseID = casegraph.DefaultCaseID
	}

	app := c.(*middleware.AppContext).App
	graph, err := app.Store.GetGraph(c.Request().Context(), caseID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, caseGraphResponse{
			Message: "Failed to load case graph",
			Nodes:   []graphNode{},
			Edges:   []graphEdge{},
		})
	}

	nodes := make([]graphNode, 0, len(graph.Nodes))
	for _, node := range graph.Nodes {
		nodes = append(nodes, graphNode{
			ID:    node.ID,
			Label: node.Label,
			Type:  string(node.Type),
		})
	}

	edges := make([]graphEdge, 0, len(graph.Edges))
	for _, edge := range graph.Edges {
		edges = append(edges, graphEdge{
			From:  edge.From,
			To:    edge.To,
			Label: strings.Join(edge.Labels, ", "),
		})
	}

	return c.JSON(http.StatusOK, caseGraphResponse{
		Nodes: nodes,
		Edges: edges,
	})
}
