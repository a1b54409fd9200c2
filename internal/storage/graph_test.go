package storage

import (
	"testing"

	"GraphDiary/internal/model"
)

func nodeByID(nodes []model.GraphNode, id string) *model.GraphNode {
	for i := range nodes {
		if nodes[i].ID == id {
			return &nodes[i]
		}
	}
	return nil
}

func TestGetGraph_NodesAndEdges(t *testing.T) {
	setTempDataDir(t)
	s := openTestStore(t)

	p, _ := s.SaveEntry("", "Parent", "b", []string{"work"})
	c, _ := s.SaveEntry("", "Child", "b", nil)
	if _, err := s.AddRelationship("rel-1", p, c, "blocks"); err != nil {
		t.Fatal(err)
	}

	g, err := s.GetGraph()
	if err != nil {
		t.Fatalf("GetGraph: %v", err)
	}

	// узлы: две записи + один тег, блок записей перед блоком тегов
	if len(g.Nodes) != 3 {
		t.Fatalf("want 3 nodes, got %d", len(g.Nodes))
	}
	if g.Nodes[0].NodeType != "diary" || g.Nodes[1].NodeType != "diary" || g.Nodes[2].NodeType != "tag" {
		t.Fatalf("diary nodes must precede tag nodes: %v, %v, %v",
			g.Nodes[0].NodeType, g.Nodes[1].NodeType, g.Nodes[2].NodeType)
	}

	pn := nodeByID(g.Nodes, p)
	if pn == nil || pn.Label != "Parent" {
		t.Fatalf("parent node missing or mislabeled: %+v", pn)
	}
	if pn.Properties["title"] != "Parent" {
		t.Fatalf("diary node properties mismatch: %v", pn.Properties)
	}
	if _, ok := pn.Properties["created_at"].(string); !ok {
		t.Fatalf("created_at must be forwarded verbatim as string: %v", pn.Properties)
	}

	tagNode := g.Nodes[2]
	if tagNode.Label != "work" || tagNode.Properties["name"] != "work" {
		t.Fatalf("tag node mismatch: %+v", tagNode)
	}

	// рёбра: одно тегирование + одна связь
	if len(g.Edges) != 2 {
		t.Fatalf("want 2 edges, got %d", len(g.Edges))
	}
	tagEdge := g.Edges[0]
	if tagEdge.ID != "tag-"+p+"-"+tagNode.ID {
		t.Fatalf("synthetic tagging edge id mismatch: %q", tagEdge.ID)
	}
	if tagEdge.Source != p || tagEdge.Target != tagNode.ID || tagEdge.Label != "tagged_as_work" {
		t.Fatalf("tagging edge mismatch: %+v", tagEdge)
	}

	relEdge := g.Edges[1]
	if relEdge.ID != "rel-1" || relEdge.Label != "blocks" {
		t.Fatalf("relationship edge mismatch: %+v", relEdge)
	}
	// ребро связи направлено от потомка к родителю
	if relEdge.Source != c || relEdge.Target != p {
		t.Fatalf("edge direction must be child→parent: %+v", relEdge)
	}
}

func TestGetGraph_Closure(t *testing.T) {
	setTempDataDir(t)
	s := openTestStore(t)

	a, _ := s.SaveEntry("", "A", "b", []string{"t1", "t2"})
	b, _ := s.SaveEntry("", "B", "b", []string{"t2"})
	s.AddRelationship("r1", a, b, "depends_on")
	s.AddRelationship("r2", b, a, "refines")

	g, err := s.GetGraph()
	if err != nil {
		t.Fatal(err)
	}

	ids := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		ids[n.ID] = struct{}{}
	}
	for _, e := range g.Edges {
		if _, ok := ids[e.Source]; !ok {
			t.Fatalf("edge %s has dangling source %s", e.ID, e.Source)
		}
		if _, ok := ids[e.Target]; !ok {
			t.Fatalf("edge %s has dangling target %s", e.ID, e.Target)
		}
	}
}

func TestGetGraph_Empty(t *testing.T) {
	setTempDataDir(t)
	s := openTestStore(t)

	g, err := s.GetGraph()
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Nodes) != 0 || len(g.Edges) != 0 {
		t.Fatalf("empty store must give empty graph: %d nodes, %d edges", len(g.Nodes), len(g.Edges))
	}
}
