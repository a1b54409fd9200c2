package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"GraphDiary/internal/handlers"
	"GraphDiary/internal/model"
	"GraphDiary/internal/service"
	"GraphDiary/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newE2EHandler собирает полный стек поверх реального хранилища в temp-каталоге.
func newE2EHandler(t *testing.T) *handlers.Handler {
	t.Helper()
	t.Setenv("DIARY_DATA_PATH", t.TempDir())
	st, _, err := storage.Open(zap.NewNop().Sugar())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return handlers.NewHandler(service.NewDiaryService(st), zap.NewNop().Sugar())
}

func saveEntry(t *testing.T, h *handlers.Handler, body string) string {
	t.Helper()
	rr := doRequest(t, h, http.MethodPost, "/api/diary/save", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var resp handlers.SaveResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.ID
}

func TestE2E_CreateAndReadBack(t *testing.T) {
	h := newE2EHandler(t)

	id := saveEntry(t, h, `{"title":"Hello","content":"secret body","tags":["work","ideas"]}`)

	rr := doRequest(t, h, http.MethodGet, "/api/diary/"+id, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var e model.Entry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &e))
	assert.Equal(t, "Hello", e.Title)
	assert.Equal(t, "secret body", e.Content)
	assert.ElementsMatch(t, []string{"work", "ideas"}, e.Tags)
}

func TestE2E_DeleteCascades(t *testing.T) {
	h := newE2EHandler(t)

	p := saveEntry(t, h, `{"title":"P","content":"b","tags":["x"]}`)
	c := saveEntry(t, h, `{"title":"C","content":"b","tags":["x"]}`)

	rr := doRequest(t, h, http.MethodPost, "/api/relationships",
		`{"parent_id":"`+p+`","child_id":"`+c+`","relationship_type":"depends_on"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, h, http.MethodDelete, "/api/diary/"+p, "")
	require.Equal(t, http.StatusNoContent, rr.Code)

	// связей у потомка не осталось
	rr = doRequest(t, h, http.MethodGet, "/api/diary/"+c+"/relationships", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var rels []model.Relationship
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rels))
	assert.Empty(t, rels)

	// по тегу x находится только потомок
	rr = doRequest(t, h, http.MethodGet, "/api/diary/search?tag=x", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var found []model.Entry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &found))
	require.Len(t, found, 1)
	assert.Equal(t, c, found[0].ID)

	// сама запись отдаёт 404
	rr = doRequest(t, h, http.MethodGet, "/api/diary/"+p, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestE2E_GraphDirection(t *testing.T) {
	h := newE2EHandler(t)

	p := saveEntry(t, h, `{"title":"P","content":"b","tags":[]}`)
	c := saveEntry(t, h, `{"title":"C","content":"b","tags":[]}`)

	rr := doRequest(t, h, http.MethodPost, "/api/relationships",
		`{"parent_id":"`+p+`","child_id":"`+c+`","relationship_type":"blocks"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var created handlers.AddRelationshipResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	rr = doRequest(t, h, http.MethodGet, "/api/graph", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var g model.GraphData
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &g))

	var edge *model.GraphEdge
	for i := range g.Edges {
		if g.Edges[i].ID == created.ID {
			edge = &g.Edges[i]
		}
	}
	require.NotNil(t, edge, "relationship edge missing from graph")
	assert.Equal(t, c, edge.Source)
	assert.Equal(t, p, edge.Target)
	assert.Equal(t, "blocks", edge.Label)
}

func TestE2E_ListNewestFirst(t *testing.T) {
	h := newE2EHandler(t)

	saveEntry(t, h, `{"title":"older","content":"b","tags":[]}`)
	saveEntry(t, h, `{"title":"newer","content":"b","tags":[]}`)

	rr := doRequest(t, h, http.MethodGet, "/api/diary", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var list []model.Entry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "newer", list[0].Title)
	assert.Equal(t, "older", list[1].Title)
}
