package tools_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumcheck/sumcheck/internal/security"
	"github.com/sumcheck/sumcheck/internal/service"
	"github.com/sumcheck/sumcheck/internal/store"
	"github.com/sumcheck/sumcheck/internal/tools"
)

func newToolset(t *testing.T) []tools.Tool {
	t.Helper()
	svc := service.NewSolverService(
		security.NewCellBudget(1_000_000, 100),
		store.NewMemoryStore(10),
		security.NewAuditLogger(false),
	)
	return tools.All(svc)
}

// decodeInput mimics how tool input arrives from the LLM: JSON numbers become float64.
func decodeInput(t *testing.T, s string) map[string]interface{} {
	t.Helper()
	var in map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(s), &in))
	return in
}

func TestSolveSubsetSumTool(t *testing.T) {
	ts := newToolset(t)
	solve, ok := tools.Find(ts, "solve_subset_sum")
	require.True(t, ok)

	rc := &tools.RunContext{RequestID: "req-1", APIKey: "k"}
	ctx := tools.WithRunContext(context.Background(), rc)

	out, err := solve.Execute(ctx, decodeInput(t, `{"magnitudes":[3,34,4,12,5,2],"target":9}`))
	require.NoError(t, err)

	var res map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, true, res["result"])
	assert.NotEmpty(t, res["solve_id"])

	last, ok := rc.LastSolve()
	require.True(t, ok)
	assert.True(t, last.Result)
	assert.Equal(t, res["solve_id"], last.ID)
	assert.Len(t, rc.Solves(), 1)

	get, ok := tools.Find(ts, "get_solve_record")
	require.True(t, ok)
	rec, err := get.Execute(ctx, map[string]interface{}{"id": last.ID})
	require.NoError(t, err)
	assert.Contains(t, rec, `"target":9`)

	list, ok := tools.Find(ts, "list_recent_solves")
	require.True(t, ok)
	recent, err := list.Execute(ctx, decodeInput(t, `{"limit": 3}`))
	require.NoError(t, err)
	assert.Contains(t, recent, last.ID)
}

func TestSolveSubsetSumToolRejectsBadInput(t *testing.T) {
	solve, _ := tools.Find(newToolset(t), "solve_subset_sum")
	ctx := context.Background()

	bad := []string{
		`{"magnitudes":"3,4","target":7}`,
		`{"magnitudes":[3,4.5],"target":7}`,
		`{"magnitudes":[3,4]}`,
		`{"magnitudes":[3,0],"target":3}`,
		`{"magnitudes":[3,4],"target":-1}`,
		`{"magnitudes":["a"],"target":1}`,
	}
	for _, in := range bad {
		_, err := solve.Execute(ctx, decodeInput(t, in))
		assert.Error(t, err, in)
	}
}

func TestGetSolveRecordToolMissing(t *testing.T) {
	get, _ := tools.Find(newToolset(t), "get_solve_record")
	_, err := get.Execute(context.Background(), map[string]interface{}{"id": "nope"})
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = get.Execute(context.Background(), map[string]interface{}{})
	assert.Error(t, err)
}

func TestFindUnknown(t *testing.T) {
	_, ok := tools.Find(newToolset(t), "execute_sql")
	assert.False(t, ok)
}

func TestRunContextFromEmpty(t *testing.T) {
	rc := tools.RunContextFrom(context.Background())
	require.NotNil(t, rc)
	_, ok := rc.LastSolve()
	assert.False(t, ok)
}
