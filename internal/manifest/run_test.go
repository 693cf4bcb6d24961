package manifest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/testgen/internal/errors"
	"github.com/toyz/testgen/internal/models"
)

func TestManifest_Run(t *testing.T) {
	m := parseBlog(t)

	results, err := m.Run(context.Background(), m.GeneratorConfig(), RunOptions{Limit: 2})
	require.NoError(t, err)
	require.Len(t, results, 3)

	kinds := make([]models.ActionKind, len(results))
	for i, result := range results {
		require.NoError(t, result.Err)
		assert.False(t, result.Failed())
		assert.Equal(t, i, result.Job.Index)
		kinds[i] = result.Fragment.Kind
	}
	assert.Equal(t, []models.ActionKind{models.KindStore, models.KindCreate, models.KindDestroy}, kinds)
}

func TestManifest_RunRecoversContractViolation(t *testing.T) {
	m := &Manifest{
		Source: "inline",
		Actions: []Action{
			{Controller: "PostController", Method: "show", Route: Route{Name: "posts.show", Parameters: []string{"post"}}},
			{Controller: "PostController", Method: "create", Route: Route{Name: "posts.create"}},
		},
	}

	results, err := m.Run(context.Background(), m.GeneratorConfig(), RunOptions{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	require.True(t, results[0].Failed())
	var genErr *errors.GenerationError
	require.ErrorAs(t, results[0].Err, &genErr)
	assert.Equal(t, "setup", genErr.Stage)
	assert.Equal(t, "PostController@show", genErr.Target)

	var cv *errors.ContractViolation
	require.ErrorAs(t, results[0].Err, &cv)
	assert.Equal(t, "show", cv.Primitive)
	assert.Equal(t, "a model set with SetModel", cv.Missing)

	assert.False(t, results[1].Failed())
	assert.NotNil(t, results[1].Fragment)
}

func TestManifest_RunCancelled(t *testing.T) {
	m := parseBlog(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Run(ctx, m.GeneratorConfig(), RunOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}
