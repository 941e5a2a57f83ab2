package pipeline

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planviz/planviz/pkg/cache"
)

const samplePlan = `SortPreservingMergeExec: [ts@0 ASC]
  SortExec: expr=[ts@0 ASC], preserve_partitioning=[true]
    DataSourceExec: file_groups={3 groups: [[a], [b], [c]]}, projection=[ts@0, v@1]`

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{PlanText: samplePlan}
	require.NoError(t, opts.ValidateAndSetDefaults())

	assert.Equal(t, DefaultDialect, opts.Dialect)
	assert.Equal(t, []string{FormatExcalidraw}, opts.Formats)
	assert.NotZero(t, opts.Config.NodeWidth)
	assert.NotNil(t, opts.Logger)

	// Idempotent.
	require.NoError(t, opts.ValidateAndSetDefaults())
}

func TestValidateRejectsMissingPlan(t *testing.T) {
	opts := Options{}
	require.Error(t, opts.ValidateAndSetDefaults())
}

func TestValidateRejectsUnknownDialect(t *testing.T) {
	opts := Options{PlanText: samplePlan, Dialect: "duckdb"}
	require.Error(t, opts.ValidateAndSetDefaults())
}

func TestValidateRejectsUnknownFormat(t *testing.T) {
	opts := Options{PlanText: samplePlan, Formats: []string{"pdf"}}
	require.Error(t, opts.ValidateAndSetDefaults())
}

func TestExecuteProducesDiagram(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{PlanText: samplePlan})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Stats.NodeCount)
	assert.NotEmpty(t, result.PlanHash)
	assert.NotEmpty(t, result.DocumentJSON)
	assert.Equal(t, result.DocumentJSON, result.Artifacts[FormatExcalidraw])
	assert.False(t, result.CacheInfo.DiagramHit)
}

func TestExecuteDiagramCacheHit(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	ctx := context.Background()
	first, err := runner.Execute(ctx, Options{PlanText: samplePlan})
	require.NoError(t, err)
	require.False(t, first.CacheInfo.DiagramHit)

	second, err := runner.Execute(ctx, Options{PlanText: samplePlan})
	require.NoError(t, err)
	assert.True(t, second.CacheInfo.DiagramHit)
	assert.True(t, second.CacheInfo.RenderHit)
	assert.True(t, bytes.Equal(first.DocumentJSON, second.DocumentJSON))
}

func TestExecuteRefreshBypassesCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	ctx := context.Background()
	_, err = runner.Execute(ctx, Options{PlanText: samplePlan})
	require.NoError(t, err)

	again, err := runner.Execute(ctx, Options{PlanText: samplePlan, Refresh: true})
	require.NoError(t, err)
	assert.False(t, again.CacheInfo.DiagramHit)
}

func TestExecuteWithTreeSkipsParser(t *testing.T) {
	tree, err := Parse(context.Background(), Options{PlanText: samplePlan, Dialect: DefaultDialect})
	require.NoError(t, err)

	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	fromTree, err := runner.Execute(context.Background(), Options{Tree: tree})
	require.NoError(t, err)
	fromText, err := runner.Execute(context.Background(), Options{PlanText: samplePlan})
	require.NoError(t, err)

	// Same tree, same hash, same document.
	assert.Equal(t, fromText.PlanHash, fromTree.PlanHash)
	assert.True(t, bytes.Equal(fromText.DocumentJSON, fromTree.DocumentJSON))
}

func TestExecuteDOTFormat(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		PlanText: samplePlan,
		Formats:  []string{FormatDOT},
	})
	require.NoError(t, err)
	assert.Contains(t, string(result.Artifacts[FormatDOT]), "digraph plan")
}

func TestDialectByName(t *testing.T) {
	d, err := DialectByName("")
	require.NoError(t, err)
	assert.NotNil(t, d)

	_, err = DialectByName("oracle")
	require.Error(t, err)
}
