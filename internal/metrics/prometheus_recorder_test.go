package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.ObservePageDuration("md", 3*time.Millisecond)
	pr.IncPageResult(PageWritten)
	pr.IncPageResult(PageWritten)
	pr.IncPageResult(PageUnchanged)
	pr.AddAssetsCopied(3)
	pr.AddAssetsCopied(0)
	pr.IncUnresolvedLinks(2)
	pr.IncBuildOutcome(BuildSuccess)

	assert.InDelta(t, 2, testutil.ToFloat64(pr.pageResults.WithLabelValues("written")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.pageResults.WithLabelValues("unchanged")), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(pr.assetsCopied), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(pr.unresolvedLinks), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.buildOutcome.WithLabelValues("success")), 0)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)
}

func TestPrometheusRecorder_NilReceiver(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.ObserveBuildDuration(time.Second)
		pr.IncPageResult(PageFailed)
		pr.IncBuildOutcome(BuildFailed)
	})
}

func TestWriteTextfile(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncBuildOutcome(BuildFailed)

	path := filepath.Join(t.TempDir(), "nested", "sitebuilder.prom")
	require.NoError(t, WriteTextfile(reg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `sitebuilder_build_outcomes_total{outcome="failed"} 1`)
}

func TestWriteTextfile_FailureIsWarning(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	err := WriteTextfile(prom.NewRegistry(), filepath.Join(blocker, "sitebuilder.prom"))
	require.Error(t, err)
	classified, ok := ferrors.AsClassified(err)
	require.True(t, ok)
	assert.Equal(t, ferrors.CategoryFileSystem, classified.Category())
	assert.Equal(t, ferrors.SeverityWarning, classified.Severity())
}
