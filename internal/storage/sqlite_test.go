package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pylens/internal/detect"
	"pylens/internal/provider"
)

func testFinding(kind detect.FindingKind, line int, labels ...string) detect.Finding {
	f := detect.Finding{
		Kind: kind,
		Range: provider.Range{
			Start: provider.Position{Line: line, Character: 4},
			End:   provider.Position{Line: line, Character: 9},
		},
	}
	for _, l := range labels {
		f.Targets = append(f.Targets, detect.Target{
			Label:    l,
			Location: provider.Location{Doc: "base.py", Range: provider.Range{Start: provider.Position{Line: 1}}},
		})
	}
	return f
}

func TestSQLiteStore_SaveAndLoad(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	findings := []detect.Finding{
		testFinding(detect.KindOverride, 2, "Base.speak"),
		testFinding(detect.KindSubclassed, 0, "Dog", "Cat"),
	}
	require.NoError(t, store.SaveFindings(ctx, "child.py", findings))

	loaded, err := store.FindByDocument(ctx, "child.py")
	require.NoError(t, err)
	assert.Equal(t, findings, loaded, "round trip preserves order, kinds and targets")

	docs, err := store.Documents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []provider.DocumentID{"child.py"}, docs)
}

func TestSQLiteStore_SaveReplacesPreviousPass(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.SaveFindings(ctx, "child.py", []detect.Finding{
		testFinding(detect.KindOverride, 2, "Base.speak"),
		testFinding(detect.KindOverride, 4, "Base.walk"),
	}))

	// A later pass for the same document wins entirely.
	replacement := []detect.Finding{testFinding(detect.KindOverride, 2, "Other.speak")}
	require.NoError(t, store.SaveFindings(ctx, "child.py", replacement))

	loaded, err := store.FindByDocument(ctx, "child.py")
	require.NoError(t, err)
	assert.Equal(t, replacement, loaded)
}

func TestSQLiteStore_UnknownDocument(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	loaded, err := store.FindByDocument(context.Background(), "missing.py")
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
