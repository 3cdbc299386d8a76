package deps

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tasuku43/wsdeps/internal/domain/workspace"
)

func TestCheckReportsIssues(t *testing.T) {
	nameless := pkg("", "1.0.0", nil, nil)
	nameless.ManifestPath = "/ws/packages/nameless/package.json"
	dup := pkg("a", "2.0.0", nil, nil)
	dup.ManifestPath = "/ws/apps/a/package.json"

	issues := Check([]workspace.Package{
		pkg("a", "1.0.0", nil, nil),
		nameless,
		pkg("b", "", nil, nil),
		dup,
	})

	require.Len(t, issues, 3)
	require.Equal(t, IssueMissingName, issues[0].Kind)
	require.Equal(t, []string{"/ws/packages/nameless/package.json"}, issues[0].Paths)
	require.Equal(t, IssueMissingVersion, issues[1].Kind)
	require.Equal(t, "b", issues[1].Name)
	require.Equal(t, IssueDuplicateName, issues[2].Kind)
	require.Equal(t, "a", issues[2].Name)
	require.Equal(t, []string{"/ws/packages/a/package.json", "/ws/apps/a/package.json"}, issues[2].Paths)
}

func TestCheckClean(t *testing.T) {
	require.Empty(t, Check([]workspace.Package{pkg("a", "1.0.0", nil, nil)}))
	require.Empty(t, Check(nil))
}
