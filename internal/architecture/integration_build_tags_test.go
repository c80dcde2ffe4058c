package architecture_test

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntegrationTestsRequireBuildTag(t *testing.T) {
	files, err := collectGoFiles(internalRootDir())
	require.NoError(t, err)

	violations := make([]string, 0)
	for _, file := range files {
		if !strings.HasSuffix(file, "_integration_test.go") {
			continue
		}
		if hasIntegrationBuildTag(file) {
			continue
		}
		violations = append(violations, "governance: missing //go:build integration in "+relToRepoRoot(file))
	}

	if len(violations) > 0 {
		sort.Strings(violations)
		t.Fatalf("%s", strings.Join(violations, "\n"))
	}
}
