package tcapi_test

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/fivetwenty-io/tcapi/pkg/tcapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBuildTypes() []tcapi.BuildType {
	return []tcapi.BuildType{
		{ID: "bt1", Name: "Compile", ProjectID: "project1"},
		{ID: "bt2", Name: "Unit Tests", ProjectID: "project1"},
		{ID: "bt3", Name: "Deploy", ProjectID: "project1"},
	}
}

func ids(buildTypes []tcapi.BuildType) []string {
	result := make([]string, 0, len(buildTypes))
	for _, buildType := range buildTypes {
		result = append(result, buildType.ID)
	}

	return result
}

//nolint:funlen // Table-driven test covers every filter shape
func TestApplyFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filter   tcapi.Filter
		expected []string
	}{
		{
			name:     "nil filter keeps everything",
			filter:   nil,
			expected: []string{"bt1", "bt2", "bt3"},
		},
		{
			name:     "empty filter keeps everything",
			filter:   tcapi.Filter{},
			expected: []string{"bt1", "bt2", "bt3"},
		},
		{
			name:     "include single id",
			filter:   tcapi.Filter{"include": "bt2"},
			expected: []string{"bt2"},
		},
		{
			name:     "include by name",
			filter:   tcapi.Filter{"include": "Deploy"},
			expected: []string{"bt3"},
		},
		{
			name:     "include keeps input order",
			filter:   tcapi.Filter{"include": []string{"bt3", "Compile"}},
			expected: []string{"bt1", "bt3"},
		},
		{
			name:     "exclude single id",
			filter:   tcapi.Filter{"exclude": "bt1"},
			expected: []string{"bt2", "bt3"},
		},
		{
			name:     "include and exclude",
			filter:   tcapi.Filter{"include": []string{"bt1", "bt2"}, "exclude": "Unit Tests"},
			expected: []string{"bt1"},
		},
		{
			name:     "exclude token for a type outside the include set is still consumed",
			filter:   tcapi.Filter{"include": "bt1", "exclude": "bt3"},
			expected: []string{"bt1"},
		},
		{
			name:     "list of interface values",
			filter:   tcapi.Filter{"include": []interface{}{"bt1", "Deploy"}},
			expected: []string{"bt1", "bt3"},
		},
		{
			name:     "empty include list selects nothing",
			filter:   tcapi.Filter{"include": []string{}},
			expected: []string{},
		},
		{
			name:     "fluent builder",
			filter:   tcapi.NewFilter().Include("bt1", "bt2").Exclude("bt2"),
			expected: []string{"bt1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := tcapi.ApplyFilter(testBuildTypes(), tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ids(result))
		})
	}
}

func TestApplyFilter_FilterMismatch(t *testing.T) {
	t.Parallel()

	t.Run("unmatched include token", func(t *testing.T) {
		t.Parallel()

		buildTypes := []tcapi.BuildType{{ID: "bt1", Name: "A"}}

		result, err := tcapi.ApplyFilter(buildTypes, tcapi.Filter{"include": []string{"bt1", "nonexistent"}})
		require.Error(t, err)
		assert.Nil(t, result)

		mismatch := &tcapi.FilterMismatchError{}
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, []string{"nonexistent"}, mismatch.Include)
		assert.Empty(t, mismatch.Exclude)
		assert.Equal(t, []string{"nonexistent"}, mismatch.Tokens())
		assert.True(t, tcapi.IsFilterMismatch(err))
		assert.Contains(t, err.Error(), "nonexistent")
	})

	t.Run("unmatched exclude token", func(t *testing.T) {
		t.Parallel()

		_, err := tcapi.ApplyFilter(testBuildTypes(), tcapi.Filter{"exclude": []string{"bt9", "bt1"}})

		mismatch := &tcapi.FilterMismatchError{}
		require.ErrorAs(t, err, &mismatch)
		assert.Empty(t, mismatch.Include)
		assert.Equal(t, []string{"bt9"}, mismatch.Exclude)
	})

	t.Run("token consumed once", func(t *testing.T) {
		t.Parallel()

		// bt1's id matches the first token; the duplicate has nothing left to match.
		_, err := tcapi.ApplyFilter(testBuildTypes(), tcapi.Filter{"include": []string{"bt1", "bt1"}})

		mismatch := &tcapi.FilterMismatchError{}
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, []string{"bt1"}, mismatch.Include)
	})

	t.Run("duplicate name token selects two types", func(t *testing.T) {
		t.Parallel()

		buildTypes := []tcapi.BuildType{
			{ID: "bt1", Name: "Nightly"},
			{ID: "bt2", Name: "Nightly"},
			{ID: "bt3", Name: "Other"},
		}

		result, err := tcapi.ApplyFilter(buildTypes, tcapi.Filter{"include": []string{"Nightly", "Nightly"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"bt1", "bt2"}, ids(result))
	})
}

func TestApplyFilter_UnsupportedOption(t *testing.T) {
	t.Parallel()

	_, err := tcapi.ApplyFilter(testBuildTypes(), tcapi.Filter{"include": "bt1", "bogus": 1})
	require.Error(t, err)

	unsupported := &tcapi.UnsupportedOptionError{}
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, []string{"bogus"}, unsupported.Options)
	assert.ErrorIs(t, err, tcapi.ErrUnsupportedOption)
	assert.Contains(t, err.Error(), "bogus")
}

func TestApplyFilter_UnsupportedOptionsSorted(t *testing.T) {
	t.Parallel()

	_, err := tcapi.ApplyFilter(testBuildTypes(), tcapi.Filter{"zeta": true, "alpha": "x"})

	unsupported := &tcapi.UnsupportedOptionError{}
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, []string{"alpha", "zeta"}, unsupported.Options)
}

func TestApplyFilter_InvalidValue(t *testing.T) {
	t.Parallel()

	_, err := tcapi.ApplyFilter(testBuildTypes(), tcapi.Filter{"include": 42})
	require.ErrorIs(t, err, tcapi.ErrInvalidFilterValue)

	_, err = tcapi.ApplyFilter(testBuildTypes(), tcapi.Filter{"exclude": []interface{}{"bt1", 7}})
	require.ErrorIs(t, err, tcapi.ErrInvalidFilterValue)
}

func TestApplyFilter_IDBeforeName(t *testing.T) {
	t.Parallel()

	// "shared" is the id of the second type and the name of the first. The
	// first type is visited first and claims the token through its name.
	buildTypes := []tcapi.BuildType{
		{ID: "bt1", Name: "shared"},
		{ID: "shared", Name: "Other"},
	}

	_, err := tcapi.ApplyFilter(buildTypes, tcapi.Filter{"include": "shared"})
	require.NoError(t, err)

	result, err := tcapi.ApplyFilter(buildTypes, tcapi.Filter{"include": []string{"shared", "bt1"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"bt1", "shared"}, ids(result))
}

func TestApplyFilter_DoesNotMutateFilter(t *testing.T) {
	t.Parallel()

	tokens := []string{"bt1", "bt2"}
	filter := tcapi.Filter{"include": tokens}

	_, err := tcapi.ApplyFilter(testBuildTypes(), filter)
	require.NoError(t, err)

	_, err = tcapi.ApplyFilter(testBuildTypes(), filter)
	require.NoError(t, err)
	assert.Equal(t, []string{"bt1", "bt2"}, tokens)
}

func TestApplyFilter_SoundAndComplete(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(7, 11))

	for iteration := range 200 {
		count := 1 + rng.IntN(8)
		buildTypes := make([]tcapi.BuildType, 0, count)

		for index := range count {
			buildTypes = append(buildTypes, tcapi.BuildType{
				ID:   fmt.Sprintf("bt%d", index),
				Name: fmt.Sprintf("Build %d", index),
			})
		}

		// Only valid tokens: each build type is picked for at most one list,
		// referenced by id or by name at random.
		var include, exclude []string

		useInclude := rng.IntN(2) == 0

		for _, buildType := range buildTypes {
			token := buildType.ID
			if rng.IntN(2) == 0 {
				token = buildType.Name
			}

			switch rng.IntN(3) {
			case 0:
				include = append(include, token)
			case 1:
				exclude = append(exclude, token)
			}
		}

		filter := tcapi.Filter{"exclude": exclude}
		if useInclude {
			filter["include"] = include
		}

		result, err := tcapi.ApplyFilter(buildTypes, filter)
		require.NoError(t, err, "iteration %d", iteration)

		matches := func(tokens []string, buildType tcapi.BuildType) bool {
			return slices.Contains(tokens, buildType.ID) || slices.Contains(tokens, buildType.Name)
		}

		for _, buildType := range buildTypes {
			included := !useInclude || matches(include, buildType)
			excluded := matches(exclude, buildType)
			survived := slices.ContainsFunc(result, func(candidate tcapi.BuildType) bool {
				return candidate.ID == buildType.ID
			})

			assert.Equal(t, included && !excluded, survived, "iteration %d build type %s", iteration, buildType.ID)
		}
	}
}

func TestFilterMismatchError_Error(t *testing.T) {
	t.Parallel()

	err := &tcapi.FilterMismatchError{Include: []string{"a"}, Exclude: []string{"b", "c"}}

	assert.Equal(t, "filter tokens matched no build type: include [a], exclude [b c]", err.Error())
	assert.True(t, errors.Is(err, tcapi.ErrFilterMismatch))
	assert.Equal(t, []string{"a", "b", "c"}, err.Tokens())
}
