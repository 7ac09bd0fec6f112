package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	t.Run("numbers make a numerical feature", func(t *testing.T) {
		f := Detect("age", []interface{}{1, 2.5, int64(3), float32(4)})
		assert.Equal(t, Numerical, f.Kind())
		assert.Equal(t, "age", f.Name())
		assert.Equal(t, []string{BranchTrue, BranchFalse}, f.Domain())
	})

	t.Run("strings make a categorical feature with sorted levels", func(t *testing.T) {
		f := Detect("color", []interface{}{"red", "blue", "red", "green"})
		require.Equal(t, Categorical, f.Kind())
		assert.Equal(t, []string{"blue", "green", "red"}, f.Domain())
	})

	t.Run("a single string makes the column categorical", func(t *testing.T) {
		f := Detect("mixed", []interface{}{1, "two", 3})
		require.Equal(t, Categorical, f.Kind())
		assert.Equal(t, []string{"1", "3", "two"}, f.Domain())
	})

	t.Run("numeric strings stay categorical", func(t *testing.T) {
		f := Detect("code", []interface{}{"1", "2"})
		assert.Equal(t, Categorical, f.Kind())
	})
}

func TestCategoricalFeatureValid(t *testing.T) {
	f := NewCategoricalFeature("color", []string{"red", "blue"})
	ok, err := f.Valid("red")
	assert.True(t, ok)
	assert.NoError(t, err)

	ok, err = f.Valid("purple")
	assert.False(t, ok)
	assert.ErrorContains(t, err, "unknown value purple")
}

func TestNumericalFeatureValid(t *testing.T) {
	f := NewNumericalFeature("age")
	for _, v := range []interface{}{1, 2.5, "3.25"} {
		ok, err := f.Valid(v)
		assert.True(t, ok, "%v", v)
		assert.NoError(t, err)
	}
	ok, err := f.Valid("old")
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestCriteria(t *testing.T) {
	tests := []struct {
		name      string
		criterion Criterion
		value     interface{}
		want      bool
	}{
		{"less than below", LessThan(2), 1.5, true},
		{"less than equal", LessThan(2), 2.0, false},
		{"at most equal", AtMost(2), 2.0, true},
		{"at most above", AtMost(2), 2.5, false},
		{"at most parses strings", AtMost(2), "1", true},
		{"at most rejects text", AtMost(2), "low", false},
		{"equals level", Equals("A"), "A", true},
		{"equals stringifies", Equals("1"), 1, true},
		{"equals other level", Equals("A"), "B", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.criterion.SatisfiedBy(tt.value))
		})
	}
}
