package json

import (
	"testing"

	"github.com/pbanos/entropic/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeFeatures(t *testing.T) {
	features := []feature.Feature{
		feature.NewCategoricalFeature("outlook", []string{"sunny", "rain", "overcast"}),
		feature.NewNumericalFeature("humidity"),
	}
	data, err := EncodeFeatures(features)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"outlook","kind":"categorical","levels":["overcast","rain","sunny"]},{"name":"humidity","kind":"numerical"}]`, string(data))

	decoded, err := DecodeFeatures(data)
	require.NoError(t, err)
	assert.Equal(t, features, decoded)
}

func TestDecodeFeaturesRejectsUnknownKind(t *testing.T) {
	_, err := DecodeFeatures([]byte(`[{"name":"x","kind":"ordinal"}]`))
	assert.ErrorContains(t, err, `unknown kind "ordinal"`)
}
