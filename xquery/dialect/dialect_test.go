package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	v, err := ParseVersion(XQuery, "3.1")
	require.NoError(t, err)
	assert.Equal(t, XQuery31, v)

	v, err = ParseVersion(XQuery, " 1.0-ml ")
	require.NoError(t, err)
	assert.True(t, v.IsMarkLogicDialect())

	_, err = ParseVersion(XQuery, "3.2")
	assert.ErrorIs(t, err, ErrUnknownVersion)
}

func TestParseKind(t *testing.T) {
	tests := map[string]Kind{
		"w3c":             XQuery,
		"":                XQuery,
		"MarkLogic":       MarkLogic,
		"basex":           BaseX,
		"saxon":           Saxon,
		"full-text":       FullText,
		"update-facility": UpdateFacility,
		"scripting":       Scripting,
	}
	for in, want := range tests {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseKind("exist")
	assert.Error(t, err)
}

func TestSupports(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		req  Version
		want bool
	}{
		{"same version", Default(), XQuery31, true},
		{"older version", Default(), XQuery10, true},
		{"newer version", Default(), XQuery40, false},
		{"w3c has no vendor", Default(), MarkLogic60, false},
		{"extension disabled", Default(), FullText10, false},
		{"extension enabled", Config{XQuery: XQuery31, Extensions: []Version{UpdateFacility30}}, UpdateFacility10, true},
		{"basex implies full text", ForProduct(BaseX91), FullText10, true},
		{"basex version", ForProduct(BaseX85), BaseX91, false},
		{"marklogic product", ForProduct(MarkLogic80), MarkLogic60, true},
		{"marklogic dialect", ForProduct(MarkLogic80), MarkLogicXQuery10, true},
		{"marklogic dialect lacks 3.0", ForProduct(MarkLogic80), XQuery30, false},
		{"marklogic dialect keeps 1.0", ForProduct(MarkLogic80), XQuery10, true},
		{"saxon", ForProduct(Saxon98), Saxon94, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Supports(tt.req))
		})
	}
}

func TestSupportsAny(t *testing.T) {
	cfg := ForProduct(MarkLogic70)
	assert.True(t, cfg.SupportsAny(nil))
	assert.True(t, cfg.SupportsAny([]Version{XQuery30, MarkLogic60}))
	assert.False(t, cfg.SupportsAny([]Version{XQuery30, MarkLogic80}))
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Default().Validate())
	assert.NoError(t, ForProduct(Saxon100).Validate())

	bad := Default()
	bad.Product = FullText
	assert.ErrorIs(t, bad.Validate(), ErrUnknownVersion)

	bad = Default()
	bad.Extensions = []Version{MarkLogic60}
	assert.Error(t, bad.Validate())
}

func TestWithXQueryVersion(t *testing.T) {
	cfg, ok := Default().WithXQueryVersion("1.0")
	require.True(t, ok)
	assert.Equal(t, XQuery10, cfg.XQuery)

	_, ok = Default().WithXQueryVersion("9.9")
	assert.False(t, ok)
}

func TestFormatAlternatives(t *testing.T) {
	assert.Equal(t, "", FormatAlternatives(nil))
	assert.Equal(t, "XQuery 3.0", FormatAlternatives([]Version{XQuery30}))
	assert.Equal(t, "XQuery 3.0 or MarkLogic 6.0", FormatAlternatives([]Version{XQuery30, MarkLogic60}))
	assert.Equal(t, "Full Text 1.0, BaseX 7.8 or Saxon 9.8", FormatAlternatives([]Version{FullText10, BaseX78, Saxon98}))
}

func TestLatest(t *testing.T) {
	assert.Equal(t, XQuery40, Latest(XQuery))
	assert.Equal(t, Saxon100, Latest(Saxon))
	assert.Equal(t, MarkLogic90, Latest(MarkLogic))
}
