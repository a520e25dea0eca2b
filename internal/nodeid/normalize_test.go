package nodeid

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGUID = "8f3d5a1c-2b4e-4c6d-9e7f-0a1b2c3d4e5f"

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name         string
		raw          any
		expectedKind Kind
		expectedStr  string
		expectErr    bool
	}{
		{name: "int64", raw: int64(1023), expectedKind: Numeric, expectedStr: "i=1023"},
		{name: "negative int", raw: -7, expectedKind: Numeric, expectedStr: "i=-7"},
		{name: "plain string", raw: "Boiler#1", expectedKind: String, expectedStr: "s=Boiler#1"},
		{name: "guid string", raw: testGUID, expectedKind: Guid, expectedStr: "g=" + testGUID},
		{name: "braced guid string", raw: "{" + testGUID + "}", expectedKind: Guid, expectedStr: "g=" + testGUID},
		{name: "numeric looking string stays string", raw: "42", expectedKind: String, expectedStr: "s=42"},
		{name: "float coerced", raw: 3.5, expectedKind: String, expectedStr: "s=3.5", expectErr: true},
		{name: "bool coerced", raw: true, expectedKind: String, expectedStr: "s=true", expectErr: true},
		{name: "nil coerced", raw: nil, expectedKind: String, expectedStr: "s=", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := Normalize(tc.raw)
			if tc.expectErr {
				var typeErr *TypeError
				require.ErrorAs(t, err, &typeErr)
				assert.Equal(t, tc.raw, typeErr.Raw)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.expectedKind, id.Kind)
			assert.Equal(t, tc.expectedStr, id.String())
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []any{int64(5), "text", testGUID, 2.25}
	for _, raw := range inputs {
		first, _ := Normalize(raw)
		second, err := Normalize(first)
		require.NoError(t, err)
		assert.Equal(t, first, second, "normalizing %v twice changed the identifier", raw)
	}

	g := uuid.MustParse(testGUID)
	id, err := Normalize(g)
	require.NoError(t, err)
	assert.Equal(t, NewGUID(g), id)
}

func TestApplyNames(t *testing.T) {
	name, desc := ApplyNames(NewNumeric(9), "", "")
	assert.Equal(t, "i=9", name)
	assert.Equal(t, "i=9", desc)

	name, desc = ApplyNames(NewString("x"), "Pump", "")
	assert.Equal(t, "Pump", name)
	assert.Equal(t, "Pump", desc)

	name, desc = ApplyNames(NewString("x"), "Pump", "Main pump")
	assert.Equal(t, "Pump", name)
	assert.Equal(t, "Main pump", desc)

	// Applying twice is a no-op.
	n2, d2 := ApplyNames(NewString("x"), name, desc)
	assert.Equal(t, name, n2)
	assert.Equal(t, desc, d2)
}
