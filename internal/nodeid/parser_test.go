package nodeid

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name       string
		rawID      string
		expectErr  bool
		expectedID ID
	}{
		{name: "numeric", rawID: "i=1023", expectedID: NewNumeric(1023)},
		{name: "guid", rawID: "g=" + testGUID, expectedID: NewGUID(uuid.MustParse(testGUID))},
		{name: "string", rawID: "s=Boiler", expectedID: NewString("Boiler")},
		{name: "string containing equals", rawID: "s=a=b", expectedID: NewString("a=b")},
		{name: "empty string identifier", rawID: "s=", expectedID: NewString("")},
		{name: "error - empty", rawID: "", expectErr: true},
		{name: "error - no prefix", rawID: "1023", expectErr: true},
		{name: "error - bad number", rawID: "i=abc", expectErr: true},
		{name: "error - bad guid", rawID: "g=not-a-guid", expectErr: true},
		{name: "error - unknown prefix", rawID: "b=AAAA", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := Parse(tc.rawID)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedID, id)
		})
	}
}

func TestID_RoundTrip(t *testing.T) {
	for _, raw := range []string{"i=0", "i=-12", "s=Some Node", "g=" + testGUID} {
		t.Run(raw, func(t *testing.T) {
			id, err := Parse(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, id.String())
		})
	}
}

func TestID_ZeroIsInvalid(t *testing.T) {
	var id ID
	assert.False(t, id.IsValid())
	assert.Equal(t, "", id.String())
	assert.Equal(t, "invalid", id.Kind.String())
}
