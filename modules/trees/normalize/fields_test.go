package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	require.Nil(t, CleanText(nil))
	require.Nil(t, CleanText(""))
	require.Nil(t, CleanText("   "))

	got := CleanText("  12 Oak St  ")
	require.NotNil(t, got)
	require.Equal(t, "12 Oak St", *got)

	num := CleanText(float64(42))
	require.NotNil(t, num)
	require.Equal(t, "42", *num)
}

func TestTextValue_KeepsRawStrings(t *testing.T) {
	require.Nil(t, TextValue(nil))

	empty := TextValue("")
	require.NotNil(t, empty)
	require.Equal(t, "", *empty)

	zone := TextValue(float64(7))
	require.NotNil(t, zone)
	require.Equal(t, "7", *zone)
}

func TestRawDiameter(t *testing.T) {
	require.Nil(t, RawDiameter(nil))
	require.Nil(t, RawDiameter(""))
	require.Nil(t, RawDiameter("--"))
	require.Nil(t, RawDiameter("null"))
	require.Nil(t, RawDiameter("n/a"))

	got := RawDiameter(33.5)
	require.NotNil(t, got)
	require.Equal(t, 33.5, *got)

	fromString := RawDiameter("33.5")
	require.NotNil(t, fromString)
	require.Equal(t, 33.5, *fromString)
}

func TestRoundedDiameter(t *testing.T) {
	require.Nil(t, RoundedDiameter(nil))
	require.Nil(t, RoundedDiameter("--"))
	require.Nil(t, RoundedDiameter("not a number"))

	up := RoundedDiameter("33.5")
	require.NotNil(t, up)
	require.Equal(t, float64(34), *up)

	down := RoundedDiameter(12.4)
	require.NotNil(t, down)
	require.Equal(t, float64(12), *down)
}

func TestRoundedDiameter_HalvesRoundToEven(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0.5, 0},
		{2.5, 2},
		{12.5, 12},
		{13.5, 14},
		{-2.5, -2},
	}
	for _, tc := range cases {
		got := RoundedDiameter(tc.in)
		require.NotNil(t, got)
		require.Equal(t, tc.want, *got, "RoundedDiameter(%v)", tc.in)
	}
}

func TestSyntheticObjectID(t *testing.T) {
	id, err := SyntheticObjectID("T-32114228")
	require.NoError(t, err)
	require.Equal(t, int64(32114228), id)

	id, err = SyntheticObjectID("", "AB12-34")
	require.NoError(t, err)
	require.Equal(t, int64(1234), id)

	_, err = SyntheticObjectID("no-digits", "STILL-NONE")
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing a numeric identifier")
	require.Contains(t, err.Error(), "STILL-NONE")
}

func TestObjectID(t *testing.T) {
	id, err := ObjectID(float64(815))
	require.NoError(t, err)
	require.Equal(t, int64(815), id)

	id, err = ObjectID("815")
	require.NoError(t, err)
	require.Equal(t, int64(815), id)

	_, err = ObjectID(nil)
	require.Error(t, err)

	_, err = ObjectID("abc")
	require.Error(t, err)
}
