package identity

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/bundlegraph/cli/internal/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantKey string
		wantErr bool
	}{
		{name: "unflavored", input: "//app:lib", wantKey: "//app:lib"},
		{name: "with cell", input: "android//java/com/example:lib", wantKey: "android//java/com/example:lib"},
		{name: "root package", input: "//:lib", wantKey: "//:lib"},
		{name: "user flavors sorted in key", input: "//app:lib#release,arm64", wantKey: "//app:lib#arm64,release"},
		{name: "duplicate flavor collapses", input: "//app:lib#x,x", wantKey: "//app:lib#x"},
		{name: "missing colon", input: "//app/lib", wantErr: true},
		{name: "missing slashes", input: "app:lib", wantErr: true},
		{name: "empty flavor list", input: "//app:lib#", wantErr: true},
		{name: "reserved flavor", input: "//app:lib#aar_android_manifest", wantErr: true},
		{name: "reserved prefix", input: "//app:lib#aar_custom", wantErr: true},
		{name: "malformed flavor", input: "//app:lib#-bad", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, oerrors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, id.Key())
		})
	}
}

func TestParseAnyAcceptsReservedFlavors(t *testing.T) {
	id, err := ParseAny("//app:lib#aar_android_manifest")
	require.NoError(t, err)
	assert.True(t, id.HasFlavor(FlavorAARManifest))
}

func TestNamePackage(t *testing.T) {
	id := MustParse("//java/com/example:lib")
	assert.Equal(t, "java/com/example", id.Package())
	assert.Equal(t, "lib", id.Name())
	assert.Equal(t, "//java/com/example:lib", id.Base())
}

func TestDeriveFlavored(t *testing.T) {
	base := MustParse("//app:lib")

	t.Run("appends flavor", func(t *testing.T) {
		derived := DeriveFlavored(base, FlavorAARManifest)
		assert.Equal(t, "//app:lib#aar_android_manifest", derived.String())
		assert.False(t, base.HasFlavors(), "base must not be mutated")
	})

	t.Run("associative", func(t *testing.T) {
		stepwise := DeriveFlavored(DeriveFlavored(base, FlavorAARAssembleAssets), FlavorAARAssembleResource)
		atOnce := DeriveFlavored(base, FlavorAARAssembleAssets, FlavorAARAssembleResource)
		assert.True(t, stepwise.Equal(atOnce))
	})

	t.Run("order independent equality, order preserving display", func(t *testing.T) {
		a := DeriveFlavored(base, FlavorAARAssembleResource, FlavorAARAssembleAssets)
		b := DeriveFlavored(base, FlavorAARAssembleAssets, FlavorAARAssembleResource)
		assert.True(t, a.Equal(b))
		assert.Equal(t, a.Key(), b.Key())
		assert.Equal(t, "//app:lib#aar_assemble_resource,aar_assemble_assets", a.String())
		assert.Equal(t, "//app:lib#aar_assemble_assets,aar_assemble_resource", b.String())
	})

	t.Run("repeated flavor is a set member", func(t *testing.T) {
		d := DeriveFlavored(base, FlavorAARManifest, FlavorAARManifest)
		assert.Len(t, d.Flavors(), 1)
	})

	t.Run("unflavored strips everything", func(t *testing.T) {
		d := DeriveFlavored(base, FlavorAARManifest)
		assert.True(t, d.Unflavored().Equal(base))
	})
}

func TestAssertUnflavored(t *testing.T) {
	base := MustParse("//app:lib")
	require.NoError(t, AssertUnflavored(base))

	pool := []Flavor{
		FlavorAARManifest,
		FlavorAARAssembleAssets,
		Flavor("debug"),
		Flavor("arm64"),
	}

	// Every non-empty subset of the pool must be rejected.
	for mask := 1; mask < 1<<len(pool); mask++ {
		var flavors []Flavor
		for i, f := range pool {
			if mask&(1<<i) != 0 {
				flavors = append(flavors, f)
			}
		}
		id := DeriveFlavored(base, flavors...)
		err := AssertUnflavored(id)
		require.Error(t, err, "flavors %v", flavors)

		var invalid *InvalidInputError
		assert.True(t, errors.As(err, &invalid))
		assert.True(t, errors.Is(err, oerrors.ErrInvalidInput))
	}
}

func TestSortAndDedup(t *testing.T) {
	ids := []Identity{
		MustParse("//b:b"),
		MustParse("//a:a"),
		MustParse("//b:b"),
		MustParse("//a:a#x"),
	}

	deduped := Dedup(ids)
	require.Len(t, deduped, 3)
	assert.Equal(t, "//b:b", deduped[0].Key())

	Sort(deduped)
	assert.Equal(t, []string{"//a:a", "//a:a#x", "//b:b"}, []string{deduped[0].Key(), deduped[1].Key(), deduped[2].Key()})
}

func TestTextMarshaling(t *testing.T) {
	id := DeriveFlavored(MustParse("//app:lib"), FlavorAARManifest)

	data, err := json.Marshal(map[string]Identity{"id": id})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"//app:lib#aar_android_manifest"}`, string(data))

	var decoded map[string]Identity
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded["id"].Equal(id))
}
