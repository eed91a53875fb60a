package tree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/optionbook/internal/module"
)

func mod(path, name string) *module.Module {
	return &module.Module{Path: path, Name: name}
}

func TestAddress(t *testing.T) {
	opts := DefaultAddressOptions()
	cases := []struct {
		in   string
		want []string
	}{
		{"catalog/modules/services/foo.hcl", []string{"services", "foo"}},
		{"catalog/modules/networking", []string{"networking"}},
		{"catalog/modules/networking/default.hcl", []string{"networking"}},
		{"catalog/modules/hardware/gpu/index.hcl", []string{"hardware", "gpu"}},
		{"catalog/modules/top.hcl", []string{"top"}},
		{"./catalog/modules/services/bar.hcl", []string{"services", "bar"}},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Address(tc.in, opts)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAddress_TooShort(t *testing.T) {
	for _, p := range []string{"catalog/modules", "catalog", "catalog/modules/default.hcl"} {
		_, err := Address(p, DefaultAddressOptions())
		var addrErr *AddressError
		require.ErrorAs(t, err, &addrErr, p)
	}
}

func TestAddress_CustomRoot(t *testing.T) {
	got, err := Address("mods/a/b.hcl", AddressOptions{RootSegments: 1, Suffixes: []string{".hcl"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestBuild_CategoriesAndLeaves(t *testing.T) {
	foo := mod("catalog/modules/services/foo.hcl", "foo")
	net := mod("catalog/modules/networking", "networking")

	tr, err := Build([]*module.Module{net, foo}, DefaultAddressOptions())
	require.NoError(t, err)

	services := tr.Root.Children["services"]
	require.NotNil(t, services)
	assert.Equal(t, KindCategory, services.Kind)
	assert.Equal(t, foo.Path, services.ImpliedBy)
	require.Contains(t, services.Children, "foo")
	assert.Equal(t, KindLeaf, services.Children["foo"].Kind)

	networking := tr.Root.Children["networking"]
	require.NotNil(t, networking)
	assert.Equal(t, KindLeaf, networking.Kind)

	assert.Equal(t, []*module.Module{net, foo}, tr.Leaves())
	assert.Equal(t, []string{"services"}, tr.Categories())
}

func TestBuild_InputOrderDoesNotMatter(t *testing.T) {
	a := mod("catalog/modules/x/a.hcl", "a")
	b := mod("catalog/modules/x/b.hcl", "b")
	c := mod("catalog/modules/c.hcl", "c")

	t1, err := Build([]*module.Module{a, b, c}, DefaultAddressOptions())
	require.NoError(t, err)
	t2, err := Build([]*module.Module{c, b, a}, DefaultAddressOptions())
	require.NoError(t, err)

	assert.Equal(t, t1.Summary(), t2.Summary())
	assert.Equal(t, t1.Leaves(), t2.Leaves())
}

func TestBuild_Collisions(t *testing.T) {
	cases := []struct {
		name string
		mods []*module.Module
		kind CollisionKind
	}{
		{
			name: "module on module",
			mods: []*module.Module{
				mod("catalog/modules/net.hcl", "net"),
				mod("catalog/modules/net/default.hcl", "net2"),
			},
			kind: CollisionModule,
		},
		{
			name: "module needs leaf as category",
			mods: []*module.Module{
				mod("catalog/modules/services.hcl", "services"),
				mod("catalog/modules/services/foo.hcl", "foo"),
			},
			kind: CollisionModule,
		},
		{
			name: "module lands on category",
			mods: []*module.Module{
				mod("catalog/modules/a/b/default.hcl", "b"),
				mod("catalog/modules/a/b/c.hcl", "c"),
			},
			kind: CollisionCategory,
		},
		{
			name: "duplicate document name",
			mods: []*module.Module{
				mod("catalog/modules/x/foo.hcl", "foo"),
				mod("catalog/modules/y/foo.hcl", "foo"),
			},
			kind: CollisionDocument,
		},
		{
			name: "category page shadows module document",
			mods: []*module.Module{
				mod("catalog/modules/foo-docs/bar.hcl", "bar"),
				mod("catalog/modules/foo.hcl", "foo"),
			},
			kind: CollisionDocument,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Build(tc.mods, DefaultAddressOptions())
			var collision *CollisionError
			require.True(t, errors.As(err, &collision), "got %v", err)
			assert.Equal(t, tc.kind, collision.Kind)
			assert.NotEmpty(t, collision.Existing)
			assert.NotEmpty(t, collision.Incoming)
			assert.NotEqual(t, collision.Existing, collision.Incoming)
		})
	}
}

func TestSummary(t *testing.T) {
	tr, err := Build([]*module.Module{
		mod("catalog/modules/services/foo.hcl", "foo"),
		mod("catalog/modules/services/web/nginx.hcl", "nginx"),
		mod("catalog/modules/networking", "networking"),
	}, DefaultAddressOptions())
	require.NoError(t, err)

	want := "# Summary\n\n" +
		"- [networking](networking-docs.md)\n" +
		"- [services](./services.md)\n" +
		"  - [foo](foo-docs.md)\n" +
		"  - [web](./web.md)\n" +
		"    - [nginx](nginx-docs.md)\n"
	assert.Equal(t, want, tr.Summary())
	assert.Equal(t, []string{"services", "web"}, tr.Categories())
}

func TestSummary_Empty(t *testing.T) {
	tr, err := Build(nil, DefaultAddressOptions())
	require.NoError(t, err)
	assert.Equal(t, "# Summary\n\n", tr.Summary())
	assert.Empty(t, tr.Leaves())
}

func TestBuild_CategoryNamedLikeSummaryIsRejected(t *testing.T) {
	_, err := Build([]*module.Module{mod("catalog/modules/SUMMARY/foo.hcl", "foo")}, DefaultAddressOptions())
	var collision *CollisionError
	require.ErrorAs(t, err, &collision)
	assert.Equal(t, CollisionDocument, collision.Kind)
	assert.Equal(t, SummaryPage, collision.Address)
	assert.Equal(t, "catalog/modules/SUMMARY/foo.hcl", collision.Incoming)
}

func TestBuild_SameNamedCategoriesSharePage(t *testing.T) {
	tr, err := Build([]*module.Module{
		mod("catalog/modules/a/common/x.hcl", "x"),
		mod("catalog/modules/b/common/y.hcl", "y"),
	}, DefaultAddressOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "common"}, tr.Categories())
}
