package module

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/optionbook/internal/options"
)

func writeModule(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func testEvaluator() *Evaluator {
	return NewEvaluator(Context{Packages: map[string]Package{
		"foo": {Version: "1.2.3", Description: "The foo daemon"},
	}})
}

const fooModule = `# Foo service
#
# Runs foo.

options = {
  services = {
    foo = {
      enable  = mkEnableOption("foo")
      package = mkOption({
        type        = lib.types.package
        default     = pkgs.foo
        description = "Package providing ${pkgs.foo.name}."
      })
      ports = mkOption({
        type    = listOf(lib.types.port)
        example = [80, 443]
      })
    }
  }
}

config = {
  systemd = { foo = config.services.foo.enable }
}
`

func TestEvaluator_LoadExtractsOptions(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "catalog/modules/services/foo.hcl", fooModule)

	m, err := testEvaluator().Load(Source{Root: root, Path: "catalog/modules/services/foo.hcl"})
	require.NoError(t, err)

	assert.Equal(t, "foo", m.Name)
	assert.Equal(t, "foo-docs.md", m.DocumentName())
	assert.Equal(t, filepath.Join(root, "catalog", "modules", "services", "foo.hcl"), m.DocFile)
	assert.Equal(t, []string{"lib", "pkgs"}, m.Requires)
	require.True(t, m.HasOptions)
	require.Len(t, m.Options, 3)

	enable := m.Options[0]
	assert.Equal(t, "services.foo.enable", enable.Name)
	assert.Equal(t, "boolean", enable.Type)
	assert.Equal(t, "Whether to enable foo.", enable.Description)
	assert.Equal(t, "true", enable.Example)

	pkg := m.Options[1]
	assert.Equal(t, "services.foo.package", pkg.Name)
	assert.Equal(t, "package", pkg.Type)
	assert.Equal(t, "Package providing foo.", pkg.Description)
	assert.False(t, pkg.HasExample)

	ports := m.Options[2]
	assert.Equal(t, "list of 16 bit unsigned integer; between 0 and 65535 (both inclusive)", ports.Type)
	assert.Equal(t, "<none>", ports.Description)
	assert.Equal(t, "[80, 443]", ports.Example)
}

func TestEvaluator_PlaceholderReadInOptionsFails(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "catalog/modules/bad.hcl", `
options = {
  bad = mkOption({
    type    = lib.types.bool
    default = config.services.foo.enable
  })
}
`)

	_, err := testEvaluator().Load(Source{Root: root, Path: "catalog/modules/bad.hcl"})
	require.Error(t, err)

	var evalErr *EvaluationError
	require.True(t, errors.As(err, &evalErr))
	assert.Equal(t, "catalog/modules/bad.hcl", evalErr.Module)
	assert.Equal(t, "config", evalErr.Field)
	assert.Equal(t, []string{"config", "lib"}, evalErr.Requires)
}

func TestEvaluator_UnreadPlaceholdersAreLazy(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "catalog/modules/lazy.hcl", `
options = {
  lazy = mkOption({ type = lib.types.str })
}

config = {
  everything = [config.a.b, utils.c, services.d.e, modules.x, options.y.z]
}

imports = baseModules.all
`)

	m, err := testEvaluator().Load(Source{Root: root, Path: "catalog/modules/lazy.hcl"})
	require.NoError(t, err)
	require.Len(t, m.Options, 1)
	assert.Equal(t, "lazy", m.Options[0].Name)
}

func TestEvaluator_BarePlaceholderIsEmptyNotFatal(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "catalog/modules/bare.hcl", `
options = {
  seen = mkOption({ example = config })
}
`)

	m, err := testEvaluator().Load(Source{Root: root, Path: "catalog/modules/bare.hcl"})
	require.NoError(t, err)
	require.Len(t, m.Options, 1)
	assert.True(t, m.Options[0].HasExample)
	assert.Equal(t, []string{"config"}, m.Requires)
}

func TestEvaluator_UnknownFunctionFails(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "catalog/modules/fn.hcl", `
options = {
  x = mkOption({ example = upper("a") })
}
`)

	_, err := testEvaluator().Load(Source{Root: root, Path: "catalog/modules/fn.hcl"})
	var evalErr *EvaluationError
	require.True(t, errors.As(err, &evalErr))
	assert.Empty(t, evalErr.Field)
}

func TestEvaluator_FolderModule(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "catalog/modules/networking/default.hcl", "# Networking\n\nconfig = {}\n")

	m, err := testEvaluator().Load(Source{Root: root, Path: "catalog/modules/networking"})
	require.NoError(t, err)
	assert.Equal(t, "networking", m.Name)
	assert.Equal(t, filepath.Join(root, "catalog", "modules", "networking", "default.hcl"), m.DocFile)
	assert.False(t, m.HasOptions)
	assert.Empty(t, m.Options)

	m, err = testEvaluator().Load(Source{Root: root, Path: "catalog/modules/networking/default.hcl"})
	require.NoError(t, err)
	assert.Equal(t, "networking", m.Name)
}

func TestEvaluator_FolderWithoutDefaultFails(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "catalog", "modules", "empty"), 0o755))

	_, err := testEvaluator().Load(Source{Root: root, Path: "catalog/modules/empty"})
	var evalErr *EvaluationError
	require.True(t, errors.As(err, &evalErr))
}

func TestEvaluator_MissingModuleFails(t *testing.T) {
	_, err := testEvaluator().Load(Source{Root: t.TempDir(), Path: "catalog/modules/nope.hcl"})
	var evalErr *EvaluationError
	require.True(t, errors.As(err, &evalErr))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestEvaluator_SyntaxErrorFails(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "catalog/modules/broken.hcl", "options = {\n")

	_, err := testEvaluator().Load(Source{Root: root, Path: "catalog/modules/broken.hcl"})
	var evalErr *EvaluationError
	require.True(t, errors.As(err, &evalErr))
	assert.Empty(t, evalErr.Field)
}

func TestEvaluator_OptionsMustBeObject(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "catalog/modules/scalar.hcl", `options = "nope"`)

	_, err := testEvaluator().Load(Source{Root: root, Path: "catalog/modules/scalar.hcl"})
	var evalErr *EvaluationError
	require.True(t, errors.As(err, &evalErr))
}

func TestEvaluator_EnumAndMdDoc(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "catalog/modules/level.hcl", `
options = {
  level = mkOption({
    type        = enum(["info", "debug"])
    description = mdDoc("Log *level*.\nDefaults to info.")
    visible     = false
  })
  extra = mkOption({ type = attrsOf(nullOr(lib.types.str)) })
}
`)

	m, err := testEvaluator().Load(Source{Root: root, Path: "catalog/modules/level.hcl"})
	require.NoError(t, err)
	require.Len(t, m.Options, 2)
	assert.Equal(t, "extra", m.Options[0].Name)
	assert.Equal(t, "attribute set of null or string", m.Options[0].Type)
	assert.Equal(t, `one of "info", "debug"`, m.Options[1].Type)
	assert.Equal(t, "Log *level*. Defaults to info.", m.Options[1].Description)
	assert.False(t, m.Options[1].Visible)
}

func TestDeriveName(t *testing.T) {
	assert.Equal(t, "foo", DeriveName("catalog/modules/services/foo.hcl", false))
	assert.Equal(t, "networking", DeriveName("catalog/modules/networking", true))
	assert.Equal(t, "networking", DeriveName("catalog/modules/networking/", true))
	assert.Equal(t, "storage", DeriveName("catalog/modules/storage/index.hcl", false))
	assert.Equal(t, "default", DeriveName("default.hcl", false))
}

func TestEvaluator_OptionsBlockIsRejected(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "catalog/modules/block.hcl", `
options {
  enable = mkEnableOption("block")
}
`)

	_, err := testEvaluator().Load(Source{Root: root, Path: "catalog/modules/block.hcl"})
	var evalErr *EvaluationError
	require.ErrorAs(t, err, &evalErr)
	assert.Contains(t, err.Error(), "options must be an attribute")
}

func TestEvaluator_DuplicateOptionNamesFail(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "catalog/modules/dup.hcl", `
options = {
  a     = { b = mkOption({}) }
  "a.b" = mkOption({})
}
`)

	_, err := testEvaluator().Load(Source{Root: root, Path: "catalog/modules/dup.hcl"})
	var evalErr *EvaluationError
	require.ErrorAs(t, err, &evalErr)
	var dup *options.DuplicateNameError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "a.b", dup.Name)
}
