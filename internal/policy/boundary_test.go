package policy

import (
	"go/ast"
	"go/parser"
	"go/token"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"
)

const modulePath = "github.com/hsiuhsiu/valist-go"

var (
	cgoPackages = map[string]bool{
		modulePath + "/internal/cabi":  true,
		modulePath + "/cmd/libvalist": true,
	}
	exportPackage   = modulePath + "/cmd/libvalist"
	exportedSymbols = []string{"triggerCallback", "triggerCallbackTagged"}
)

type sourceFile struct {
	pkg  string
	path string
	file *ast.File
}

func loadSources(t *testing.T) []sourceFile {
	t.Helper()
	cfg := &packages.Config{
		Mode:  packages.NeedName | packages.NeedFiles,
		Tests: false,
	}
	pkgs, err := packages.Load(cfg, modulePath+"/...")
	require.NoError(t, err)
	require.NotEmpty(t, pkgs)

	fset := token.NewFileSet()
	var out []sourceFile
	for _, pkg := range pkgs {
		for _, path := range pkg.GoFiles {
			f, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
			require.NoError(t, err, path)
			out = append(out, sourceFile{pkg: pkg.PkgPath, path: path, file: f})
		}
	}
	return out
}

func TestOnlyBoundaryPackagesImportC(t *testing.T) {
	var findings []string
	for _, src := range loadSources(t) {
		for _, imp := range src.file.Imports {
			p, err := strconv.Unquote(imp.Path.Value)
			if err != nil || p != "C" {
				continue
			}
			if !cgoPackages[src.pkg] {
				findings = append(findings, src.path)
			}
		}
	}
	assert.Empty(t, findings, "cgo outside the boundary packages:\n%s", strings.Join(findings, "\n"))
}

func TestExportedSymbols(t *testing.T) {
	var got []string
	var stray []string
	for _, src := range loadSources(t) {
		for _, group := range src.file.Comments {
			for _, c := range group.List {
				name, ok := strings.CutPrefix(c.Text, "//export ")
				if !ok {
					continue
				}
				if src.pkg != exportPackage {
					stray = append(stray, src.path+": "+name)
					continue
				}
				got = append(got, strings.TrimSpace(name))
			}
		}
	}
	assert.Empty(t, stray, "//export outside %s", exportPackage)

	sort.Strings(got)
	// Without cgo the export file is excluded from the build.
	if len(got) == 0 {
		t.Skip("export file not part of this build")
	}
	assert.Equal(t, exportedSymbols, got)
}
