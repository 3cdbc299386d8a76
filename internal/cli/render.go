package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/tasuku43/wsdeps/internal/domain/deps"
	"github.com/tasuku43/wsdeps/internal/domain/workspace"
	"github.com/tasuku43/wsdeps/internal/infra/output"
	"github.com/tasuku43/wsdeps/internal/ops/doctor"
	"github.com/tasuku43/wsdeps/internal/ui"
)

type treeLineStyle int

const (
	treeLineNormal treeLineStyle = iota
	treeLineMuted
	treeLineWarn
	treeLineError
)

// packageRecord is the JSON shape of a workspace package.
type packageRecord struct {
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
	Dir     string `json:"dir"`
	Path    string `json:"path"`
	PURL    string `json:"purl,omitempty"`
}

type refsRecord struct {
	Dependency packageRecord   `json:"dependency"`
	Dependents []packageRecord `json:"dependents"`
}

func newRenderer(out io.Writer) *ui.Renderer {
	return ui.NewRenderer(out, ui.DefaultTheme(), isTerminalWriter(out))
}

func isTerminalWriter(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && isatty.IsTerminal(file.Fd())
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func toRecord(rootDir string, pkg workspace.Package) packageRecord {
	return packageRecord{
		Name:    pkg.Name(),
		Version: pkg.Version(),
		Dir:     relDir(rootDir, pkg.Dir),
		Path:    pkg.ManifestPath,
		PURL:    pkg.Manifest.PURL(),
	}
}

func toRecords(rootDir string, packages []workspace.Package) []packageRecord {
	records := make([]packageRecord, 0, len(packages))
	for _, pkg := range packages {
		records = append(records, toRecord(rootDir, pkg))
	}
	return records
}

func relDir(rootDir, dir string) string {
	rel, err := filepath.Rel(rootDir, dir)
	if err != nil {
		return dir
	}
	return filepath.ToSlash(rel)
}

func displayName(pkg workspace.Package) string {
	if name := pkg.Name(); name != "" {
		return name
	}
	return "(unnamed)"
}

func renderTreeLines(r *ui.Renderer, lines []string, style treeLineStyle) {
	for i, line := range lines {
		prefix := output.Indent + output.TreeConnector(i, len(lines))
		switch style {
		case treeLineMuted:
			r.TreeLineMuted(prefix, line)
		case treeLineWarn:
			r.TreeLineWarn(prefix, line)
		case treeLineError:
			r.TreeLineError(prefix, line)
		default:
			r.TreeLine(prefix, line)
		}
	}
}

func writePackageListText(out io.Writer, rootDir string, packages []workspace.Package) {
	r := newRenderer(out)
	r.Header("wsdeps ls")
	r.Blank()
	r.Section("Info")
	r.Bullet(fmt.Sprintf("root: %s", rootDir))
	r.Bullet(fmt.Sprintf("packages: %d", len(packages)))
	r.Blank()

	r.Section("Result")
	if len(packages) == 0 {
		r.Bullet("no packages found")
		return
	}
	for _, pkg := range packages {
		suffix := ""
		if v := pkg.Version(); v != "" {
			suffix = "(" + v + ")"
		}
		r.BulletWithDescription(displayName(pkg), relDir(rootDir, pkg.Dir), suffix)
		if purl := pkg.Manifest.PURL(); purl != "" {
			renderTreeLines(r, []string{purl}, treeLineMuted)
		}
	}
}

func writeRefsText(out io.Writer, rootDir string, report deps.Report) {
	f := ui.NewFrame(ui.DefaultTheme(), isTerminalWriter(out))
	dep := report.Dependency
	f.Prompt(ui.SectionInputs, fmt.Sprintf("package: %s", dep.Name()))
	f.Bullet(ui.SectionInfo, strings.TrimSpace(dep.Name()+" "+versionSuffix(dep)))
	f.TreeMuted(ui.SectionInfo, output.Indent+output.LogConnector, relDir(rootDir, dep.Dir))

	if len(report.Dependents) == 0 {
		f.Bullet(ui.SectionResult, "no dependents")
		_, _ = f.WriteTo(out)
		return
	}
	f.Bullet(ui.SectionResult, fmt.Sprintf("dependents (%d)", len(report.Dependents)))
	for i, pkg := range report.Dependents {
		line := displayName(pkg)
		if kind, rng, ok := pkg.Manifest.DeclaredRange(dep.Name()); ok {
			line = fmt.Sprintf("%s %s (%s)", line, rng, kind)
		}
		f.Tree(ui.SectionResult, output.Indent+output.TreeConnector(i, len(report.Dependents)), line)
	}
	_, _ = f.WriteTo(out)
}

func versionSuffix(pkg workspace.Package) string {
	if v := pkg.Version(); v != "" {
		return "(" + v + ")"
	}
	return ""
}

func writeVersionsText(r *ui.Renderer, versions map[string]string) {
	r.Section("Result")
	if len(versions) == 0 {
		r.Bullet("no packages found")
		return
	}
	names := make([]string, 0, len(versions))
	for name := range versions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		version := versions[name]
		if version == "" {
			version = "(no version)"
		}
		r.BulletWithDescription(name, version, "")
	}
}

func issueDetails(issue doctor.Issue) []string {
	var details []string
	if strings.TrimSpace(issue.Path) != "" {
		details = append(details, fmt.Sprintf("path: %s", issue.Path))
	}
	if strings.TrimSpace(issue.Message) != "" {
		details = append(details, fmt.Sprintf("message: %s", issue.Message))
	}
	return details
}

func renderIssues(r *ui.Renderer, issues []doctor.Issue) {
	if len(issues) == 0 {
		r.BulletSuccess("no issues found")
		return
	}
	for _, issue := range issues {
		r.BulletError(issue.Kind)
		renderTreeLines(r, issueDetails(issue), treeLineError)
	}
}

func renderWarnings(r *ui.Renderer, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	r.BulletWarn("warnings")
	renderTreeLines(r, warnings, treeLineWarn)
}

func writeDoctorText(out io.Writer, check *doctor.Result, self doctor.SelfResult) {
	r := newRenderer(out)
	r.Section("Info")
	if check != nil {
		r.Bullet(fmt.Sprintf("root: %s", check.RootDir))
		r.Bullet(fmt.Sprintf("packages: %d", check.Packages))
	}
	for _, detail := range self.Details {
		r.Bullet(detail)
	}
	warnings := append([]string(nil), self.Warnings...)
	if check != nil {
		warnings = append(warnings, check.Warnings...)
	}
	renderWarnings(r, warnings)
	r.Blank()

	r.Section("Result")
	var issues []doctor.Issue
	if check != nil {
		issues = append(issues, check.Issues...)
	}
	issues = append(issues, self.Issues...)
	renderIssues(r, issues)
}
