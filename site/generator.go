package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jonboulle/clockwork"

	"zero-termico/models"
	"zero-termico/utils"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed assets
var assetsFS embed.FS

const timestampLayout = "02/01/2006 15:04"

// Report lists the files written by one Generate call, relative to the root.
type Report struct {
	Index  string
	Months []string
	Assets []string
}

// Generator renders the static chart site under a root directory.
type Generator struct {
	root   string
	title  string
	clock  clockwork.Clock
	logger *utils.Logger
	tmpl   *template.Template
	assets fs.FS
}

// NewGenerator parses the embedded templates. A nil clock means wall time.
func NewGenerator(root, title string, clock clockwork.Clock, logger *utils.Logger) (*Generator, error) {
	tmpl, err := loadTemplatesFromFS(templatesFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("site: load templates: %w", err)
	}
	assets, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		return nil, fmt.Errorf("site: load assets: %w", err)
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Generator{
		root:   root,
		title:  title,
		clock:  clock,
		logger: logger,
		tmpl:   tmpl,
		assets: assets,
	}, nil
}

func loadTemplatesFromFS(fsys fs.FS, dir string) (*template.Template, error) {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return nil, err
	}
	return template.ParseFS(sub, "*.html")
}

type monthView struct {
	Title        string
	MonthLabel   string
	Observations []models.Observation
	Min          int
	Max          int
	Average      float64
	Updated      string
}

type monthLink struct {
	Name  string
	Href  string
	Count int
}

type yearView struct {
	Year   int
	Months []monthLink
}

type indexView struct {
	Title   string
	Years   []yearView
	Updated string
}

// Generate writes one page per month present in ds, the index, and the
// shared assets. Existing files are overwritten.
func (g *Generator) Generate(ds models.Dataset) (*Report, error) {
	updated := g.clock.Now().Format(timestampLayout)
	report := &Report{}

	assets, err := g.writeAssets()
	if err != nil {
		return nil, err
	}
	report.Assets = assets

	index := indexView{Title: g.title, Updated: updated}
	for _, group := range ds.Groups() {
		rel, err := g.writeMonth(group, updated)
		if err != nil {
			return nil, err
		}
		report.Months = append(report.Months, rel)

		if n := len(index.Years); n == 0 || index.Years[n-1].Year != group.Key.Year {
			index.Years = append(index.Years, yearView{Year: group.Key.Year})
		}
		y := &index.Years[len(index.Years)-1]
		y.Months = append(y.Months, monthLink{
			Name:  capitalize(group.Key.Slug()),
			Href:  rel,
			Count: len(group.Observations),
		})
	}

	if err := g.render("index.html", "index.html", index); err != nil {
		return nil, err
	}
	report.Index = "index.html"

	g.logger.Info("[site] Wrote %d monthly pages and index under %s", len(report.Months), g.root)
	return report, nil
}

// MonthPath is the page location for key, relative to the site root.
func MonthPath(key models.MonthKey) string {
	return path.Join(strconv.Itoa(key.Year), key.Slug()+".html")
}

func (g *Generator) writeMonth(group models.MonthlyGroup, updated string) (string, error) {
	view := monthView{
		Title:        g.title,
		MonthLabel:   capitalize(group.Key.Slug()) + " " + strconv.Itoa(group.Key.Year),
		Observations: group.Observations,
		Updated:      updated,
	}

	total := 0
	for i, o := range group.Observations {
		if i == 0 || o.Level < view.Min {
			view.Min = o.Level
		}
		if i == 0 || o.Level > view.Max {
			view.Max = o.Level
		}
		total += o.Level
	}
	if n := len(group.Observations); n > 0 {
		view.Average = float64(total) / float64(n)
	}

	rel := MonthPath(group.Key)
	if err := g.render("month.html", rel, view); err != nil {
		return "", err
	}
	g.logger.Debug("[site] %s: %d readings", rel, len(group.Observations))
	return rel, nil
}

// render executes the template fully before touching the target file.
func (g *Generator) render(name, rel string, data any) error {
	var buf bytes.Buffer
	if err := g.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("site: render %s: %w", rel, err)
	}
	return g.write(rel, buf.Bytes())
}

func (g *Generator) write(rel string, data []byte) error {
	target := filepath.Join(g.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("site: create dir for %s: %w", rel, err)
	}
	if err := os.WriteFile(target, data, 0644); err != nil {
		return fmt.Errorf("site: write %s: %w", rel, err)
	}
	return nil
}

func (g *Generator) writeAssets() ([]string, error) {
	var written []string
	err := fs.WalkDir(g.assets, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(g.assets, p)
		if err != nil {
			return err
		}
		if err := g.write(p, data); err != nil {
			return err
		}
		written = append(written, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("site: copy assets: %w", err)
	}
	return written, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
