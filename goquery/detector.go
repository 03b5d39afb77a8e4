package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docingest"
)

// Ensure Detector implements docingest.FrameworkDetector at compile time.
var _ docingest.FrameworkDetector = (*Detector)(nil)

// frameworkMarkers lists selectors unique to each generator, in the order
// they are checked. VitePress precedes VuePress since it reuses some of
// VuePress's vocabulary.
var frameworkMarkers = []struct {
	framework docingest.Framework
	selectors []string
}{
	{docingest.FrameworkDocusaurus, []string{"#__docusaurus_skipToContent_fallback", ".theme-doc-sidebar-container"}},
	{docingest.FrameworkMkDocs, []string{"[data-md-color-scheme]", "[data-md-component]", ".md-nav--primary"}},
	{docingest.FrameworkSphinx, []string{".toctree-wrapper", ".wy-nav-side", ".wy-menu-vertical", ".sphinxsidebar"}},
	{docingest.FrameworkVitePress, []string{"#VPContent", ".VPDoc", ".VPDocAsideOutline"}},
	{docingest.FrameworkVuePress, []string{".theme-default-content", ".sidebar-links", ".vuepress-navbar"}},
	{docingest.FrameworkGitBook, []string{"[data-testid='space.sidebar']", "[data-testid='page.desktopTableOfContents']"}},
	{docingest.FrameworkNextra, []string{".nextra-navbar", ".nextra-sidebar", ".nextra-toc"}},
}

// generatorNames maps substrings of <meta name="generator"> to frameworks.
var generatorNames = []struct {
	name      string
	framework docingest.Framework
}{
	{"sphinx", docingest.FrameworkSphinx},
	{"gitbook", docingest.FrameworkGitBook},
	{"docusaurus", docingest.FrameworkDocusaurus},
	{"mkdocs", docingest.FrameworkMkDocs},
	{"vitepress", docingest.FrameworkVitePress},
	{"vuepress", docingest.FrameworkVuePress},
	{"nextra", docingest.FrameworkNextra},
}

// Detector identifies documentation frameworks from HTML content.
// It checks the generator meta tag first, then framework-specific
// classes, ids and data attributes.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect analyzes HTML and returns the identified framework.
// Returns FrameworkUnknown if the framework cannot be determined.
func (d *Detector) Detect(html string) docingest.Framework {
	doc, err := parseHTML(html)
	if err != nil {
		return docingest.FrameworkUnknown
	}

	if framework := detectFromMetaGenerator(doc); framework != docingest.FrameworkUnknown {
		return framework
	}

	for _, m := range frameworkMarkers {
		for _, selector := range m.selectors {
			if doc.Find(selector).Length() > 0 {
				return m.framework
			}
		}
	}

	if hasGitBookClasses(doc) {
		return docingest.FrameworkGitBook
	}
	return docingest.FrameworkUnknown
}

// detectFromMetaGenerator checks the meta generator tag for framework identification.
func detectFromMetaGenerator(doc *goquery.Document) docingest.Framework {
	generator, _ := doc.Find("meta[name='generator']").Last().Attr("content")
	generator = strings.ToLower(generator)
	if generator == "" {
		return docingest.FrameworkUnknown
	}

	for _, g := range generatorNames {
		if strings.Contains(generator, g.name) {
			return g.framework
		}
	}
	return docingest.FrameworkUnknown
}

// hasGitBookClasses reports whether the html element carries at least two
// of GitBook's theme classes.
func hasGitBookClasses(doc *goquery.Document) bool {
	class, _ := doc.Find("html").First().Attr("class")
	count := 0
	for _, name := range []string{"circular-corners", "theme-clean", "tint"} {
		if strings.Contains(class, name) {
			count++
		}
	}
	return count >= 2
}
