package docingest

// LinkSelector extracts outbound links from HTML.
type LinkSelector interface {
	// ExtractLinks parses HTML and returns absolute HTTP(S) links in
	// document order without duplicates.
	// The baseURL is used to resolve relative URLs.
	ExtractLinks(html string, baseURL string) ([]string, error)
}

// Scope decides whether a URL may be followed during a crawl.
type Scope interface {
	Allows(rawURL string) bool
}

// Framework identifies a documentation framework.
type Framework string

// Frameworks recognized by a FrameworkDetector.
const (
	FrameworkUnknown    Framework = ""
	FrameworkDocusaurus Framework = "docusaurus"
	FrameworkMkDocs     Framework = "mkdocs"
	FrameworkSphinx     Framework = "sphinx"
	FrameworkVuePress   Framework = "vuepress"
	FrameworkVitePress  Framework = "vitepress"
	FrameworkGitBook    Framework = "gitbook"
	FrameworkNextra     Framework = "nextra"
)

// FrameworkDetector identifies documentation frameworks from HTML.
type FrameworkDetector interface {
	// Detect analyzes HTML and returns the identified framework.
	// Returns FrameworkUnknown if the framework cannot be determined.
	Detect(html string) Framework
}
