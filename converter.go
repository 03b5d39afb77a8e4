package docingest

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be a content region isolated by an Extractor.
	Convert(html string) (string, error)
}
