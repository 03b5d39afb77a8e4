// Package docingest collects documentation from heterogeneous sources into a
// uniform document collection for downstream retrieval. It crawls static
// documentation sites and arbitrary websites breadth-first, pulls readme and
// docs files from a source-hosting API, normalizes every page into a
// Document and persists the collection as a single artifact.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, github/).
package docingest
