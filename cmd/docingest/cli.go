package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/docingest"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx         context.Context
	Stdout      io.Writer
	Stderr      io.Writer
	Logger      *slog.Logger
	Config      *Config
	Fetcher     docingest.Fetcher
	GitHubToken string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config      string `short:"c" type:"path" help:"YAML source configuration (defaults to the built-in sources)"`
	Output      string `short:"o" type:"path" help:"Destination: .json file, .db/.sqlite database or markdown directory"`
	Verbose     bool   `short:"v" help:"Log every request at debug level"`
	GitHubToken string `name:"github-token" env:"GITHUB_TOKEN" help:"GitHub token for higher API rate limits"`

	Run  RunCmd  `cmd:"" default:"withargs" help:"Ingest all configured sources (default)"`
	List ListCmd `cmd:"" help:"List documents from a previous run"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct{}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Source string `short:"s" help:"Only list documents from this source (readthedocs, github, website)"`
	Limit  int    `short:"n" help:"Maximum number of documents to list"`
	Hash   bool   `help:"Show the content hash of each document"`
}
