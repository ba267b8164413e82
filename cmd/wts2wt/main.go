// Command wts2wt reads a Parsoid-style HTML document and prints the
// wikitext it serializes to, splicing in the original source whenever a
// `--source` (`-s`) file is given (spec.md §4.10).
package main

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/net/html"

	"github.com/cscott/nell-parsoid/wts"
)

// normalizeTitle implements the wiki's title-equivalence rule: leading and
// trailing whitespace is trimmed, underscores stand in for spaces unless
// noUnderscores asks for the reverse, and the first letter is capitalized.
func normalizeTitle(s string, noUnderscores ...bool) string {
	s = strings.TrimSpace(s)
	if len(noUnderscores) > 0 && noUnderscores[0] {
		s = strings.ReplaceAll(s, "_", " ")
	} else {
		s = strings.ReplaceAll(s, " ", "_")
	}
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

var (
	sourcePath string
	pageTitle  string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "wts2wt [html_file]",
	Short: "Serialize a Parsoid-style HTML document back to wikitext",
	Args:  cobra.ExactArgs(1),
	RunE:  run,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&sourcePath, "source", "s", "", "original wikitext source, for separator splicing")
	rootCmd.Flags().StringVarP(&pageTitle, "title", "t", "", "page title recorded in the serializer env")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
}

func run(cmd *cobra.Command, args []string) error {
	logger := logrus.StandardLogger()
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening html file: %w", err)
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return fmt.Errorf("parsing html: %w", err)
	}

	var src *string
	if sourcePath != "" {
		b, err := os.ReadFile(sourcePath)
		if err != nil {
			return fmt.Errorf("reading source file: %w", err)
		}
		s := string(b)
		src = &s
	}

	opts := wts.Options{
		Env: wts.Env{
			Page: wts.Page{Src: src, Name: pageTitle},
			NormalizeTitle: normalizeTitle,
			ErrCB: func(err error) {
				logger.WithError(err).Error("serialize failed")
			},
		},
		Logger: logger,
	}

	w := os.Stdout
	onChunk := func(chunk string, _ interface{}) {
		fmt.Fprint(w, chunk)
	}

	return wts.Serialize(doc, opts, onChunk, nil)
}

func main() {
	Execute()
}
