package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/ladle"
	"github.com/chrisuehlinger/ladle/engine"
	"github.com/chrisuehlinger/ladle/engine/htmltok"
	"github.com/chrisuehlinger/ladle/engine/rawlex"
	"github.com/chrisuehlinger/ladle/engine/xmltok"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ladle",
		Short: "Parse markup into one consistent tree",
	}

	var engineName, encoding string
	var verbose bool

	parseCmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a document and print the repaired markup",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := parse(args, engineName, encoding, verbose)
			if err != nil {
				return err
			}
			fmt.Println(res.Document.AsNode().Render())
			return nil
		},
	}

	textCmd := &cobra.Command{
		Use:   "text [file]",
		Short: "Parse a document and print its extracted text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := parse(args, engineName, encoding, verbose)
			if err != nil {
				return err
			}
			fmt.Println(res.Document.AsNode().Text())
			return nil
		},
	}

	for _, c := range []*cobra.Command{parseCmd, textCmd} {
		c.Flags().StringVarP(&engineName, "engine", "e", "htmltok", "parsing engine (htmltok, xmltok, rawlex)")
		c.Flags().StringVar(&encoding, "encoding", "", "override the detected input encoding")
		c.Flags().BoolVarP(&verbose, "verbose", "v", false, "log markup repairs and the resolved encoding to stderr")
	}

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(textCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func parse(args []string, engineName, encoding string, verbose bool) (*ladle.Result, error) {
	var eng engine.Engine
	switch engineName {
	case "htmltok":
		eng = htmltok.New()
	case "xmltok":
		eng = xmltok.New()
	case "rawlex":
		eng = rawlex.New()
	default:
		return nil, fmt.Errorf("unknown engine: %s", engineName)
	}

	data, err := readInput(args)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	cfg := ladle.Config{Engine: eng}
	if encoding != "" {
		cfg.Encoding.Overrides = []string{encoding}
	}
	if verbose {
		cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr,
			&slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	res, err := ladle.ParseBytes(data, cfg)
	if err != nil {
		return nil, err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "encoding: %s (%s)\n",
			res.Encoding.Encoding, res.Encoding.Confidence)
	}
	return res, nil
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}
