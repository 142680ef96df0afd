/*
Pegen generates a Go packrat parser from a PEG grammar description.

Usage:

	pegen [flags] GRAMMAR

The flags are:

	-o, --out FILE
		Write the generated Go source to FILE instead of stdout.

	-p, --package NAME
		Package name for the generated file. Defaults to "parser".

	-t, --type NAME
		Receiver type name for the generated rule methods. Defaults to
		"Parser".

	-c, --config FILE
		Read grammar/out/package from a TOML config file. Flags given
		explicitly on the command line override the file's values.

	--verbose
		In --repl mode, log each token the tokenizer produces before
		it reaches the reader. Has no effect on generated Go source.

	--repl
		Start an interactive loop that reads grammar fragments and
		reports nullability and left-recursion classification for
		each rule, without generating any Go source. GRAMMAR is
		ignored in this mode.
*/
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/pflag"

	"github.com/MatthieuDartiailh/pegen/internal/analyze"
	"github.com/MatthieuDartiailh/pegen/internal/emit"
	"github.com/MatthieuDartiailh/pegen/internal/metagrammar"
)

const (
	exitSuccess = iota
	exitUsageError
	exitGenerateError
)

var (
	outFile     = pflag.StringP("out", "o", "", "write generated Go source to this file instead of stdout")
	packageName = pflag.StringP("package", "p", "parser", "package name for the generated file")
	parserType  = pflag.StringP("type", "t", "Parser", "receiver type name for generated rule methods")
	configFile  = pflag.StringP("config", "c", "", "TOML file supplying grammar/out/package")
	verbose     = pflag.Bool("verbose", false, "log each token produced when running --repl")
	repl        = pflag.Bool("repl", false, "start an interactive grammar-fragment analysis loop")
)

func main() {
	pflag.Parse()
	log.SetFlags(0)

	if *repl {
		if err := runREPL(); err != nil {
			log.Printf("ERROR: %s", err)
			os.Exit(exitGenerateError)
		}
		os.Exit(exitSuccess)
	}

	grammarPath := ""
	if pflag.NArg() > 0 {
		grammarPath = pflag.Arg(0)
	}

	if *configFile != "" {
		cfg, err := loadFileConfig(*configFile)
		if err != nil {
			log.Printf("ERROR: %s", err)
			os.Exit(exitUsageError)
		}
		if grammarPath == "" {
			grammarPath = cfg.Grammar
		}
		if !pflag.CommandLine.Changed("out") && cfg.Out != "" {
			*outFile = cfg.Out
		}
		if !pflag.CommandLine.Changed("package") && cfg.Package != "" {
			*packageName = cfg.Package
		}
	}

	if grammarPath == "" {
		fmt.Fprintln(os.Stderr, "ERROR: no grammar file given")
		pflag.Usage()
		os.Exit(exitUsageError)
	}

	src, err := os.ReadFile(grammarPath)
	if err != nil {
		log.Printf("ERROR: %s", err)
		os.Exit(exitUsageError)
	}

	code, err := generate(string(src), *packageName, *parserType)
	if err != nil {
		log.Printf("ERROR: %s", err)
		os.Exit(exitGenerateError)
	}

	if *outFile == "" {
		fmt.Print(code)
		return
	}
	if err := os.WriteFile(*outFile, []byte(code), 0o644); err != nil {
		log.Printf("ERROR: %s", err)
		os.Exit(exitGenerateError)
	}
}

// generate runs the full metagrammar -> analyze -> emit pipeline over
// source and returns the resulting Go file.
func generate(source, pkg, typ string) (string, error) {
	g, err := metagrammar.ReadGrammar(source)
	if err != nil {
		return "", fmt.Errorf("parse grammar: %w", err)
	}

	vocab := defaultVocabulary()
	if err := analyze.Analyze(g, vocab); err != nil {
		return "", fmt.Errorf("analyze grammar: %w", err)
	}

	code, err := emit.NewEmitter(g, vocab, emit.Options{
		PackageName: pkg,
		ParserType:  typ,
	}).Emit()
	if err != nil {
		return "", fmt.Errorf("emit parser: %w", err)
	}
	return code, nil
}
