package main

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/chzyer/readline"

	"github.com/MatthieuDartiailh/pegen/internal/analyze"
	"github.com/MatthieuDartiailh/pegen/internal/ast"
	"github.com/MatthieuDartiailh/pegen/internal/lex"
	"github.com/MatthieuDartiailh/pegen/internal/metagrammar"
)

// runREPL reads grammar-fragment text a blank-line-terminated block at a
// time, analyzes it, and reports each rule's nullability and
// left-recursion classification. It's meant for quick iteration on a
// grammar fragment, not for running a generated parser.
func runREPL() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "pegen> ",
		HistoryFile: "",
	})
	if err != nil {
		return fmt.Errorf("create readline config: %w", err)
	}
	defer rl.Close()

	fmt.Println("pegen repl: enter rule definitions, blank line to analyze, Ctrl-D to quit")

	var block strings.Builder
	for {
		line, err := rl.Readline()
		if err != nil {
			if err == io.EOF || err == readline.ErrInterrupt {
				return nil
			}
			return err
		}

		if strings.TrimSpace(line) == "" {
			if block.Len() == 0 {
				continue
			}
			analyzeFragment(block.String())
			block.Reset()
			continue
		}
		block.WriteString(line)
		block.WriteString("\n")
	}
}

// readFragment reads src as a grammar. When -verbose is set, each token
// the Tokenizer produces is logged before it reaches the Reader, giving
// a cheap trace of the lexical side of a fragment without needing a
// compiled parser to run.
func readFragment(src string) (*ast.Grammar, error) {
	tok := metagrammar.NewTokenizer(src)
	var producer lex.Producer = tok
	if *verbose {
		producer = lex.ProducerFunc(func() (lex.Token, error) {
			t, err := tok.Next()
			log.Printf("TOKEN %s", t)
			return t, err
		})
	}
	return metagrammar.ReadGrammarFromStream(lex.NewStream(producer))
}

func analyzeFragment(src string) {
	g, err := readFragment(src)
	if err != nil {
		fmt.Printf("syntax error: %s\n", err)
		return
	}

	vocab := defaultVocabulary()
	if err := analyze.Analyze(g, vocab); err != nil {
		fmt.Printf("analysis error: %s\n", err)
		return
	}

	for _, rule := range g.Rules() {
		status := "not left-recursive"
		if rule.LeftRecursive {
			status = "left-recursive"
			if rule.Leader {
				status += ", leader"
			}
		}
		fmt.Printf("%-16s nullable=%-5t %s\n", rule.Name, rule.Nullable, status)
	}
}
