// Package sourceparse implements Phase A (declaration extraction) and Phase
// B (reference extraction) of the analysis pipeline for Kotlin and Java
// source files, per spec §4.2. Both parsers share one TreeSitterParser,
// adapted from the teacher's multi-language wrapper down to the two JVM
// grammars this analyzer understands.
package sourceparse

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/kotlin"
)

// Language identifies which grammar to use.
type Language string

const (
	LangKotlin Language = "kotlin"
	LangJava   Language = "java"
)

// TreeSitterParser wraps tree-sitter parsers for Kotlin and Java. Tree-sitter
// parsers are not safe for concurrent use, so each worker in the parser pool
// owns its own instance (see pool.go).
type TreeSitterParser struct {
	kotlinParser *sitter.Parser
	javaParser   *sitter.Parser
	kotlinLang   *sitter.Language
	javaLang     *sitter.Language
}

// NewTreeSitterParser initializes parsers for both supported languages.
func NewTreeSitterParser() (*TreeSitterParser, error) {
	tsp := &TreeSitterParser{}

	tsp.kotlinLang = kotlin.GetLanguage()
	tsp.kotlinParser = sitter.NewParser()
	tsp.kotlinParser.SetLanguage(tsp.kotlinLang)

	tsp.javaLang = java.GetLanguage()
	tsp.javaParser = sitter.NewParser()
	tsp.javaParser.SetLanguage(tsp.javaLang)

	return tsp, nil
}

func (p *TreeSitterParser) parserFor(lang Language) *sitter.Parser {
	switch lang {
	case LangKotlin:
		return p.kotlinParser
	case LangJava:
		return p.javaParser
	default:
		return nil
	}
}

func (p *TreeSitterParser) langFor(lang Language) *sitter.Language {
	switch lang {
	case LangKotlin:
		return p.kotlinLang
	case LangJava:
		return p.javaLang
	default:
		return nil
	}
}

// Parse parses content and returns the root node. Per spec §4.2, parsers are
// error-tolerant: a syntax error is returned alongside a (possibly partial)
// root node, never in place of one, so callers can still walk whatever the
// incremental tree-sitter parse recovered.
func (p *TreeSitterParser) Parse(content []byte, lang Language) (*sitter.Node, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("empty content provided")
	}

	parser := p.parserFor(lang)
	if parser == nil {
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}

	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse content: %w", err)
	}
	if tree == nil {
		return nil, fmt.Errorf("parser returned nil tree")
	}

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("tree has no root node")
	}

	if root.HasError() {
		return root, fmt.Errorf("parse tree contains errors")
	}
	return root, nil
}

// Query executes a tree-sitter query against node and returns all matches.
func (p *TreeSitterParser) Query(node *sitter.Node, queryString string, lang Language) ([]*sitter.QueryMatch, error) {
	if node == nil {
		return nil, fmt.Errorf("node is nil")
	}
	language := p.langFor(lang)
	if language == nil {
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}

	query, err := sitter.NewQuery([]byte(queryString), language)
	if err != nil {
		return nil, fmt.Errorf("failed to create query: %w", err)
	}
	defer query.Close()

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(query, node)

	var matches []*sitter.QueryMatch
	for {
		m, ok := cursor.NextMatch()
		if !ok {
			break
		}
		matches = append(matches, m)
	}
	return matches, nil
}
