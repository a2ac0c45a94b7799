// Package shrinker parses ProGuard/R8 usage.txt output — the file a
// shrinker emits listing every class/member it stripped — into a lookup
// the aggregator uses to raise a finding's confidence to Confirmed (§4.8).
package shrinker

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Usage is the parsed contents of one usage.txt file: a lookup from a
// fully-qualified class name, or (class, method-name, arity) for methods,
// to "this member was removed by the shrinker".
type Usage struct {
	classes map[string]bool
	methods map[methodKey]bool
}

type methodKey struct {
	class  string
	method string
	arity  int
}

// NewUsage creates an empty Usage set.
func NewUsage() *Usage {
	return &Usage{classes: make(map[string]bool), methods: make(map[methodKey]bool)}
}

// HasClass reports whether fqName was listed as a removed class.
func (u *Usage) HasClass(fqName string) bool { return u.classes[fqName] }

// HasMethod reports whether a method on class, matching by simple name and
// erased parameter-type arity, was listed as removed (§4.8: "matching is by
// FQN plus (for methods) erased parameter-type arity").
func (u *Usage) HasMethod(class, method string, arity int) bool {
	return u.methods[methodKey{class: class, method: method, arity: arity}]
}

// ParseUsage parses a ProGuard/R8 usage.txt file. The format lists a class
// FQN on an unindented line, followed by indented lines for each removed
// member of that class:
//
//	com.example.Orphan
//	    void doThing()
//	    int unusedField
//
// A class line with no member lines means the whole class was removed.
func ParseUsage(path string) (*Usage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening usage file %s: %w", path, err)
	}
	defer f.Close()

	usage := NewUsage()
	var currentClass string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		raw := scanner.Text()
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}

		if !strings.HasPrefix(raw, " ") && !strings.HasPrefix(raw, "\t") {
			currentClass = strings.TrimSuffix(trimmed, ":")
			usage.classes[currentClass] = true
			continue
		}

		if currentClass == "" {
			continue
		}
		// A member line means only part of the class was removed.
		delete(usage.classes, currentClass)
		method, arity, ok := parseMemberLine(trimmed)
		if ok {
			usage.methods[methodKey{class: currentClass, method: method, arity: arity}] = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading usage file %s: %w", path, err)
	}
	return usage, nil
}

// parseMemberLine extracts a method's simple name and parameter arity from
// a usage.txt member line such as "void doThing(int,java.lang.String)". A
// field line (no parens) is not a method and returns ok=false.
func parseMemberLine(line string) (name string, arity int, ok bool) {
	open := strings.IndexByte(line, '(')
	close := strings.IndexByte(line, ')')
	if open == -1 || close == -1 || close < open {
		return "", 0, false
	}

	before := strings.TrimSpace(line[:open])
	fields := strings.Fields(before)
	if len(fields) == 0 {
		return "", 0, false
	}
	name = fields[len(fields)-1]

	params := strings.TrimSpace(line[open+1 : close])
	if params == "" {
		return name, 0, true
	}
	return name, len(strings.Split(params, ",")), true
}
