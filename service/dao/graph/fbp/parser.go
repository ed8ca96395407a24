// Package fbp parses the textual FBP dialect into a graph description.
//
//	'5' -> A add(Add)
//	'3' -> B add
//	add OUT -> IN print(WriteStdOut)  # comment
//
// Statements are separated by new lines or commas. A statement declares a
// process with name(Component), injects a quoted initial packet, or links an
// output port to an input port; links may be chained. Port names are
// lowercased. INPORT= and OUTPORT= export lines are ignored.
package fbp

import (
	"fmt"
	"strings"

	"github.com/viant/fbp/model/graph"
	"github.com/viant/parsly"
)

type parser struct {
	graph *graph.Graph
	line  int
}

// Parse parses dialect source into a graph named name
func Parse(name string, input []byte) (*graph.Graph, error) {
	p := &parser{graph: graph.New(name)}
	for i, line := range strings.Split(string(input), "\n") {
		p.line = i + 1
		line = strings.TrimSpace(stripComment(line))
		if line == "" || strings.HasPrefix(line, "INPORT=") || strings.HasPrefix(line, "OUTPORT=") {
			continue
		}
		for _, statement := range split(line) {
			if strings.TrimSpace(statement) == "" {
				continue
			}
			if err := p.parseStatement([]byte(statement)); err != nil {
				return nil, fmt.Errorf("line %d: %w", p.line, err)
			}
		}
	}
	for _, processName := range p.graph.ProcessNames() {
		if p.graph.Processes[processName].Component == "" {
			return nil, fmt.Errorf("process %q has no component", processName)
		}
	}
	return p.graph, nil
}

func (p *parser) parseStatement(input []byte) error {
	cursor := parsly.NewCursor("", input, 0)
	skipWhitespace(cursor)
	matched := cursor.MatchAny(packetToken, identifierToken)
	var srcProcess, srcPort string
	var data interface{}
	switch matched.Code {
	case packetToken.Code:
		data = unquote(matched.Text(cursor))
	case identifierToken.Code:
		name := matched.Text(cursor)
		if err := p.matchComponent(cursor, name); err != nil {
			return err
		}
		if skipWhitespace(cursor); atEnd(cursor) {
			return nil
		}
		port, err := matchIdentifier(cursor)
		if err != nil {
			return err
		}
		srcProcess, srcPort = name, strings.ToLower(port)
	default:
		return cursor.NewError(packetToken, identifierToken)
	}

	for {
		skipWhitespace(cursor)
		if cursor.MatchOne(arrowToken).Code != arrowToken.Code {
			return cursor.NewError(arrowToken)
		}
		tgtPort, err := matchIdentifier(cursor)
		if err != nil {
			return err
		}
		tgtProcess, err := matchIdentifier(cursor)
		if err != nil {
			return err
		}
		if err = p.matchComponent(cursor, tgtProcess); err != nil {
			return err
		}
		tgtPort = strings.ToLower(tgtPort)
		if data != nil {
			p.graph.AddInitial(data, tgtProcess, tgtPort)
			data = nil
		} else {
			p.graph.Connect(srcProcess, srcPort, tgtProcess, tgtPort)
		}

		if skipWhitespace(cursor); atEnd(cursor) {
			return nil
		}
		port, err := matchIdentifier(cursor)
		if err != nil {
			return err
		}
		srcProcess, srcPort = tgtProcess, strings.ToLower(port)
	}
}

// matchComponent consumes an optional (Component) suffix and declares the process
func (p *parser) matchComponent(cursor *parsly.Cursor, name string) error {
	component := ""
	if cursor.MatchOne(openParenToken).Code == openParenToken.Code {
		matched := cursor.MatchOne(componentToken)
		if matched.Code != componentToken.Code {
			return cursor.NewError(componentToken)
		}
		component = strings.TrimSpace(matched.Text(cursor))
		if cursor.MatchOne(closeParenToken).Code != closeParenToken.Code {
			return cursor.NewError(closeParenToken)
		}
	}
	process, ok := p.graph.Processes[name]
	switch {
	case !ok:
		p.graph.Processes[name] = &graph.Process{Component: component}
	case component == "":
	case process.Component == "":
		process.Component = component
	case process.Component != component:
		return fmt.Errorf("process %q redeclared as %s, was %s", name, component, process.Component)
	}
	return nil
}

func matchIdentifier(cursor *parsly.Cursor) (string, error) {
	skipWhitespace(cursor)
	matched := cursor.MatchOne(identifierToken)
	if matched.Code != identifierToken.Code {
		return "", cursor.NewError(identifierToken)
	}
	return matched.Text(cursor), nil
}

func skipWhitespace(cursor *parsly.Cursor) {
	cursor.MatchOne(whitespaceToken)
}

func atEnd(cursor *parsly.Cursor) bool {
	return cursor.Pos >= cursor.InputSize
}

func unquote(text string) string {
	text = text[1 : len(text)-1]
	return strings.ReplaceAll(text, `\'`, `'`)
}

// stripComment removes a # comment that is not inside a quoted packet
func stripComment(line string) string {
	quoted := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			if quoted {
				i++
			}
		case '\'':
			quoted = !quoted
		case '#':
			if !quoted {
				return line[:i]
			}
		}
	}
	return line
}

// split separates comma delimited statements outside quoted packets
func split(line string) []string {
	var result []string
	quoted := false
	start := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			if quoted {
				i++
			}
		case '\'':
			quoted = !quoted
		case ',':
			if !quoted {
				result = append(result, line[start:i])
				start = i + 1
			}
		}
	}
	return append(result, line[start:])
}
