package notation

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer splits a command on colons. Everything between two colons is one argument, spaces included,
// so city names like "New York" need no quoting.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Colon", Pattern: `:`},
	{Name: "Text", Pattern: `[^:]+`},
})

// Command is the raw form of every action and event string: verb(:arg)*
type Command struct {
	Verb string   `parser:"@Text"`
	Args []string `parser:"( Colon @Text )*"`
}

var parser = participle.MustBuild[Command](
	participle.Lexer(Lexer),
)

// ParseCommand splits a string into its verb and arguments, trimming surrounding spaces.
func ParseCommand(s string) (*Command, error) {
	cmd, err := parser.ParseString("", s)
	if err != nil {
		return nil, err
	}
	cmd.Verb = normalize(cmd.Verb)
	for i, arg := range cmd.Args {
		cmd.Args[i] = trim(arg)
	}
	return cmd, nil
}
