package less

// statement is one node of a parsed block.
type statement interface {
	position() pos
}

type varDecl struct {
	at    pos
	name  string // without the leading @
	value []token
}

type decl struct {
	at       pos
	property []token
	value    []token
}

type ruleset struct {
	at       pos
	selector []token
	body     []statement
}

type mixinDef struct {
	at   pos
	name string // ".name"
	body []statement
}

type mixinCall struct {
	at        pos
	name      string
	important bool
}

type importRule struct {
	at      pos
	path    []token // the string, url or interpolated path tokens
	options []string
	raw     []token
}

type atRule struct {
	at      pos
	name    string // without the leading @
	prelude []token
	body    []statement
	block   bool
}

func (s *varDecl) position() pos    { return s.at }
func (s *decl) position() pos       { return s.at }
func (s *ruleset) position() pos    { return s.at }
func (s *mixinDef) position() pos   { return s.at }
func (s *mixinCall) position() pos  { return s.at }
func (s *importRule) position() pos { return s.at }
func (s *atRule) position() pos     { return s.at }

// conditional at-rules bubble their parent selector into their body.
var conditionalAtRules = map[string]bool{
	"media":     true,
	"supports":  true,
	"document":  true,
	"container": true,
	"layer":     true,
}
