package blocks

import "strings"

// PlainTextLanguage is the tag used for unknown or missing fence languages.
const PlainTextLanguage = "plain text"

var languageAliases = map[string]string{
	"js":    "javascript",
	"py":    "python",
	"ts":    "typescript",
	"shell": "bash",
	"sh":    "bash",
	"yml":   "yaml",
	"text":  PlainTextLanguage,
}

// supportedLanguages is the set of code block languages Notion accepts.
var supportedLanguages = map[string]struct{}{
	"abap": {}, "agda": {}, "arduino": {}, "assembly": {}, "bash": {}, "basic": {}, "bnf": {},
	"c": {}, "c#": {}, "c++": {}, "clojure": {}, "coffeescript": {}, "coq": {}, "css": {},
	"dart": {}, "dhall": {}, "diff": {}, "docker": {}, "ebnf": {}, "elixir": {}, "elm": {},
	"erlang": {}, "f#": {}, "flow": {}, "fortran": {}, "gherkin": {}, "glsl": {}, "go": {},
	"graphql": {}, "groovy": {}, "haskell": {}, "hcl": {}, "html": {}, "idris": {}, "java": {},
	"javascript": {}, "json": {}, "julia": {}, "kotlin": {}, "latex": {}, "less": {}, "lisp": {},
	"livescript": {}, "llvm ir": {}, "lua": {}, "makefile": {}, "markdown": {}, "markup": {},
	"matlab": {}, "mathematica": {}, "mermaid": {}, "nix": {}, "notion formula": {},
	"objective-c": {}, "ocaml": {}, "pascal": {}, "perl": {}, "php": {}, "plain text": {},
	"powershell": {}, "prolog": {}, "protobuf": {}, "purescript": {}, "python": {}, "r": {},
	"racket": {}, "reason": {}, "ruby": {}, "rust": {}, "sass": {}, "scala": {}, "scheme": {},
	"scss": {}, "shell": {}, "smalltalk": {}, "solidity": {}, "sql": {}, "swift": {}, "toml": {},
	"typescript": {}, "vb.net": {}, "verilog": {}, "vhdl": {}, "visual basic": {},
	"webassembly": {}, "xml": {}, "yaml": {},
}

// NormalizeLanguage maps a fence info token to a supported language tag.
func NormalizeLanguage(token string) string {
	lang := strings.ToLower(strings.TrimSpace(token))
	if lang == "" {
		return PlainTextLanguage
	}
	if alias, ok := languageAliases[lang]; ok {
		lang = alias
	}
	if _, ok := supportedLanguages[lang]; !ok {
		return PlainTextLanguage
	}
	return lang
}
