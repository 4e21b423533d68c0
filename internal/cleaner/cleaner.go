// Package cleaner rewrites voice-transcribed developer speech: filler
// words go away, spoken symbols and casing commands become their
// written forms, and well-known code and tech terms get their proper
// capitalization.
package cleaner

import (
	"regexp"
	"strings"
	"unicode"
)

var singleFillers = map[string]bool{
	"um": true, "uh": true, "er": true, "ah": true, "hmm": true, "huh": true,
}

var multiWordFillers = map[string]bool{
	"you know": true, "i mean": true,
}

// likeKeepers are words after which "like" is probably intentional.
var likeKeepers = map[string]bool{
	"looks": true, "feels": true, "works": true, "sounds": true,
	"seems": true, "acts": true, "is": true, "was": true,
}

var codeKeywords = map[string]string{
	"none": "None", "true": "True", "false": "False",
	"def": "def", "class": "class", "import": "import",
	"return": "return", "self": "self", "async": "async",
	"await": "await", "yield": "yield", "lambda": "lambda",
	"const": "const", "let": "let", "var": "var",
	"function": "function", "null": "null", "undefined": "undefined",
}

var techTerms = map[string]string{
	"api": "API", "apis": "APIs", "json": "JSON", "rest": "REST",
	"http": "HTTP", "https": "HTTPS", "html": "HTML", "css": "CSS",
	"sql": "SQL", "url": "URL", "urls": "URLs", "cli": "CLI",
	"ssh": "SSH", "tcp": "TCP", "udp": "UDP", "dns": "DNS",
	"gpu": "GPU", "cpu": "CPU", "ram": "RAM", "ssd": "SSD",
	"oauth": "OAuth", "jwt": "JWT", "yaml": "YAML", "toml": "TOML",
	"npm": "npm", "pip": "pip", "git": "git", "docker": "Docker",
	"kubernetes": "Kubernetes", "redis": "Redis", "postgres": "Postgres",
	"python": "Python", "javascript": "JavaScript", "typescript": "TypeScript",
	"golang": "Go", "numpy": "NumPy", "pandas": "pandas",
	"pytorch": "PyTorch", "tensorflow": "TensorFlow",
	"fastapi": "FastAPI", "flask": "Flask", "django": "Django",
	"react": "React", "nextjs": "Next.js",
	"github": "GitHub", "gitlab": "GitLab", "vscode": "VS Code",
	"openai": "OpenAI", "anthropic": "Anthropic", "claude": "Claude",
	"whisper": "Whisper",
}

// formatCommand pairs a spoken phrase with the symbol it produces.
// Ordered so longer phrases win over their prefixes ("fat arrow" before
// "arrow", "new line" before "newline").
type formatCommand struct {
	spoken string
	symbol string
}

var formatCommands = []formatCommand{
	{"new line", "\n"},
	{"newline", "\n"},
	{"period", "."},
	{"comma", ","},
	{"colon", ":"},
	{"semicolon", ";"},
	{"open paren", "("},
	{"close paren", ")"},
	{"open bracket", "["},
	{"close bracket", "]"},
	{"open brace", "{"},
	{"close brace", "}"},
	{"equals", "="},
	{"fat arrow", "=>"},
	{"arrow", "->"},
	{"hash", "#"},
	{"at sign", "@"},
	{"dollar sign", "$"},
	{"ampersand", "&"},
	{"pipe", "|"},
	{"backslash", "\\"},
	{"forward slash", "/"},
}

type casingCommand struct {
	spoken string
	mode   string
}

var casingCommands = []casingCommand{
	{"snake case", "snake"},
	{"camel case", "camel"},
	{"pascal case", "pascal"},
	{"kebab case", "kebab"},
	{"all caps", "upper"},
	{"upper case", "upper"},
}

var multiSpace = regexp.MustCompile(` {2,}`)

// Clean applies all transformations to transcribed text. Blank input
// yields an empty string.
func Clean(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	text = stripFillers(text)
	text = applyFormatCommands(text)
	text = applyCasingCommands(text)
	text = fixTerms(text, codeKeywords)
	text = fixTerms(text, techTerms)
	text = normalizeWhitespace(text)
	return capitalizeFirst(text)
}

func bareWord(w string) string {
	return strings.Trim(strings.ToLower(w), ".,!?;:")
}

func stripFillers(text string) string {
	words := strings.Fields(text)
	result := make([]string, 0, len(words))
	for i, word := range words {
		w := bareWord(word)
		// First or second half of a multi-word filler.
		if i < len(words)-1 && multiWordFillers[w+" "+bareWord(words[i+1])] {
			continue
		}
		if i > 0 && multiWordFillers[bareWord(words[i-1])+" "+w] {
			continue
		}
		if singleFillers[w] {
			continue
		}
		if w == "like" {
			prev := ""
			if i > 0 {
				prev = bareWord(words[i-1])
			}
			if !likeKeepers[prev] {
				continue
			}
		}
		result = append(result, word)
	}
	return strings.Join(result, " ")
}

func applyFormatCommands(text string) string {
	for _, fc := range formatCommands {
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(fc.spoken))
		text = re.ReplaceAllLiteralString(text, fc.symbol)
	}
	return text
}

// applyCasingCommands handles spoken commands like "snake case my
// variable name", re-casing the words that follow up to the next
// period, comma or end of text.
func applyCasingCommands(text string) string {
	for _, cc := range casingCommands {
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(cc.spoken) + `\s+(.+?)(?:\.|,|$)`)
		loc := re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		words := strings.Fields(text[loc[2]:loc[3]])
		text = text[:loc[0]] + recase(words, cc.mode) + text[loc[1]:]
	}
	return text
}

func recase(words []string, mode string) string {
	if len(words) == 0 {
		return ""
	}
	switch mode {
	case "snake":
		return strings.ToLower(strings.Join(words, "_"))
	case "kebab":
		return strings.ToLower(strings.Join(words, "-"))
	case "upper":
		return strings.ToUpper(strings.Join(words, "_"))
	case "camel":
		parts := make([]string, len(words))
		parts[0] = strings.ToLower(words[0])
		for i, w := range words[1:] {
			parts[i+1] = titleWord(w)
		}
		return strings.Join(parts, "")
	case "pascal":
		parts := make([]string, len(words))
		for i, w := range words {
			parts[i] = titleWord(w)
		}
		return strings.Join(parts, "")
	}
	return strings.Join(words, " ")
}

func titleWord(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
}

// fixTerms corrects the capitalization of known terms. Words are split
// on single spaces so embedded newlines survive.
func fixTerms(text string, terms map[string]string) string {
	words := strings.Split(text, " ")
	for i, word := range words {
		stripped := strings.Trim(word, ".,!?;:()[]{}\"'\n\t")
		if stripped == "" {
			continue
		}
		if correct, ok := terms[strings.ToLower(stripped)]; ok {
			words[i] = strings.Replace(word, stripped, correct, 1)
		}
	}
	return strings.Join(words, " ")
}

func normalizeWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(multiSpace.ReplaceAllString(line, " "))
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}

func capitalizeFirst(text string) string {
	if text == "" {
		return text
	}
	r := []rune(text)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
