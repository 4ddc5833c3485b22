package gorules

import "github.com/quasilyte/go-ruleguard/dsl"

func smells(m dsl.Matcher) {
	// Two guards in a row with the same return can be merged with ||.
	m.Match(`if $c1 { return $ret }; if $c2 { return $ret }`).
		Report(`two consecutive guards return the same value; consider merging conditions with ||`).
		Suggest(`if $c1 || $c2 { return $ret }`)

	m.Match(`if $c1 { continue }; if $c2 { continue }`).
		Report(`two consecutive continues; consider merging conditions with ||`).
		Suggest(`if $c1 || $c2 { continue }`)

	m.Match(`for $*_ { for $*_ { $*_ } }`).
		Report(`nested for-loop; consider extracting inner loop logic or reducing algorithmic complexity`)

	m.Match(`errors.New(fmt.Sprintf($*args))`).
		Report(`use fmt.Errorf instead of errors.New(fmt.Sprintf(...))`).
		Suggest(`fmt.Errorf($args)`)
}

func logging(m dsl.Matcher) {
	// Only cmd/ may print; everything else logs through slog.
	m.Match(`fmt.Println($*_)`, `fmt.Printf($*_)`, `fmt.Print($*_)`).
		Where(!m.File().PkgPath.Matches(`/cmd/`)).
		Report(`print through log/slog outside cmd/`)

	m.Match(`log.Printf($*_)`, `log.Println($*_)`, `log.Print($*_)`).
		Report(`use log/slog instead of the standard log package`)
}

func llmClients(m dsl.Matcher) {
	// Providers own an http.Client with a timeout; the default client has none.
	m.Match(`http.DefaultClient`, `http.Get($*_)`, `http.Post($*_)`).
		Where(m.File().PkgPath.Matches(`/internal/infra/llm`)).
		Report(`model calls must use the provider's http.Client so LLM_TIMEOUT applies`)
}

func prompts(m dsl.Matcher) {
	// The prompt template lives in one place.
	m.Match(`fmt.Sprintf("Convert %s %s to %s.", $*_)`).
		Where(!m.File().PkgPath.Matches(`/internal/domain/conversion$`)).
		Report(`build prompts with conversion.BuildPrompt`)
}
