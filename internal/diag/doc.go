// Package diag defines the registry of diagnostic notes the analyzer can emit.
//
// # Purpose
//
//   - Provide an immutable, process-wide table of note definitions keyed by
//     Code, built once and safe for concurrent reads.
//   - Render note templates for a language tag, substituting instance
//     variables into %(name)s placeholders.
//
// # Scope
//
// Package diag does not decide which notes to raise and performs no IO.
// Note instances attached to transactions live in internal/txn; rendering
// into archives lives in internal/harfmt.
//
// # Data model
//
// Definition is the central record. It contains:
//
//   - Code – compact numeric identifier with a stable symbolic name
//     (URI_TOO_LONG) and a compact id (GEN1001), see codes.go.
//   - Category – functional area: General, Caching, Connection, Tests.
//   - Severity – outcome polarity: good, bad, info. It is not a log level.
//   - Summary – language tag to short plain-text template.
//   - Text – language tag to long template; may contain inline HTML.
//
// # Templates
//
// Both template forms use %(name)s placeholders and %% for a literal percent
// sign. Rendering fails closed: a placeholder without a matching variable, an
// unsupported conversion or a stray percent sign yields a *RenderError and no
// text at all.
//
// # Languages
//
// Language tags are canonicalized with golang.org/x/text/language before the
// lookup, so "EN" and "en" address the same template. There is no fallback
// chain: a tag the definition does not carry yields a *TranslationError.
package diag
