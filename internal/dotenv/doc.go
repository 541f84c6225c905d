// Package dotenv parses env-style files into lines that render back to
// exactly the bytes they came from.
//
// Each physical line becomes an immutable Line: blank, comment, assignment,
// or invalid. An assignment records everything around its value (indent,
// optional export keyword, key, spacing, quote character, trailing comment)
// so that only the value changes when a new one is substituted:
//
//	line := dotenv.ParseLine(`  DB_PASS = "secret"   # note`)
//	line.Value                        // secret
//	line.WithValue("ENC[v1]:...").Render()
//	// `  DB_PASS = "ENC[v1]:..."   # note`
//
// Escape sequences inside quoted values are not interpreted; the semantic
// value is the text between the quotes, so it can be written back byte for
// byte. Interpreted applies double-quote escapes for readers that need the
// shell's view of a value. Place writes a new value only when the line can
// hold it, switching quote style if needed. Multi-line quoted values are not
// supported and are reported as invalid lines, which are passed through
// untouched.
package dotenv
