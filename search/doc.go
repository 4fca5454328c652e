// Package search turns free text, typed one character at a time, into ranked
// candidate expressions for an autocomplete palette.
//
// # Overview
//
// Grammars implement [Parser]. A parser never sees more than the text it is
// handed and never keeps state of its own: everything needed to continue a
// match is stored in the [PendingParse] it returns.
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│ search text │────▶│   Session   │────▶│ Candidates  │
//	└─────────────┘     └─────────────┘     └─────────────┘
//	                           │
//	                           ▼
//	                    ┌─────────────┐     ┌─────────────┐
//	                    │  Generation │◀───▶│   Parsers   │
//	                    │ (pending)   │     │ (registry)  │
//	                    └─────────────┘     └─────────────┘
//
// # Generations
//
// The set of pending parses alive after a keystroke is a generation. When the
// new text extends the old one, every pending parse that may continue is
// resumed with just the appended characters; otherwise all parsers start over.
// Both paths produce the same candidates.
//
// # Delegation
//
// A parser can hand a sub-range of the input to other parsers with
// [Context.Delegate]. The delegate's progress is wrapped in a placeholder
// pending parse so it survives across keystrokes, and the caller's callback
// runs each time the delegate produces a candidate. A parser never re-enters
// itself at an offset it is already parsing.
package search
