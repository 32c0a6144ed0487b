// Package jsondom implements a JSON codec built around an immutable,
// queryable value tree rather than reflection-based data binding.
//
// The three pieces fit together as follows:
//
//   - Value is a closed variant type for one JSON datum. Numbers are
//     stored losslessly as their decimal lexeme, with checked narrowing
//     to the fixed-width integer and float types and to
//     arbitrary-precision integers and decimals.
//
//   - Writer is a builder-style emitter. A stack of grammar states makes
//     syntactically invalid output impossible: an illegal call fails
//     immediately with a *StateError instead of producing bad text.
//     Output is ASCII-only; everything beyond 7-bit ASCII is escaped.
//
//   - Parser converts JSON text into Value trees by recursive descent,
//     enforcing RFC 8259 / ECMA-404 exactly and reporting the offset,
//     line, and column of any violation.
//
// Caller-defined types join serialization through the single-method
// Marshaler interface, rendering themselves onto a Writer;
// deserialization is by convention via constructors accepting a Value.
//
// Writer and Parser instances hold mutable cursors and are not safe for
// concurrent use; Value trees are immutable and freely shareable.
package jsondom
