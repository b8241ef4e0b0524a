// Package splitter divides script text into statements for bundle mode.
//
// A statement is the shortest run of text ending in a semicolon: the text is
// scanned left to right for the pattern [^;]*; and every match is one
// statement, terminator included. Concatenating the statements reproduces the
// text up to and including its last semicolon.
//
// # Limitations
//
// The scan is deliberately naive. It knows nothing about string literals,
// quoted identifiers, comments or dollar-quoted function bodies, so a semicolon
// inside any of them ends the statement early:
//
//	INSERT INTO t VALUES ('a;b');
//
// splits into "INSERT INTO t VALUES ('a;" and "b');". Scripts containing such
// constructs should be run in multiline mode, which sends the file unsplit.
//
// Text after the last semicolon is not a statement and is dropped. Trailing
// returns that text so callers can report it.
package splitter
