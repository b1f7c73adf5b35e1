// Package figreact turns generated React component trees into smaller,
// de-duplicated modules. It recognizes structurally repeated JSX fragments
// and hoists them into named components that are invoked by reference.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., treesitter/, gemini/, sqlite/);
// the extraction engine itself lives in dedupe/.
package figreact
