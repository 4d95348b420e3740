// Package sheet holds the document primitives shared by the call sheet and
// daily production report stores.
//
// A Document is the same map[string]any tree internal/fieldpath operates on:
// flat string fields plus named row tables ([]any of map[string]any rows).
// Helpers here follow one rule: they never mutate a document in place. Row
// and autofill operations copy the root and the touched table, leaving every
// other branch shared with the input, so reducers built on them keep the
// structural-sharing guarantees their tests assert.
package sheet
