// Package production models the production-information record attached to a
// screenplay: the people and house behind a shoot. Call sheets and daily
// production reports autofill from this record, so field names here line up
// with the document keys those reducers target.
package production
