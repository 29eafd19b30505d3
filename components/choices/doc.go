// Package choices serves the option list of a select field over HTTP, so
// large choice sets can be searched from the client instead of being
// rendered inline.
//
// The handler responds to GET and HEAD requests and supports query and
// limit parameters to filter results. The backing data is the schema.Choice
// list the caller wires in.
package choices
