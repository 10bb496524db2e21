// Package match provides fuzzy name matching used to suggest the key a
// pipeline author most likely meant when they wrote an unknown one
// (e.g. "displayname" or "display_name" for "displayName").
package match
