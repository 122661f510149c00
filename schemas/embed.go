// Package schemas holds the JSON Schemas for documents exchanged with the sync engine.
package schemas

import _ "embed"

// SwissData is the schema for chart comparison input.
//
//go:embed swiss_data.schema.json
var SwissData []byte

// ConnectionProfile is the schema for the generated profile.
//
//go:embed connection_profile.schema.json
var ConnectionProfile []byte
