// Package schemas embeds the JSON Schemas for comparison request documents
// and .pairtest.yaml project configuration.
package schemas

import _ "embed"

//go:embed request.schema.json
var RequestSchemaJSON string

//go:embed config.schema.json
var ConfigSchemaJSON string
