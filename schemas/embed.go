// Package schemas embeds the JSON Schema documents shipped with the editor.
package schemas

import _ "embed"

// EditScript is the schema for scripted edit sessions.
//
//go:embed edit_script.schema.json
var EditScript []byte
