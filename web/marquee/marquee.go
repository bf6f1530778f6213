// Package marqueeweb embeds the static browse page served at "/".
package marqueeweb

import "embed"

//go:embed index.html app.js style.css
var FS embed.FS
