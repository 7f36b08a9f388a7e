// Copyright © 2024 The ELPS authors

// Package docs embeds the coding style guide for use by the CLI.
package docs

import _ "embed"

//go:embed style.md
var StyleGuide string
