// Package content ships the blog's articles inside the binary.
package content

import "embed"

// Root is the directory within FS that holds the articles and site.yml.
const Root = "blog"

//go:embed blog
var FS embed.FS
