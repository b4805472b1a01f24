// Package assets supplies the stylesheets and the HTML template the document
// is assembled from.
//
// Built-in assets are embedded in the binary. A custom directory laid out as
//
//	<dir>/styles/<name>.css
//	<dir>/templates/<name>.html
//
// may override any of them; AssetResolver consults it first and falls back
// to the built-in copy only when the custom directory lacks the asset.
// Names are bare identifiers, and files reached through symlinks must stay
// inside the custom directory.
package assets
