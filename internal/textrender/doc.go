// Package textrender draws anti-aliased text into a rectangle on a surface.
//
// Fonts are resolved by name from the Go font family bundled with
// golang.org/x/image ("Go Regular", "Go Bold", "Go Italic", "Go Mono", ...)
// or loaded from a .ttf/.otf path. Unknown names fall back to Go Regular so a
// missing font never fails an overlay.
//
// Text is word-wrapped to the rectangle's width, aligned horizontally within
// it, and clipped to it. A line that starts below the rectangle is not drawn;
// one that only partly fits is cut off at the bottom edge.
package textrender
