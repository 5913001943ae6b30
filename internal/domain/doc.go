// Package domain contains the slide-deck document model: slides, the tagged
// union of element variants placed on them, page backgrounds, the theme that
// seeds newly created entities, and the Document aggregate whose invariants
// every mutation must preserve. It is independent of any persistence or
// delivery mechanism.
package domain
