//go:build !(js && wasm)

package glbuild

// DefaultProfile is the profile of [NewDefaultProgrammer] on desktop targets.
const DefaultProfile = ProfileDesktop
