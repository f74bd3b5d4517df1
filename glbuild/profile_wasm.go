//go:build js && wasm

package glbuild

// DefaultProfile is the profile of [NewDefaultProgrammer] on web targets.
const DefaultProfile = ProfileES
