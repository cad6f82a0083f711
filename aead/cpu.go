package aead

import "golang.org/x/sys/cpu"

// hasAESHardware reports whether the running CPU exposes AES instructions,
// matching the "AES available on x86_64/aarch64" gate AEGIS-128L requires
// for an acceptable software-path performance profile.
func hasAESHardware() bool {
	return cpu.X86.HasAES || cpu.ARM64.HasAES
}
