package aead

const aegisBlockSize = 32 // two 16-byte AES blocks processed per step

var aegisC0 = [16]byte{0x00, 0x01, 0x01, 0x02, 0x03, 0x05, 0x08, 0x0d, 0x15, 0x22, 0x37, 0x59, 0x90, 0xe9, 0x79, 0x62}
var aegisC1 = [16]byte{0xdb, 0x3d, 0x18, 0x55, 0x6d, 0xc2, 0x2f, 0xf1, 0x20, 0x01, 0x13, 0x14, 0x27, 0x3b, 0x52, 0x8d}

// aegis128LState holds the eight 128-bit lanes of the AEGIS-128L sponge.
type aegis128LState struct {
	s [8][16]byte
}

func xorBlock(dst, a, b *[16]byte) {
	for i := range dst {
		dst[i] = a[i] ^ b[i]
	}
}

func andBlock(dst, a, b *[16]byte) {
	for i := range dst {
		dst[i] = a[i] & b[i]
	}
}

// update advances the state by one step given the two 16-byte message
// lanes for this step (message, nonce||key during init, or the finalize
// tweak during finalization).
func (st *aegis128LState) update(m0, m1 *[16]byte) {
	var s0m0, s4m1 [16]byte
	xorBlock(&s0m0, &st.s[0], m0)
	xorBlock(&s4m1, &st.s[4], m1)

	// next[i] = AESRound(s[i-1 mod 8], s[i]), with the message mixed into
	// the XOR-only operand for lanes 0 and 4: the state argument is always
	// the *previous* lane (the one the round transform is applied to), the
	// round-key argument is always the *current* lane (XOR'd in untransformed).
	var next [8][16]byte

	t0 := st.s[7]
	aesEncryptBlock(&t0, &s0m0)
	next[0] = t0

	t1 := st.s[0]
	aesEncryptBlock(&t1, &st.s[1])
	next[1] = t1

	t2 := st.s[1]
	aesEncryptBlock(&t2, &st.s[2])
	next[2] = t2

	t3 := st.s[2]
	aesEncryptBlock(&t3, &st.s[3])
	next[3] = t3

	t4 := st.s[3]
	aesEncryptBlock(&t4, &s4m1)
	next[4] = t4

	t5 := st.s[4]
	aesEncryptBlock(&t5, &st.s[5])
	next[5] = t5

	t6 := st.s[5]
	aesEncryptBlock(&t6, &st.s[6])
	next[6] = t6

	t7 := st.s[6]
	aesEncryptBlock(&t7, &st.s[7])
	next[7] = t7

	st.s = next
}

func (st *aegis128LState) init(key, nonce *[16]byte) {
	xorBlock(&st.s[0], key, nonce)
	st.s[1] = aegisC1
	st.s[2] = aegisC0
	st.s[3] = aegisC1
	xorBlock(&st.s[4], key, nonce)
	xorBlock(&st.s[5], key, &aegisC0)
	xorBlock(&st.s[6], key, &aegisC1)
	xorBlock(&st.s[7], key, &aegisC0)

	for i := 0; i < 10; i++ {
		st.update(nonce, key)
	}
}

func (st *aegis128LState) absorb(m0, m1 *[16]byte) {
	st.update(m0, m1)
}

func (st *aegis128LState) zBlocks() (z0, z1 [16]byte) {
	var s2s3 [16]byte
	andBlock(&s2s3, &st.s[2], &st.s[3])
	xorBlock(&z0, &st.s[6], &st.s[1])
	xorBlock(&z0, &z0, &s2s3)

	var s6s7 [16]byte
	andBlock(&s6s7, &st.s[6], &st.s[7])
	xorBlock(&z1, &st.s[2], &st.s[5])
	xorBlock(&z1, &z1, &s6s7)
	return
}

func (st *aegis128LState) encryptBlock(m0, m1 *[16]byte) (c0, c1 [16]byte) {
	z0, z1 := st.zBlocks()
	xorBlock(&c0, m0, &z0)
	xorBlock(&c1, m1, &z1)
	st.update(m0, m1)
	return
}

func (st *aegis128LState) decryptBlock(c0, c1 *[16]byte) (m0, m1 [16]byte) {
	z0, z1 := st.zBlocks()
	xorBlock(&m0, c0, &z0)
	xorBlock(&m1, c1, &z1)
	st.update(&m0, &m1)
	return
}

func (st *aegis128LState) finalize(adBits, msgBits uint64) [16]byte {
	var t [16]byte
	for i := 0; i < 8; i++ {
		t[i] = byte(adBits >> (8 * i))
		t[8+i] = byte(msgBits >> (8 * i))
	}
	xorBlock(&t, &t, &st.s[2])

	for i := 0; i < 7; i++ {
		st.update(&t, &t)
	}

	var tag [16]byte
	xorBlock(&tag, &st.s[0], &st.s[1])
	xorBlock(&tag, &tag, &st.s[2])
	xorBlock(&tag, &tag, &st.s[3])
	xorBlock(&tag, &tag, &st.s[4])
	xorBlock(&tag, &tag, &st.s[5])
	xorBlock(&tag, &tag, &st.s[6])
	return tag
}
