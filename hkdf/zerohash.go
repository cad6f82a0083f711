package hkdf

import (
	"hash"
	"reflect"
	"runtime"
	"unsafe"
)

// fieldAt reaches a struct field by name, including unexported ones, the
// way newHMAC-style locked-memory relocation does: wrapping the field's
// address in a fresh reflect.Value via NewAt so the result is readable
// without tripping the usual unexported-field restriction.
func fieldAt(v reflect.Value, name string) (reflect.Value, bool) {
	f := v.FieldByName(name)
	if !f.IsValid() {
		return reflect.Value{}, false
	}
	return reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem(), true
}

// zeroHash overwrites a hash.Hash's internal state: its own block buffer
// and length counters, but also, for crypto/hmac's implementation, the
// opad/ipad backing arrays (the K^ipad/K^opad key-derived pad material)
// and the inner/outer sub-hash.Hash objects' own state, recursively.
// crypto/hmac and crypto/sha512 give no API for any of this, so every
// layer is reached through reflection the same way a locked-memory
// relocation would reach it, except here the state is scrubbed in place
// rather than moved.
func zeroHash(h hash.Hash) {
	if h == nil {
		return
	}
	v := reflect.ValueOf(h)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return
	}
	elem := v.Elem()

	if opad, ok := fieldAt(elem, "opad"); ok && opad.Kind() == reflect.Slice {
		clear(opad.Interface().([]byte))
	}
	if ipad, ok := fieldAt(elem, "ipad"); ok && ipad.Kind() == reflect.Slice {
		clear(ipad.Interface().([]byte))
	}
	if inner, ok := fieldAt(elem, "inner"); ok && inner.Kind() == reflect.Interface && !inner.IsNil() {
		zeroHash(inner.Interface().(hash.Hash))
	}
	if outer, ok := fieldAt(elem, "outer"); ok && outer.Kind() == reflect.Interface && !outer.IsNil() {
		zeroHash(outer.Interface().(hash.Hash))
	}

	size := int(elem.Type().Size())
	if size > 0 {
		b := unsafe.Slice((*byte)(unsafe.Pointer(v.Pointer())), size)
		clear(b)
	}
	runtime.KeepAlive(h)
}
