// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package enco

// ForgeKey mints a key from raw so tests can probe invalid positions.
func ForgeKey[T Enum](raw RawKey) Key[Encoder[T], T] {
	return keyFrom[Encoder[T], T](raw)
}
