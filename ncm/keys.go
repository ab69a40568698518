// SPDX-License-Identifier: EPL-2.0

package ncm

const (
	// Magic opens every NCM container.
	Magic = "CTENFDAM"

	// CoreKey is the AES-128 key of the per-file key block.
	CoreKey = "hzHRAmso5kInbaxW"

	// MetaKey is the AES-128 key of the meta block payload.
	MetaKey = "#14ljk_!\\]&0U<'("

	// KeyPrefix precedes the stream key inside the decrypted key block.
	KeyPrefix = "neteasecloudmusic"

	// MetaPrefix precedes the base64 text of the meta block.
	MetaPrefix = "163 key(Don't modify):"

	// MetaPayloadPrefix precedes the decrypted meta payload.
	MetaPayloadPrefix = "music:"

	KeyMask  byte = 0x64
	MetaMask byte = 0x63
)
