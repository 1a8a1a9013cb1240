package market

import "strings"

var (
	swapRecordPrefix = []byte("market/swap/")
	configKey        = []byte("market/config")
)

func swapKey(id string) []byte {
	trimmed := strings.TrimSpace(id)
	buf := make([]byte, len(swapRecordPrefix)+len(trimmed))
	copy(buf, swapRecordPrefix)
	copy(buf[len(swapRecordPrefix):], trimmed)
	return buf
}

func swapIDFromKey(key []byte) string {
	if len(key) <= len(swapRecordPrefix) {
		return ""
	}
	return string(key[len(swapRecordPrefix):])
}
