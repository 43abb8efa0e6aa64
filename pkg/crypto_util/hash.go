package crypto_util

import (
	"encoding/hex"

	"lukechampine.com/blake3"
)

// Fingerprint 返回 Blake3 摘要的前 8 字节
// 用于在日志中区分会话 ID 等敏感值而不暴露原文
func Fingerprint(data string) string {
	sum := blake3.Sum256([]byte(data))
	return hex.EncodeToString(sum[:8])
}
