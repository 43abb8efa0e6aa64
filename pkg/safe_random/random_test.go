package safe_random

import (
	"encoding/hex"
	"regexp"
	"testing"
)

func TestGenerateRandomBytes(t *testing.T) {
	n := 32
	b, err := GenerateRandomBytes(n)
	if err != nil {
		t.Fatalf("GenerateRandomBytes 失败: %v", err)
	}
	if len(b) != n {
		t.Errorf("GenerateRandomBytes 返回了 %d 字节, 期望 %d", len(b), n)
	}

	// 极不可能全为零
	allZero := true
	for _, v := range b {
		if v != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		t.Error("GenerateRandomBytes 返回了全零数据")
	}
}

func TestGenerateRandomHexString(t *testing.T) {
	n := 16
	s, err := GenerateRandomHexString(n)
	if err != nil {
		t.Fatalf("GenerateRandomHexString 失败: %v", err)
	}

	decoded, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("解码 Hex 字符串失败: %v", err)
	}
	if len(decoded) != n {
		t.Errorf("底层字节长度 = %d, 期望 %d", len(decoded), n)
	}
}

var uuidV4 = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestNewUUID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id, err := NewUUID()
		if err != nil {
			t.Fatalf("NewUUID 失败: %v", err)
		}
		if !uuidV4.MatchString(id) {
			t.Errorf("格式不符合 v4: %s", id)
		}
		if seen[id] {
			t.Errorf("重复的 ID: %s", id)
		}
		seen[id] = true
	}
}

func TestNewSessionID(t *testing.T) {
	a, err := NewSessionID()
	if err != nil {
		t.Fatalf("NewSessionID 失败: %v", err)
	}
	b, _ := NewSessionID()
	if len(a) != 32 || a == b {
		t.Errorf("会话 ID 异常: %q %q", a, b)
	}
}
