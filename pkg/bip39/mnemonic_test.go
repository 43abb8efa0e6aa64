package bip39

import (
	"encoding/hex"
	"errors"
	"testing"
)

// 测试向量
const vectorMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestMnemonicToSeed(t *testing.T) {
	service := NewMnemonicService()

	expectedSeedHex := "5eb00bbddcf069084889a8ab9155568165f5c453ccb85e70811aaed6f6da5fc19a5ac40b389cd370d086206dec8aa6c43daea6690f20ad3d8d48b2d2ce9e38e4"

	if !service.ValidateMnemonic(vectorMnemonic) {
		t.Fatalf("测试向量助记词无效")
	}

	seedHex := hex.EncodeToString(service.MnemonicToSeed(vectorMnemonic, ""))
	if seedHex != expectedSeedHex {
		t.Errorf("Seed 生成不匹配。\n预期: %s\n实际: %s", expectedSeedHex, seedHex)
	}
}

func TestNormalize(t *testing.T) {
	service := NewMnemonicService()

	messy := "  ABANDON abandon\tabandon abandon abandon abandon\nabandon abandon abandon abandon abandon about\n"
	if got := service.Normalize(messy); got != vectorMnemonic {
		t.Errorf("Normalize 结果不符: %q", got)
	}

	seed, err := service.SeedFromMnemonic(messy, "")
	if err != nil {
		t.Fatalf("SeedFromMnemonic 失败: %v", err)
	}
	if hex.EncodeToString(seed) != hex.EncodeToString(service.MnemonicToSeed(vectorMnemonic, "")) {
		t.Errorf("格式化前后的种子应一致")
	}
}

func TestValidateMnemonic_Invalid(t *testing.T) {
	service := NewMnemonicService()

	invalidMnemonic := "hello world invalid mnemonic phrase designed to fail validation check"
	if service.ValidateMnemonic(invalidMnemonic) {
		t.Errorf("期望验证失败，但验证通过了")
	}

	if _, err := service.SeedFromMnemonic(invalidMnemonic, ""); !errors.Is(err, ErrInvalidMnemonic) {
		t.Errorf("期望 ErrInvalidMnemonic，实际: %v", err)
	}
}
