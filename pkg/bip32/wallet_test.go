package bip32

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"

	"tipjar/pkg/bip39"
)

const vectorMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestNewMasterKeyFromSeed(t *testing.T) {
	seed := bip39.NewMnemonicService().MnemonicToSeed(vectorMnemonic, "")

	wallet, err := NewMasterKeyFromSeed(seed)
	if err != nil {
		t.Fatalf("生成主密钥失败: %v", err)
	}
	if !wallet.MasterKey().IsPrivate() {
		t.Fatalf("主密钥应为私钥")
	}

	if _, err := NewMasterKeyFromSeed([]byte{1, 2, 3}); !errors.Is(err, ErrInvalidSeed) {
		t.Errorf("短种子应返回 ErrInvalidSeed, 实际: %v", err)
	}
}

// 该助记词在 m/44'/60'/0'/0/0 上的地址是公开的测试向量
func TestDeriveEthereumAddress(t *testing.T) {
	seed := bip39.NewMnemonicService().MnemonicToSeed(vectorMnemonic, "")
	wallet, err := NewMasterKeyFromSeed(seed)
	if err != nil {
		t.Fatalf("生成主密钥失败: %v", err)
	}

	key, err := wallet.DerivePath("m/44'/60'/0'/0/0")
	if err != nil {
		t.Fatalf("派生失败: %v", err)
	}
	addr, err := key.Address()
	if err != nil {
		t.Fatalf("地址计算失败: %v", err)
	}
	if addr.Hex() != "0x9858EfFD232B4033E47d90003D41EC34EcaEda94" {
		t.Errorf("地址不匹配: %s", addr.Hex())
	}

	priv, err := wallet.DeriveECDSA("m/44h/60h/0h/0/0")
	if err != nil {
		t.Fatalf("DeriveECDSA 失败: %v", err)
	}
	if crypto.PubkeyToAddress(priv.PublicKey) != addr {
		t.Errorf("私钥与地址不对应")
	}
}

func TestDerivePathErrors(t *testing.T) {
	seed, _ := hex.DecodeString("fffcf9f6da3247d8a846f4b6113e6173")
	wallet, err := NewMasterKeyFromSeed(seed)
	if err != nil {
		t.Fatalf("生成主密钥失败: %v", err)
	}

	for _, path := range []string{"44'/60'", "m/abc", "m/44'/-1"} {
		if _, err := wallet.DerivePath(path); !errors.Is(err, ErrInvalidPath) {
			t.Errorf("路径 %q 应返回 ErrInvalidPath, 实际: %v", path, err)
		}
	}

	pub, err := wallet.MasterKey().Neuter()
	if err != nil {
		t.Fatalf("Neuter 失败: %v", err)
	}
	if pub.IsPrivate() {
		t.Errorf("Neuter() 应该返回公钥")
	}
	if _, err := pub.ECPrivKey(); err == nil {
		t.Errorf("公钥节点不应返回私钥")
	}
}
