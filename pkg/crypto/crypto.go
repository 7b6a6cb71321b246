package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// 题目字段在数据库中以 "hex(iv):hex(ciphertext)" 的形式存储，
// 每次加密都会生成新的随机IV，相同明文两次加密结果不同
const envelopeSep = ":"

var (
	ErrMalformedEnvelope = errors.New("malformed cipher envelope")
	ErrInvalidPadding    = errors.New("invalid padding")
)

// FieldCipher AES-256-CBC 字段加密器，密钥来自启动配置，进程内只读
type FieldCipher struct {
	block cipher.Block
}

// New 解析64位十六进制密钥（256-bit），密钥不合法属于启动致命错误
func New(hexKey string) (*FieldCipher, error) {
	if hexKey == "" {
		return nil, errors.New("encryption key is not configured")
	}
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("encryption key is not valid hex: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("encryption key must be 32 bytes, got %d", len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return &FieldCipher{block: block}, nil
}

// EncryptField 加密单个文本字段，返回自描述信封字符串
func (f *FieldCipher) EncryptField(plainText string) (string, error) {
	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", err
	}

	padded := pkcs7Pad([]byte(plainText), aes.BlockSize)
	encrypted := make([]byte, len(padded))
	cipher.NewCBCEncrypter(f.block, iv).CryptBlocks(encrypted, padded)

	return hex.EncodeToString(iv) + envelopeSep + hex.EncodeToString(encrypted), nil
}

// DecryptField 解密信封字符串；格式错误或填充校验失败时返回错误，
// 由调用方决定是否回退为原文（兼容未加密的历史数据）
func (f *FieldCipher) DecryptField(envelope string) (string, error) {
	ivHex, dataHex, found := strings.Cut(envelope, envelopeSep)
	if !found {
		return "", ErrMalformedEnvelope
	}

	iv, err := hex.DecodeString(ivHex)
	if err != nil || len(iv) != aes.BlockSize {
		return "", ErrMalformedEnvelope
	}
	encrypted, err := hex.DecodeString(dataHex)
	if err != nil || len(encrypted) == 0 || len(encrypted)%aes.BlockSize != 0 {
		return "", ErrMalformedEnvelope
	}

	decrypted := make([]byte, len(encrypted))
	cipher.NewCBCDecrypter(f.block, iv).CryptBlocks(decrypted, encrypted)

	unpadded, err := pkcs7Unpad(decrypted, aes.BlockSize)
	if err != nil {
		return "", err
	}
	return string(unpadded), nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padLen)}, padLen)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, ErrInvalidPadding
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize || padLen > len(data) {
		return nil, ErrInvalidPadding
	}
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, ErrInvalidPadding
		}
	}
	return data[:len(data)-padLen], nil
}
