package app

import (
	"testing"
	"time"
)

func TestTokenManagerGenerateAndParse(t *testing.T) {
	cfg := TokenConfig{
		SecretKey: "user-secret",
		Expiry:    1 * time.Hour,
		Issuer:    "test-issuer",
	}
	tm := NewTokenManager(cfg)

	uid := int64(1001)
	token, err := tm.Generate(uid, "alice", "127.0.0.1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if claims.UID != uid {
		t.Errorf("Expected UID %d, got %d", uid, claims.UID)
	}
	if claims.Nickname != "alice" {
		t.Errorf("Expected nickname alice, got %s", claims.Nickname)
	}
	if claims.Issuer != "test-issuer" {
		t.Errorf("Expected issuer test-issuer, got %s", claims.Issuer)
	}

	// 验证 ExpiresAt (由于只存了秒级 Unix 戳，允许 1 秒内的误差)
	expectedExp := time.Now().Add(cfg.Expiry)
	if claims.ExpiresAt.Unix() < expectedExp.Unix()-1 || claims.ExpiresAt.Unix() > expectedExp.Unix()+1 {
		t.Errorf("Expected ExpiresAt around %v, got %v", expectedExp, claims.ExpiresAt)
	}

	// 错误的密钥
	wrongKeyCfg := cfg
	wrongKeyCfg.SecretKey = "wrong-secret"
	tmWrongKey := NewTokenManager(wrongKeyCfg)

	wrongToken, _ := tmWrongKey.Generate(uid, "alice", "127.0.0.1")
	if _, err := tm.Parse(wrongToken); err == nil {
		t.Error("Expected error when parsing token with wrong secret key, but got nil")
	}

	// 篡改后的 Token
	if err := tm.Validate(token + "tampered"); err == nil {
		t.Error("Expected error when validating tampered token, but got nil")
	}
}
