package tests

import (
	"strings"
	"testing"

	crypt "github.com/IvanChernomyrdin/go-user-accounts/internal/server/crypto"
)

func defaultParams() crypt.Argon2Params {
	return crypt.Argon2Params{
		Time:      1,
		MemoryKiB: 32 * 1024,
		Threads:   1,
		KeyLen:    32,
		SaltLen:   16,
	}
}

// Хэширование и успешная проверка argon2id
func TestHashAndVerifyPassword_OK(t *testing.T) {
	password := "super-secret-password"

	hash, err := crypt.HashPassword(password, defaultParams())
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	ok, err := crypt.VerifyPassword(password, hash)
	if err != nil {
		t.Fatalf("VerifyPassword error: %v", err)
	}
	if !ok {
		t.Fatal("expected password to be valid")
	}
}

// Неверный пароль
func TestVerifyPassword_InvalidPassword(t *testing.T) {
	hash, err := crypt.HashPassword("correct-password", defaultParams())
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	ok, err := crypt.VerifyPassword("wrong-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword error: %v", err)
	}
	if ok {
		t.Fatal("expected password to be invalid")
	}
}

// Пустой пароль
func TestHashPassword_EmptyPassword(t *testing.T) {
	if _, err := crypt.HashPassword("", defaultParams()); err == nil {
		t.Fatal("expected error for empty password")
	}
	if _, err := (crypt.BcryptHasher{Cost: 4}).Hash(""); err == nil {
		t.Fatal("expected error for empty password")
	}
}

// Битый формат хэша
func TestVerifyPassword_InvalidFormat(t *testing.T) {
	if _, err := crypt.VerifyPassword("password", "not-a-valid-hash"); err == nil {
		t.Fatal("expected error for invalid hash format")
	}
	if _, err := crypt.VerifyPassword("password", "argon2id$broken"); err == nil {
		t.Fatal("expected error for broken argon2 hash")
	}
}

// соль разная (хэши разные)
func TestHashPassword_DifferentSalt(t *testing.T) {
	password := "same-password"

	h1, _ := crypt.HashPassword(password, defaultParams())
	h2, _ := crypt.HashPassword(password, defaultParams())
	if h1 == h2 {
		t.Fatal("expected different hashes for same password")
	}

	b := crypt.BcryptHasher{Cost: 4}
	b1, _ := b.Hash(password)
	b2, _ := b.Hash(password)
	if b1 == b2 {
		t.Fatal("expected different bcrypt hashes for same password")
	}
}

// bcrypt: хэш проверяется, но никогда не равен паролю
func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := crypt.BcryptHasher{Cost: crypt.DefaultBcryptCost}

	hash, err := h.Hash("secret")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if hash == "secret" || !strings.HasPrefix(hash, "$2") {
		t.Fatalf("unexpected bcrypt hash: %q", hash)
	}
	if !strings.Contains(hash, "$10$") {
		t.Fatalf("expected cost 10 in hash, got %q", hash)
	}

	ok, err := h.Verify("secret", hash)
	if err != nil || !ok {
		t.Fatalf("expected valid password, ok=%v err=%v", ok, err)
	}

	ok, err = h.Verify("wrong", hash)
	if err != nil || ok {
		t.Fatalf("expected invalid password, ok=%v err=%v", ok, err)
	}
}

// пароли длиннее 72 байт не отвергаются bcrypt и различаются за пределами 72 байт
func TestBcryptHasher_LongPassword(t *testing.T) {
	h := crypt.BcryptHasher{Cost: 4}
	long := strings.Repeat("a", 80)

	hash, err := h.Hash(long)
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	ok, err := crypt.VerifyPassword(long, hash)
	if err != nil || !ok {
		t.Fatalf("expected valid password, ok=%v err=%v", ok, err)
	}

	ok, err = crypt.VerifyPassword(strings.Repeat("a", 72)+"bbbbbbbb", hash)
	if err != nil || ok {
		t.Fatalf("expected invalid password with same prefix, ok=%v err=%v", ok, err)
	}
}

// хэши одного алгоритма проверяются hasher'ом другого
func TestVerify_CrossAlgorithm(t *testing.T) {
	argonHash, err := crypt.HashPassword("secret", defaultParams())
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	ok, err := (crypt.BcryptHasher{Cost: 4}).Verify("secret", argonHash)
	if err != nil || !ok {
		t.Fatalf("expected argon2 hash to verify, ok=%v err=%v", ok, err)
	}
}

func TestNewPasswordHasher(t *testing.T) {
	h, err := crypt.NewPasswordHasher("", 0, defaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b, ok := h.(crypt.BcryptHasher); !ok || b.Cost != crypt.DefaultBcryptCost {
		t.Fatalf("expected bcrypt hasher with default cost, got %#v", h)
	}

	h, err = crypt.NewPasswordHasher("argon2id", 0, defaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := h.(crypt.Argon2Hasher); !ok {
		t.Fatalf("expected argon2 hasher, got %#v", h)
	}

	if _, err := crypt.NewPasswordHasher("md5", 0, defaultParams()); err == nil {
		t.Fatal("expected error for unknown hasher")
	}
	if _, err := crypt.NewPasswordHasher("bcrypt", 99, defaultParams()); err == nil {
		t.Fatal("expected error for out of range cost")
	}
}
