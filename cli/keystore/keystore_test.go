package keystore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileKeystoreSetAndGet(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "keys.enc")

	ks, err := NewFileKeystore(path)
	if err != nil {
		t.Fatalf("NewFileKeystore() error = %v", err)
	}

	// Set a key
	if err := ks.Set("openai", "sk-test-key-12345"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// Get it back
	value, err := ks.Get("openai")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if value != "sk-test-key-12345" {
		t.Errorf("Get() = %q, want sk-test-key-12345", value)
	}
}

func TestFileKeystoreGetNotFound(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "keys.enc")

	ks, err := NewFileKeystore(path)
	if err != nil {
		t.Fatalf("NewFileKeystore() error = %v", err)
	}

	_, err = ks.Get("nonexistent")
	if err == nil {
		t.Fatal("Get() should return error for nonexistent key")
	}

	if _, ok := err.(*ErrKeyNotFound); !ok {
		t.Errorf("Get() error type = %T, want *ErrKeyNotFound", err)
	}
}

func TestFileKeystoreDelete(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "keys.enc")

	ks, err := NewFileKeystore(path)
	if err != nil {
		t.Fatalf("NewFileKeystore() error = %v", err)
	}

	if err := ks.Set("openai", "sk-test"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if err := ks.Delete("openai"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	// Verify it's gone
	_, err = ks.Get("openai")
	if _, ok := err.(*ErrKeyNotFound); !ok {
		t.Error("Get() should return ErrKeyNotFound after Delete()")
	}
}

func TestFileKeystoreDeleteNotFound(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "keys.enc")

	ks, err := NewFileKeystore(path)
	if err != nil {
		t.Fatalf("NewFileKeystore() error = %v", err)
	}

	err = ks.Delete("nonexistent")
	if err == nil {
		t.Fatal("Delete() should return error for nonexistent key")
	}

	if _, ok := err.(*ErrKeyNotFound); !ok {
		t.Errorf("Delete() error type = %T, want *ErrKeyNotFound", err)
	}
}

func TestFileKeystoreList(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "keys.enc")

	ks, err := NewFileKeystore(path)
	if err != nil {
		t.Fatalf("NewFileKeystore() error = %v", err)
	}

	// List empty keystore
	names, err := ks.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(names) != 0 {
		t.Errorf("List() on empty keystore returned %d items", len(names))
	}

	if err := ks.Set("openai", "key1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := ks.Set("azure", "key2"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	names, err = ks.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	// Sorted by name
	want := []string{"azure", "openai"}
	if len(names) != len(want) {
		t.Fatalf("List() returned %d items, want %d", len(names), len(want))
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("List()[%d] = %q, want %q", i, names[i], name)
		}
	}
}

func TestFileKeystoreFileFormat(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "keys.enc")

	ks := NewFileKeystoreWithKey(path, []byte("master-key"))
	if err := ks.Set("openai", "sk-secret"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if string(raw[:4]) != magicHeader {
		t.Errorf("file magic = %q, want %q", raw[:4], magicHeader)
	}
	if raw[4] != formatVersion {
		t.Errorf("file version = %d, want %d", raw[4], formatVersion)
	}

	// Ciphertext must not leak the plaintext key
	if contains(raw, []byte("sk-secret")) {
		t.Error("keystore file contains plaintext key material")
	}
}

func TestFileKeystoreWrongKey(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "keys.enc")

	ks := NewFileKeystoreWithKey(path, []byte("right-key"))
	if err := ks.Set("openai", "sk-secret"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	other := NewFileKeystoreWithKey(path, []byte("wrong-key"))
	if _, err := other.Get("openai"); err == nil {
		t.Fatal("Get() with wrong master key should fail")
	}
}

func TestFileKeystoreCorruptFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "keys.enc")

	if err := os.WriteFile(path, []byte("not a keystore"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	ks := NewFileKeystoreWithKey(path, []byte("master-key"))
	if _, err := ks.Get("openai"); err == nil {
		t.Fatal("Get() on corrupt file should fail")
	}
}

func TestFileKeystorePermissions(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "keys.enc")

	ks := NewFileKeystoreWithKey(path, []byte("master-key"))
	if err := ks.Set("openai", "sk-secret"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file permissions = %o, want 0600", perm)
	}
}

func contains(data, sub []byte) bool {
	for i := 0; i+len(sub) <= len(data); i++ {
		match := true
		for j := range sub {
			if data[i+j] != sub[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
