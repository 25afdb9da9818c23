package cache

import (
	"strings"
	"testing"
)

func TestComposeKey_Deterministic(t *testing.T) {
	req := Request{
		OwnerID: "42",
		Context: []Attr{
			{Name: "schema", Value: "analytics"},
			{Name: "source", Value: "sql_lab"},
			{Name: "catalog", Value: "main"},
		},
		NullPool: true,
		Extra:    map[string]string{"b": "2", "a": "1"},
	}

	k1 := ComposeKey(req, "user_7", "abcd1234")
	k2 := ComposeKey(req, "user_7", "abcd1234")
	if k1 != k2 {
		t.Errorf("same inputs produced different keys: %q vs %q", k1, k2)
	}
}

func TestComposeKey_ExtraOrderInsensitive(t *testing.T) {
	base := Request{OwnerID: "42", NullPool: false}

	a := base
	a.Extra = map[string]string{"zeta": "z", "alpha": "a", "mid": "m"}
	b := base
	b.Extra = map[string]string{"mid": "m", "zeta": "z", "alpha": "a"}

	if ComposeKey(a, "user_1", "ff") != ComposeKey(b, "user_1", "ff") {
		t.Error("key should not depend on Extra insertion order")
	}
}

func TestComposeKey_NormalizesEmptyToSentinel(t *testing.T) {
	req := Request{
		OwnerID: "42",
		Context: []Attr{
			{Name: "schema", Value: ""},
			{Name: "source", Value: "chart"},
		},
	}

	key := ComposeKey(req, "", "")
	want := "42:default:chart:nullpool_false:default:default"
	if key != want {
		t.Errorf("key = %q, want %q", key, want)
	}
}

func TestComposeKey_NullPoolAlwaysPresent(t *testing.T) {
	req := Request{OwnerID: "1"}

	with := ComposeKey(req, "user_1", "aa")
	req.NullPool = true
	without := ComposeKey(req, "user_1", "aa")

	if !strings.Contains(with, "nullpool_false") {
		t.Errorf("key %q missing nullpool label", with)
	}
	if !strings.Contains(without, "nullpool_true") {
		t.Errorf("key %q missing nullpool label", without)
	}
	if with == without {
		t.Error("pooling mode should change the key")
	}
}

func TestComposeKey_PrincipalSeparation(t *testing.T) {
	req := Request{OwnerID: "42", Context: []Attr{{Name: "schema", Value: "s"}}}

	k1 := ComposeKey(req, "user_1", "aa")
	k2 := ComposeKey(req, "user_2", "aa")
	if k1 == k2 {
		t.Error("different principals must produce distinct keys")
	}
}

func TestComposeKey_FingerprintSeparation(t *testing.T) {
	req := Request{OwnerID: "42"}

	k1 := ComposeKey(req, "user_1", Fingerprint("postgres://old"))
	k2 := ComposeKey(req, "user_1", Fingerprint("postgres://new"))
	if k1 == k2 {
		t.Error("different fingerprints must produce distinct keys")
	}
}

func TestFingerprint_ShortAndStable(t *testing.T) {
	fp := Fingerprint("uri", "extra")
	if len(fp) != 8 {
		t.Errorf("fingerprint length = %d, want 8", len(fp))
	}
	if fp != Fingerprint("uri", "extra") {
		t.Error("fingerprint should be stable for identical inputs")
	}
	if fp == Fingerprint("uri", "other") {
		t.Error("fingerprint should change when any part changes")
	}
}
