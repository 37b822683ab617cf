package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("pw123456")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "" || hash == "pw123456" {
		t.Fatalf("hash must not equal plaintext")
	}

	if !Verify("pw123456", hash) {
		t.Fatalf("verify rejected the correct password")
	}
	if Verify("wrongpw", hash) {
		t.Fatalf("verify accepted a wrong password")
	}
}

func TestHash_RandomSalt(t *testing.T) {
	first, err := Hash("pw123456")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	second, err := Hash("pw123456")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct hashes for the same input")
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	if Verify("pw123456", "not-a-bcrypt-hash") {
		t.Fatalf("verify accepted a malformed hash")
	}
	if Verify("pw123456", "") {
		t.Fatalf("verify accepted an empty hash")
	}
}
