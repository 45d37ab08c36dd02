package auth

import "testing"

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher()

	t.Run("hash verifica a senha original", func(t *testing.T) {
		hash, err := hasher.Hash("s3cret")
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}
		if hash == "s3cret" {
			t.Error("hash igual à senha em claro")
		}
		if !hasher.Compare(hash, "s3cret") {
			t.Error("hash não verifica a senha original")
		}
	})

	t.Run("senha errada não verifica", func(t *testing.T) {
		hash, err := hasher.Hash("s3cret")
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}
		if hasher.Compare(hash, "outra") {
			t.Error("senha errada passou na verificação")
		}
	})

	t.Run("mesma senha produz hashes distintos", func(t *testing.T) {
		first, _ := hasher.Hash("s3cret")
		second, _ := hasher.Hash("s3cret")
		if first == second {
			t.Error("salts iguais: dois hashes idênticos para a mesma senha")
		}
	})
}
