package storage

import (
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	t.Run("remove separadores de caminho", func(t *testing.T) {
		got := SanitizeFilename("../../etc/passwd")
		if strings.ContainsAny(got, "/\\") || strings.Contains(got, "..") {
			t.Errorf("nome sanitizado ainda contém sequência perigosa: %q", got)
		}
	})

	t.Run("remove componente de diretório estilo Windows", func(t *testing.T) {
		got := SanitizeFilename(`C:\Users\joao\deed.pdf`)
		if strings.Contains(got, `\`) {
			t.Errorf("nome sanitizado ainda contém barra invertida: %q", got)
		}
		if !strings.HasSuffix(got, "deed.pdf") {
			t.Errorf("esperava sufixo deed.pdf, obteve %q", got)
		}
	})

	t.Run("substitui caracteres inseguros", func(t *testing.T) {
		got := SanitizeFilename("meu contrato (final)!.pdf")
		if strings.ContainsAny(got, " ()!") {
			t.Errorf("nome sanitizado contém caracteres inseguros: %q", got)
		}
	})

	t.Run("nome vazio vira file", func(t *testing.T) {
		if got := SanitizeFilename("///"); got != "file" {
			t.Errorf("esperava 'file', obteve %q", got)
		}
	})

	t.Run("colapsa sequências de pontos", func(t *testing.T) {
		got := SanitizeFilename("a..b.pdf")
		if strings.Contains(got, "..") {
			t.Errorf("nome sanitizado ainda contém '..': %q", got)
		}
	})

	t.Run("limita o tamanho preservando a extensão", func(t *testing.T) {
		got := SanitizeFilename(strings.Repeat("a", 300) + ".pdf")
		if len(got) > 120 {
			t.Errorf("esperava no máximo 120 caracteres, obteve %d", len(got))
		}
		if !strings.HasSuffix(got, ".pdf") {
			t.Errorf("esperava extensão preservada, obteve %q", got)
		}
	})
}

func TestNewStoredName(t *testing.T) {
	t.Run("nunca repete, mesmo para o mesmo nome original", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 1000; i++ {
			name := NewStoredName("deed.pdf")
			if seen[name] {
				t.Fatalf("nome de armazenamento repetido: %q", name)
			}
			seen[name] = true
		}
	})

	t.Run("difere do nome original", func(t *testing.T) {
		if name := NewStoredName("deed.pdf"); name == "deed.pdf" {
			t.Error("nome de armazenamento igual ao nome original")
		}
	})

	t.Run("resultado é sempre seguro", func(t *testing.T) {
		for _, original := range []string{"../../x", "a/b/c.pdf", `..\..\x`, "", "...."} {
			name := NewStoredName(original)
			if !IsSafeStoredName(name) {
				t.Errorf("nome gerado para %q não é seguro: %q", original, name)
			}
		}
	})
}

func TestIsSafeStoredName(t *testing.T) {
	unsafe := []string{"", ".", "..", "../x", "a/b", `a\b`, "a..b"}
	for _, name := range unsafe {
		if IsSafeStoredName(name) {
			t.Errorf("esperava rejeição de %q", name)
		}
	}

	safe := []string{"abc123_deed.pdf", "file", "a.b.c"}
	for _, name := range safe {
		if !IsSafeStoredName(name) {
			t.Errorf("esperava aceitação de %q", name)
		}
	}
}
