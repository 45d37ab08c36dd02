package storage

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// unsafeChars cobre tudo que não é seguro num nome de arquivo plano
var (
	unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
	dotRuns     = regexp.MustCompile(`\.{2,}`)
)

// SanitizeFilename reduz um nome de arquivo enviado pelo usuário a um
// nome plano: sem separadores de caminho, sem "..", sem caracteres de
// controle. Um nome que não sobra nada vira "file".
func SanitizeFilename(name string) string {
	// Descartar qualquer componente de diretório (inclui estilo Windows)
	name = filepath.Base(name)
	if i := strings.LastIndexByte(name, '\\'); i >= 0 {
		name = name[i+1:]
	}

	name = unsafeChars.ReplaceAllString(name, "_")
	name = dotRuns.ReplaceAllString(name, ".")
	name = strings.Trim(name, "._")

	if name == "" {
		return "file"
	}

	// Limitar o tamanho para caber na coluna de metadados
	if len(name) > 120 {
		ext := filepath.Ext(name)
		name = name[:120-len(ext)] + ext
	}

	return name
}

// NewStoredName gera o nome de armazenamento de um blob: token aleatório
// novo + nome original sanitizado. O token garante unicidade global sem
// lock algum; nomes nunca são reutilizados, mesmo após deleção.
func NewStoredName(originalName string) string {
	return uuid.NewString() + "_" + SanitizeFilename(originalName)
}

// IsSafeStoredName rejeita nomes capazes de escapar da raiz de
// armazenamento. Os nomes são gerados pelo sistema, mas a verificação
// fica na leitura como defesa em profundidade.
func IsSafeStoredName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, "/\\") {
		return false
	}
	if strings.Contains(name, "..") {
		return false
	}
	return true
}
