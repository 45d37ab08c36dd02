package ports

// DocumentEvent descreve um evento do ciclo de vida de um documento
type DocumentEvent struct {
	Kind       string `json:"kind"` // uploaded | updated | deleted
	DocumentID string `json:"document_id"`
	OwnerEmail string `json:"owner_email"`
	Title      string `json:"title,omitempty"`
}

// Notifier publica eventos de documento para assinantes interessados.
// A publicação é best-effort: nenhuma operação de documento falha por
// causa de um assinante lento ou ausente.
type Notifier interface {
	Publish(event DocumentEvent)
}
