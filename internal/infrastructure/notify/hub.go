package notify

import (
	"sync"

	"github.com/elegacy/elegacy-backend/internal/domain/ports"
)

// Hub implementa ports.Notifier: fan-out de eventos de documento para
// assinantes por dono. Publicação é best-effort — assinante com buffer
// cheio perde o evento ao invés de bloquear a operação de documento.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan ports.DocumentEvent]struct{} // ownerEmail -> canais
}

// NewHub cria um novo Hub
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan ports.DocumentEvent]struct{}),
	}
}

// Subscribe registra interesse nos eventos de um dono. O canal retornado
// tem buffer; o chamador deve drenar e chamar cancel ao terminar.
func (h *Hub) Subscribe(ownerEmail string) (<-chan ports.DocumentEvent, func()) {
	ch := make(chan ports.DocumentEvent, 16)

	h.mu.Lock()
	if h.subscribers[ownerEmail] == nil {
		h.subscribers[ownerEmail] = make(map[chan ports.DocumentEvent]struct{})
	}
	h.subscribers[ownerEmail][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if subs, ok := h.subscribers[ownerEmail]; ok {
			delete(subs, ch)
			if len(subs) == 0 {
				delete(h.subscribers, ownerEmail)
			}
		}
		h.mu.Unlock()
		close(ch)
	}

	return ch, cancel
}

// Publish entrega o evento a todos os assinantes do dono
func (h *Hub) Publish(event ports.DocumentEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers[event.OwnerEmail] {
		select {
		case ch <- event:
		default:
			// assinante lento: descartar ao invés de bloquear
		}
	}
}
