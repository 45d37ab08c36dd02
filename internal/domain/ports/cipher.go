package ports

// Cipher é a transformação opcional aplicada entre o repositório de blobs
// e o armazenamento bruto. Criptografia em repouso não é uma propriedade
// garantida do sistema; quando nenhuma chave está configurada, o
// repositório usa a transformação identidade.
type Cipher interface {
	Encrypt(plaintext []byte) ([]byte, error)
	Decrypt(ciphertext []byte) ([]byte, error)
}
