package postgres

// UserModel é o model GORM para usuários
type UserModel struct {
	ID           string `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name         string `gorm:"type:varchar(500);not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	CreatedAt    int64  `gorm:"autoCreateTime"`
}

func (UserModel) TableName() string {
	return "users"
}

// DocumentModel é o model GORM para metadados de documentos.
// StoredName tem índice único: nenhum nome de armazenamento é emitido
// duas vezes, nem após a deleção do documento.
type DocumentModel struct {
	ID           string `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OwnerEmail   string `gorm:"type:varchar(255);not null;index"`
	Title        string `gorm:"type:varchar(500)"`
	StoredName   string `gorm:"type:varchar(500);uniqueIndex;not null"`
	OriginalName string `gorm:"type:varchar(500)"`
	PropertyName string `gorm:"type:varchar(500)"`
	Address      string `gorm:"type:varchar(500)"`
	DocType      string `gorm:"type:varchar(100)"`
	UploadedAt   int64
	CreatedAt    int64 `gorm:"autoCreateTime;index"`
}

func (DocumentModel) TableName() string {
	return "documents"
}

// InviteModel é o model GORM para convites de compartilhamento
type InviteModel struct {
	ID             string `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SenderEmail    string `gorm:"type:varchar(255);not null;index"`
	RecipientEmail string `gorm:"type:varchar(255);not null;index"`
	DocumentID     string `gorm:"type:uuid;not null"`
	DocumentTitle  string `gorm:"type:varchar(500)"`
	Status         string `gorm:"type:varchar(50);not null"`
	CreatedAt      int64  `gorm:"autoCreateTime"`
}

func (InviteModel) TableName() string {
	return "invites"
}
