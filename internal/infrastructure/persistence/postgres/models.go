package postgres

// UserModel é o model GORM para usuários
type UserModel struct {
	ID          string `gorm:"type:uuid;primary_key"`
	Provider    string `gorm:"type:varchar(50);not null;uniqueIndex:idx_users_provider_uid"`
	UID         string `gorm:"column:uid;type:varchar(255);not null;uniqueIndex:idx_users_provider_uid"`
	Name        string `gorm:"type:varchar(500)"`
	DisplayName string `gorm:"type:varchar(255)"`
	Email       string `gorm:"type:varchar(255);index"`
	CreatedAt   int64  `gorm:"autoCreateTime"`
	UpdatedAt   int64  `gorm:"autoUpdateTime"`
}

func (UserModel) TableName() string {
	return "users"
}

// WorkModel é o model GORM para obras
type WorkModel struct {
	ID        string `gorm:"type:uuid;primary_key"`
	Title     string `gorm:"type:varchar(255);not null"`
	Category  string `gorm:"type:varchar(20);not null;index"`
	OwnerID   string `gorm:"column:user_id;type:uuid;not null;index"`
	CreatedAt int64  `gorm:"autoCreateTime;index"`
	UpdatedAt int64  `gorm:"autoUpdateTime"`
}

func (WorkModel) TableName() string {
	return "works"
}

// VoteModel é o model GORM para votos.
// O índice único (user_id, work_id) é o árbitro final contra votos duplicados;
// as chaves estrangeiras apagam os votos junto com a obra ou o usuário.
type VoteModel struct {
	ID        string     `gorm:"type:uuid;primary_key"`
	UserID    string     `gorm:"type:uuid;not null;uniqueIndex:idx_votes_user_work"`
	WorkID    string     `gorm:"type:uuid;not null;uniqueIndex:idx_votes_user_work;index"`
	CreatedAt int64      `gorm:"autoCreateTime"`
	User      *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Work      *WorkModel `gorm:"foreignKey:WorkID;constraint:OnDelete:CASCADE"`
}

func (VoteModel) TableName() string {
	return "votes"
}
