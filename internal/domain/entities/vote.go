package entities

import "time"

// Vote é um upvote de um usuário em uma obra.
// O par (UserID, WorkID) é único.
type Vote struct {
	ID        string
	UserID    string
	WorkID    string
	CreatedAt time.Time
}
