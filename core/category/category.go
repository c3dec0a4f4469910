package category

import "time"

type Category struct {
	ID        int64     `json:"id" db:"category_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
