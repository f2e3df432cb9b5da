package models

import "github.com/shopspring/decimal"

type Cat struct {
	Id                int64           `json:"id" db:"id"`
	Name              string          `json:"name" db:"cat_name" binding:"required,min=1,max=255"`
	YearsOfExperience int             `json:"years_of_experience" db:"years_of_experience" binding:"gte=0"`
	Breed             string          `json:"breed" db:"breed" binding:"max=255"`
	Salary            decimal.Decimal `json:"salary" db:"salary"`
}

// CatUpdate carries a partial update. Nil fields are left unchanged.
// Breed is not re-validated against the registry on update.
type CatUpdate struct {
	Name              *string          `json:"name" binding:"omitempty,min=1,max=255"`
	YearsOfExperience *int             `json:"years_of_experience" binding:"omitempty,gte=0"`
	Breed             *string          `json:"breed" binding:"omitempty,max=255"`
	Salary            *decimal.Decimal `json:"salary"`
}
