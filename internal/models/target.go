package models

type Target struct {
	Id        int64  `json:"id" db:"id"`
	MissionId int64  `json:"-" db:"mission_id"`
	Name      string `json:"name" db:"target_name"`
	Country   string `json:"country" db:"country"`
	Completed bool   `json:"completed" db:"completed"`
	Note      *Note  `json:"note,omitempty"`
}

type TargetCreate struct {
	Name      string `json:"name" binding:"required,max=255"`
	Country   string `json:"country" binding:"required,iso3166_1_alpha2"`
	Completed bool   `json:"completed"`
}

type TargetUpdate struct {
	Completed bool `json:"completed"`
}
