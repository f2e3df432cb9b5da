package models

// Completed is derived from the targets, never stored: a mission is
// completed iff it has at least one target and all of them are completed.
type Mission struct {
	Id        int64    `json:"id" db:"id"`
	CatId     *int64   `json:"cat" db:"cat_id"`
	Targets   []Target `json:"targets"`
	Completed bool     `json:"is_completed"`
}

type MissionCreate struct {
	CatId   *int64         `json:"cat"`
	Targets []TargetCreate `json:"targets" binding:"dive"`
}
