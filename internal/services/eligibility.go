package services

import (
	"spycatagency/internal/models"
	"spycatagency/internal/myerrors"
)

// Pure eligibility rules for the mission/target/note lifecycle. Everything
// here works on already loaded state so the rules can be tested without a
// database; the services are responsible for loading and for writing.

const (
	minTargets = 1
	maxTargets = 3
)

// MissionCompleted derives the completion state: at least one target and
// none of them pending. A mission with zero targets is never completed.
func MissionCompleted(targets []models.Target) bool {
	if len(targets) == 0 {
		return false
	}
	for _, t := range targets {
		if !t.Completed {
			return false
		}
	}
	return true
}

func CheckTargetCount(count int) error {
	if count < minTargets {
		return &myerrors.ValidationError{Message: "at least one target is required"}
	}
	if count > maxTargets {
		return &myerrors.ValidationError{Message: "a mission can have at most 3 targets"}
	}
	return nil
}

// CheckAssignCat gates cat assignment. catBusy must answer "does the cat
// have another mission with an incomplete target". Only the mission's own
// id is excluded from that check, so a not-completed mission that already
// holds a cat may be handed to a different one.
func CheckAssignCat(mission models.Mission, catBusy bool) error {
	if MissionCompleted(mission.Targets) {
		return &myerrors.BusinessRuleError{Message: "cannot assign a cat to a completed mission"}
	}
	if catBusy {
		return &myerrors.BusinessRuleError{Message: "this cat already has an active mission"}
	}
	return nil
}

func CheckCompleteTarget(mission models.Mission, target models.Target) error {
	if mission.CatId == nil {
		return &myerrors.BusinessRuleError{Message: "cannot complete a target while the mission is not assigned to a cat"}
	}
	if target.Completed || MissionCompleted(mission.Targets) {
		return &myerrors.BusinessRuleError{Message: "the target or the mission is already completed"}
	}
	return nil
}

func CheckNoteEligible(mission models.Mission, target models.Target) error {
	if target.Completed || MissionCompleted(mission.Targets) {
		return &myerrors.BusinessRuleError{Message: "notes cannot be created or updated because the target or the mission is completed"}
	}
	return nil
}

func CheckDeleteMission(mission models.Mission) error {
	if mission.CatId != nil {
		return &myerrors.BusinessRuleError{Message: "mission cannot be deleted because it is assigned to a cat"}
	}
	return nil
}
