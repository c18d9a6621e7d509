package game

import "errors"

var (
	// ErrUnusableClub is returned when the selected club has no performance on the current lie.
	ErrUnusableClub = errors.New("unusable club for this lie")

	// ErrInvalidSkillPurchase is the parent of every rejected skill purchase.
	ErrInvalidSkillPurchase    = errors.New("invalid skill purchase")
	ErrUnknownSkill            = skillError("unknown skill")
	ErrSkillAlreadyPurchased   = skillError("skill already purchased")
	ErrSkillPrerequisite       = skillError("skill prerequisite not purchased")
	ErrInsufficientSkillPoints = skillError("not enough skill points")

	ErrUnknownClub      = errors.New("unknown club")
	ErrSwingInProgress  = errors.New("swing in progress")
	ErrHoleIndex        = errors.New("hole index out of range")
	ErrEmptyCourse      = errors.New("course has no holes")
	ErrPolygonTooSmall  = errors.New("polygon needs at least 3 points")
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionClosed    = errors.New("session closed")
	ErrUnknownStatKind  = errors.New("unknown stat")
)

// purchaseError lets errors.Is match both the specific cause and ErrInvalidSkillPurchase.
type purchaseError struct {
	msg string
}

func skillError(msg string) error {
	return &purchaseError{msg: msg}
}

func (e *purchaseError) Error() string {
	return e.msg
}

func (e *purchaseError) Is(target error) bool {
	return target == ErrInvalidSkillPurchase
}
