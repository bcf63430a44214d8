package storage

// Action is the outcome of an upsert decision.
type Action int

const (
	ActionNoop Action = iota
	ActionCreate
	ActionUpdate
)

func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionUpdate:
		return "update"
	default:
		return "noop"
	}
}

// PlanUpsert decides what to do with an incoming competition. A nil
// existing row means create. An existing row is a no-op only when both
// the content hash and the enrollment link are unchanged; any difference
// means update.
func PlanUpsert(existing *Competition, contentHash, enrollmentURL string) Action {
	if existing == nil {
		return ActionCreate
	}
	if existing.ContentHash == contentHash && existing.EnrollmentURL == enrollmentURL {
		return ActionNoop
	}
	return ActionUpdate
}
